package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenMissing - 403: 缺少认证令牌.
	ErrTokenMissing
	// ErrTokenInvalid - 403: 令牌无效或已过期.
	ErrTokenInvalid
	// ErrPasswordIncorrect - 401: 用户名或密码错误.
	ErrPasswordIncorrect
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 商品相关错误码 (101xxx).
const (
	// ErrItemNotFound - 404: 商品不存在.
	ErrItemNotFound int = iota + 101000
	// ErrImageProcess - 500: 图片处理失败.
	ErrImageProcess
	// ErrUnsupportedImage - 400: 不支持的图片格式.
	ErrUnsupportedImage
)

// 订单相关错误码 (102xxx).
const (
	// ErrOrderNotFound - 404: 订单不存在.
	ErrOrderNotFound int = iota + 102000
)

// 数据库相关错误码 (103xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 103000
)
