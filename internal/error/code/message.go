package code

// 错误码消息映射，消息直接作为对外响应的 error 字段
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:           "success",
	ErrUnknown:           "Internal server error",
	ErrBind:              "Invalid request parameters",
	ErrValidation:        "Invalid request parameters",
	ErrTokenMissing:      "No token",
	ErrTokenInvalid:      "Token invalid",
	ErrPasswordIncorrect: "Invalid credentials",
	ErrTooManyRequests:   "Too many requests",

	// 商品相关错误码
	ErrItemNotFound:     "Item not found",
	ErrImageProcess:     "Failed to process image",
	ErrUnsupportedImage: "Unsupported image format",

	// 订单相关错误码
	ErrOrderNotFound: "Order not found",

	// 数据库相关错误码
	ErrDatabase: "Database error",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:           StatusOK,
	ErrUnknown:           StatusInternalServerError,
	ErrBind:              StatusBadRequest,
	ErrValidation:        StatusBadRequest,
	ErrTokenMissing:      StatusForbidden,
	ErrTokenInvalid:      StatusForbidden,
	ErrPasswordIncorrect: StatusUnauthorized,
	ErrTooManyRequests:   StatusTooManyRequests,

	// 商品相关错误码
	ErrItemNotFound:     StatusNotFound,
	ErrImageProcess:     StatusInternalServerError,
	ErrUnsupportedImage: StatusBadRequest,

	// 订单相关错误码
	ErrOrderNotFound: StatusNotFound,

	// 数据库相关错误码
	ErrDatabase: StatusInternalServerError,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Internal server error"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
