package models

// 订单的配送和付款方式
const (
	DeliveryMethodPickup   = "pickup"
	DeliveryMethodDelivery = "delivery"

	PaymentMethodTransfer = "transfer"
	PaymentMethodCash     = "cash"
)

// OrderStatusDefault 新订单的默认状态。状态是自由文本，不做状态机约束
const OrderStatusDefault = "waiting for updates"

// Order 表示顾客订单
type Order struct {
	BaseModel
	CustomerName   string  `gorm:"type:varchar(100);not null" json:"customer_name"`
	Instagram      string  `gorm:"type:varchar(100)" json:"instagram"`
	Phone          string  `gorm:"type:varchar(30)" json:"phone"`
	DeliveryMethod string  `gorm:"type:varchar(20);not null" json:"delivery_method"`
	PaymentMethod  string  `gorm:"type:varchar(20);not null" json:"payment_method"`
	DeliveryCharge float64 `gorm:"default:0" json:"delivery_charge"`
	TrackingID     string  `gorm:"type:varchar(20);uniqueIndex;not null" json:"tracking_id"`
	Status         string  `gorm:"type:varchar(100);default:'waiting for updates'" json:"status"`

	// 关联关系
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"-"` // 订单行（一对多），随订单级联删除
}

// OrderItem 表示订单中的一行商品，插入后不可修改
type OrderItem struct {
	BaseModel
	OrderID  uint `gorm:"index;not null" json:"order_id"`
	ItemID   uint `gorm:"index;not null" json:"item_id"`
	Quantity int  `gorm:"not null" json:"quantity"`
}
