package models

// 商品状态，由库存数量派生：库存为 0 时是 pre-order，否则是 in-stock
const (
	ItemStatusInStock  = "in-stock"
	ItemStatusPreOrder = "pre-order"
)

// Item 表示商品信息
type Item struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	ImageURL    string  `gorm:"type:varchar(255)" json:"image_url"` // 旧版单图字段，保留给老的预览逻辑
	Status      string  `gorm:"type:varchar(20);not null" json:"status"`
	Description string  `gorm:"type:text" json:"description"`
	Stock       int     `gorm:"default:0" json:"stock"`

	// 关联关系
	Images []ItemImage `gorm:"foreignKey:ItemID" json:"-"` // 商品图集（一对多），第一张作为预览图
}

// ItemImage 表示商品关联的图片
type ItemImage struct {
	BaseModel
	ItemID   uint   `gorm:"index;not null" json:"item_id"`
	ImageURL string `gorm:"type:varchar(255);not null" json:"image_url"`
}

// StatusForStock 根据库存数量派生商品状态
func StatusForStock(stock int) string {
	if stock == 0 {
		return ItemStatusPreOrder
	}
	return ItemStatusInStock
}
