package services

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/lolollllo/plushofaddu-backend/internal/domain/models"
	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceItemService 定义商品服务接口
type InterfaceItemService interface {
	GetAllItems() ([]ItemWithPreview, error)
	GetItemByID(id uint) (*models.Item, []string, error)
	CreateItem(params *ItemParams) (*models.Item, error)
	UpdateItem(id uint, params *ItemParams) error
	AddItemImage(itemID uint, imageURL string) error
	MigrateLegacyImages() error
}

// ItemService 提供商品相关的服务
type ItemService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewItemService 创建一个新的商品服务
func NewItemService(db *gorm.DB, cfg *config.Config) InterfaceItemService {
	return &ItemService{
		DB:     db,
		Config: cfg,
	}
}

// ItemParams 创建/更新商品的参数。Price 和 Stock 接收任意JSON类型，
// 由下面两个互不相同的校验策略分别处理
type ItemParams struct {
	Name        string
	Price       interface{}
	ImageURL    string
	Description string
	Stock       interface{}
	Images      []string
}

// ItemWithPreview 表示带预览图的商品列表项
type ItemWithPreview struct {
	models.Item
	PreviewImageURL *string `gorm:"column:preview_image_url" json:"preview_image_url"`
}

// parsePrice 价格校验策略：无法解析为数字时硬性报错，四舍五入到两位小数
func parsePrice(v interface{}) (float64, error) {
	var price float64
	switch value := v.(type) {
	case float64:
		price = value
	case int:
		price = float64(value)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, NewValidationError("Price must be a number")
		}
		price = parsed
	default:
		return 0, NewValidationError("Price must be a number")
	}
	return math.Round(price*100) / 100, nil
}

// clampStock 库存校验策略：解析失败或为负时静默归零，从不报错。
// 与价格策略的不对称是沿用既有行为，不要"修正"
func clampStock(v interface{}) int {
	var stock int
	switch value := v.(type) {
	case float64:
		stock = int(value)
	case int:
		stock = value
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0
		}
		stock = parsed
	default:
		return 0
	}
	if stock < 0 {
		return 0
	}
	return stock
}

// 1 GetAllItems 获取所有商品，每个商品带图集中的第一张作为预览图
func (s *ItemService) GetAllItems() ([]ItemWithPreview, error) {
	var items []ItemWithPreview
	err := s.DB.Model(&models.Item{}).
		Select("items.*, (SELECT image_url FROM item_images WHERE item_images.item_id = items.id ORDER BY item_images.id LIMIT 1) AS preview_image_url").
		Order("items.id").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// 2 GetItemByID 根据ID获取商品及其全部图片
func (s *ItemService) GetItemByID(id uint) (*models.Item, []string, error) {
	var item models.Item
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrItemNotFound
		}
		return nil, nil, err
	}

	var imageURLs []string
	if err := s.DB.Model(&models.ItemImage{}).
		Where("item_id = ?", id).
		Order("id").
		Pluck("image_url", &imageURLs).Error; err != nil {
		return nil, nil, err
	}

	return &item, imageURLs, nil
}

// 3 CreateItem 创建新商品
func (s *ItemService) CreateItem(params *ItemParams) (*models.Item, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, NewValidationError("Name and price are required")
	}

	price, err := parsePrice(params.Price)
	if err != nil {
		return nil, err
	}
	stock := clampStock(params.Stock)

	imageURL := params.ImageURL
	if imageURL == "" && len(params.Images) > 0 {
		// 第一张图同步到旧版单图字段，兼容老的预览逻辑
		imageURL = params.Images[0]
	}

	item := models.Item{
		Name:        name,
		Price:       price,
		ImageURL:    imageURL,
		Status:      models.StatusForStock(stock),
		Description: params.Description,
		Stock:       stock,
	}

	if err := s.DB.Create(&item).Error; err != nil {
		return nil, err
	}

	for _, url := range params.Images {
		if err := s.DB.Create(&models.ItemImage{ItemID: item.ID, ImageURL: url}).Error; err != nil {
			return nil, err
		}
	}

	return &item, nil
}

// 4 UpdateItem 更新商品信息，校验规则与创建一致
func (s *ItemService) UpdateItem(id uint, params *ItemParams) error {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return NewValidationError("Name and price are required")
	}

	price, err := parsePrice(params.Price)
	if err != nil {
		return err
	}
	stock := clampStock(params.Stock)

	var item models.Item
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	return s.DB.Model(&item).Updates(map[string]interface{}{
		"name":        name,
		"price":       price,
		"image_url":   params.ImageURL,
		"description": params.Description,
		"stock":       stock,
		"status":      models.StatusForStock(stock),
	}).Error
}

// 5 AddItemImage 给商品追加一张图片
func (s *ItemService) AddItemImage(itemID uint, imageURL string) error {
	var item models.Item
	if err := s.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	return s.DB.Create(&models.ItemImage{ItemID: itemID, ImageURL: imageURL}).Error
}

// 6 MigrateLegacyImages 把旧版 items.image_url 回填到 item_images 表，
// 启动时执行一次，已存在的记录跳过
func (s *ItemService) MigrateLegacyImages() error {
	var items []models.Item
	if err := s.DB.Where("image_url IS NOT NULL AND image_url != ''").Find(&items).Error; err != nil {
		return err
	}

	for _, item := range items {
		var count int64
		if err := s.DB.Model(&models.ItemImage{}).
			Where("item_id = ? AND image_url = ?", item.ID, item.ImageURL).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.DB.Create(&models.ItemImage{ItemID: item.ID, ImageURL: item.ImageURL}).Error; err != nil {
			return err
		}
	}

	return nil
}
