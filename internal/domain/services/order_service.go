package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lolollllo/plushofaddu-backend/internal/domain/models"
	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/config"
	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/database"
	"github.com/lolollllo/plushofaddu-backend/pkg/logger"
	"github.com/lolollllo/plushofaddu-backend/pkg/utils"

	"gorm.io/gorm"
)

// InterfaceOrderService 定义订单服务接口
type InterfaceOrderService interface {
	PlaceOrder(params *PlaceOrderParams) (*OrderConfirmation, error)
	GetAllOrders() ([]OrderWithItems, error)
	UpdateOrderStatus(id uint, status string) error
	DeleteOrder(id uint) error
	TrackOrder(trackingID string) (*TrackResult, error)
}

// OrderService 提供订单相关的服务
type OrderService struct {
	DB     *gorm.DB
	Config *config.Config
	Pool   *database.ConnectionPool
}

// NewOrderService 创建一个新的订单服务
func NewOrderService(db *gorm.DB, cfg *config.Config, pool *database.ConnectionPool) InterfaceOrderService {
	return &OrderService{
		DB:     db,
		Config: cfg,
		Pool:   pool,
	}
}

// PlaceOrderParams 下单参数
type PlaceOrderParams struct {
	CustomerName   string
	Instagram      string
	Phone          string
	DeliveryMethod string
	PaymentMethod  string
	DeliveryCharge float64
	OrderItems     []OrderItemParams
}

// OrderItemParams 订单行参数
type OrderItemParams struct {
	ItemID   uint
	Quantity int
}

// OrderLineSummary 订单行摘要，用于下单回执和后台订单列表
type OrderLineSummary struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Quantity int    `json:"quantity"`
}

// OrderConfirmation 下单成功的回执
type OrderConfirmation struct {
	OrderID        uint               `json:"order_id"`
	TrackingID     string             `json:"tracking_id"`
	CustomerName   string             `json:"customer_name"`
	Instagram      string             `json:"instagram"`
	Phone          string             `json:"phone"`
	DeliveryMethod string             `json:"delivery_method"`
	PaymentMethod  string             `json:"payment_method"`
	DeliveryCharge float64            `json:"delivery_charge"`
	TotalPrice     string             `json:"total_price"`
	Items          []OrderLineSummary `json:"items"`
	Message        string             `json:"message,omitempty"`
}

// OrderWithItems 后台订单列表项
type OrderWithItems struct {
	models.Order
	Items []OrderLineSummary `json:"items"`
}

// TrackLine 追踪结果中的订单行
type TrackLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// TrackResult 追踪查询结果。查不到不是错误，found=false 照常返回
type TrackResult struct {
	Found bool          `json:"found"`
	Order *models.Order `json:"order,omitempty"`
	Items []TrackLine   `json:"items,omitempty"`
}

// normalizeName 归一化顾客姓名：不间断空格替换为普通空格后去除首尾空白
func normalizeName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, " ", " "))
}

// 1 PlaceOrder 校验并落库一笔订单，生成追踪码并计算总价。
// 订单主行和订单行的写入要么全部生效要么全部不存在：
// 支持事务的引擎走事务，不支持的引擎走补偿删除
func (s *OrderService) PlaceOrder(params *PlaceOrderParams) (*OrderConfirmation, error) {
	customerName := normalizeName(params.CustomerName)
	if customerName == "" {
		return nil, NewValidationError("Customer name is required")
	}

	instagram := strings.TrimSpace(params.Instagram)
	phone := strings.TrimSpace(params.Phone)
	if instagram == "" && phone == "" {
		return nil, NewValidationError("Please provide either Instagram username or Phone number")
	}

	if len(params.OrderItems) == 0 {
		return nil, NewValidationError("Order must have at least one item")
	}
	for _, line := range params.OrderItems {
		if line.ItemID == 0 || line.Quantity <= 0 {
			return nil, NewValidationError("Order items must reference an item with a positive quantity")
		}
	}

	order := models.Order{
		CustomerName:   customerName,
		Instagram:      instagram,
		Phone:          phone,
		DeliveryMethod: params.DeliveryMethod,
		PaymentMethod:  params.PaymentMethod,
		DeliveryCharge: params.DeliveryCharge,
		// 追踪码不做冲突重试，撞上唯一索引直接当作数据库错误返回
		TrackingID: utils.GenerateTrackingCode(),
		Status:     models.OrderStatusDefault,
	}

	var err error
	switch {
	case s.Pool == nil:
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			return insertOrderRows(tx, &order, params.OrderItems)
		})
	case !s.Pool.SupportsTransactions():
		err = s.insertWithCompensation(&order, params.OrderItems)
	default:
		err = s.Pool.WithTransaction(func(tx *gorm.DB) error {
			return insertOrderRows(tx, &order, params.OrderItems)
		})
	}
	if err != nil {
		return nil, err
	}

	return s.buildConfirmation(&order)
}

// insertOrderRows 依次写入订单主行和各订单行
func insertOrderRows(tx *gorm.DB, order *models.Order, lines []OrderItemParams) error {
	if err := tx.Create(order).Error; err != nil {
		return err
	}
	for _, line := range lines {
		orderItem := models.OrderItem{
			OrderID:  order.ID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			return err
		}
	}
	return nil
}

// insertWithCompensation 乐观地顺序写入，订单行失败后补偿删除已提交的订单主行。
// 这是尽力而为的补偿，不是真正的原子性：删除前崩溃会留下一笔空订单
func (s *OrderService) insertWithCompensation(order *models.Order, lines []OrderItemParams) error {
	if err := s.DB.Create(order).Error; err != nil {
		return err
	}

	if err := insertLines(s.DB, order.ID, lines); err != nil {
		if delErr := s.DB.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; delErr != nil {
			logger.Error("补偿删除订单行失败: order_id=%d, err=%v", order.ID, delErr)
		}
		if delErr := s.DB.Delete(&models.Order{}, order.ID).Error; delErr != nil {
			logger.Error("补偿删除订单失败: order_id=%d, err=%v", order.ID, delErr)
		}
		return err
	}

	return nil
}

func insertLines(db *gorm.DB, orderID uint, lines []OrderItemParams) error {
	for _, line := range lines {
		orderItem := models.OrderItem{
			OrderID:  orderID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		}
		if err := db.Create(&orderItem).Error; err != nil {
			return err
		}
	}
	return nil
}

// buildConfirmation 回读订单行并关联商品，计算含运费的总价
func (s *OrderService) buildConfirmation(order *models.Order) (*OrderConfirmation, error) {
	var rows []struct {
		Name     string
		Status   string
		Price    float64
		Quantity int
	}
	err := s.DB.Raw(`
		SELECT i.name, i.status, i.price, oi.quantity
		FROM order_items oi
		JOIN items i ON oi.item_id = i.id
		WHERE oi.order_id = ?`, order.ID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	total := order.DeliveryCharge
	items := make([]OrderLineSummary, 0, len(rows))
	for _, row := range rows {
		total += row.Price * float64(row.Quantity)
		items = append(items, OrderLineSummary{
			Name:     row.Name,
			Status:   row.Status,
			Quantity: row.Quantity,
		})
	}

	return &OrderConfirmation{
		OrderID:        order.ID,
		TrackingID:     order.TrackingID,
		CustomerName:   order.CustomerName,
		Instagram:      order.Instagram,
		Phone:          order.Phone,
		DeliveryMethod: order.DeliveryMethod,
		PaymentMethod:  order.PaymentMethod,
		DeliveryCharge: order.DeliveryCharge,
		TotalPrice:     fmt.Sprintf("%.2f", total),
		Items:          items,
	}, nil
}

// 2 GetAllOrders 获取全部订单（新的在前），每笔订单带商品摘要
func (s *OrderService) GetAllOrders() ([]OrderWithItems, error) {
	var orders []models.Order
	if err := s.DB.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []OrderWithItems{}, nil
	}

	orderIDs := make([]uint, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	var rows []struct {
		OrderID  uint
		Name     string
		Status   string
		Quantity int
	}
	err := s.DB.Raw(`
		SELECT oi.order_id, i.name, i.status, oi.quantity
		FROM order_items oi
		JOIN items i ON oi.item_id = i.id
		WHERE oi.order_id IN ?`, orderIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	itemsByOrder := make(map[uint][]OrderLineSummary)
	for _, row := range rows {
		itemsByOrder[row.OrderID] = append(itemsByOrder[row.OrderID], OrderLineSummary{
			Name:     row.Name,
			Status:   row.Status,
			Quantity: row.Quantity,
		})
	}

	result := make([]OrderWithItems, 0, len(orders))
	for _, order := range orders {
		items := itemsByOrder[order.ID]
		if items == nil {
			items = []OrderLineSummary{}
		}
		result = append(result, OrderWithItems{Order: order, Items: items})
	}

	return result, nil
}

// 3 UpdateOrderStatus 无条件覆盖订单状态，任意字符串都接受
func (s *OrderService) UpdateOrderStatus(id uint, status string) error {
	var order models.Order
	if err := s.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	return s.DB.Model(&order).Update("status", status).Error
}

// 4 DeleteOrder 删除订单及其全部订单行
func (s *OrderService) DeleteOrder(id uint) error {
	var order models.Order
	if err := s.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if err := s.DB.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return s.DB.Delete(&order).Error
}

// 5 TrackOrder 按追踪码查询订单。这是公开接口，查不到按软未命中处理
func (s *OrderService) TrackOrder(trackingID string) (*TrackResult, error) {
	var order models.Order
	if err := s.DB.Where("tracking_id = ?", trackingID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &TrackResult{Found: false}, nil
		}
		return nil, err
	}

	var lines []TrackLine
	err := s.DB.Raw(`
		SELECT i.name, oi.quantity
		FROM order_items oi
		JOIN items i ON oi.item_id = i.id
		WHERE oi.order_id = ?`, order.ID).Scan(&lines).Error
	if err != nil {
		return nil, err
	}

	return &TrackResult{Found: true, Order: &order, Items: lines}, nil
}
