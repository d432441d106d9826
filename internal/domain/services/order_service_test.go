package services

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lolollllo/plushofaddu-backend/internal/domain/models"
	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/config"
	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 创建一个临时的sqlite数据库并迁移全部模型
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Admin{},
		&models.Item{},
		&models.ItemImage{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		DBDriver:     config.DriverSQLite,
		JWTSecretKey: "test-secret",
	}
}

func createTestItem(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Item {
	t.Helper()

	item := models.Item{
		Name:   name,
		Price:  price,
		Status: models.StatusForStock(stock),
		Stock:  stock,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create test item: %v", err)
	}
	return &item
}

func TestPlaceOrderComputesTotal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, testConfig(), nil)
	bear := createTestItem(t, db, "Bear", 20.00, 3)

	confirmation, err := svc.PlaceOrder(&PlaceOrderParams{
		CustomerName:   "Aishath",
		Instagram:      "@aishath",
		DeliveryMethod: models.DeliveryMethodDelivery,
		PaymentMethod:  models.PaymentMethodTransfer,
		DeliveryCharge: 5,
		OrderItems:     []OrderItemParams{{ItemID: bear.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if confirmation.TotalPrice != "45.00" {
		t.Errorf("total price = %q, want %q", confirmation.TotalPrice, "45.00")
	}
	if !strings.HasPrefix(confirmation.TrackingID, "POA") {
		t.Errorf("tracking id %q does not carry POA prefix", confirmation.TrackingID)
	}
	if len(confirmation.Items) != 1 || confirmation.Items[0].Name != "Bear" || confirmation.Items[0].Quantity != 2 {
		t.Errorf("unexpected confirmation items: %+v", confirmation.Items)
	}

	var order models.Order
	if err := db.First(&order, confirmation.OrderID).Error; err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if order.Status != models.OrderStatusDefault {
		t.Errorf("order status = %q, want %q", order.Status, models.OrderStatusDefault)
	}
}

func TestPlaceOrderNormalizesCustomerName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, testConfig(), nil)
	item := createTestItem(t, db, "Turtle", 10, 1)

	confirmation, err := svc.PlaceOrder(&PlaceOrderParams{
		CustomerName:   "  Hassan  ",
		Phone:          "7771234",
		DeliveryMethod: models.DeliveryMethodPickup,
		PaymentMethod:  models.PaymentMethodCash,
		OrderItems:     []OrderItemParams{{ItemID: item.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if confirmation.CustomerName != "Hassan" {
		t.Errorf("customer name = %q, want %q", confirmation.CustomerName, "Hassan")
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, testConfig(), nil)
	item := createTestItem(t, db, "Shark", 15, 2)

	tests := []struct {
		name    string
		params  PlaceOrderParams
		message string
	}{
		{
			name: "empty name",
			params: PlaceOrderParams{
				Phone:      "7771234",
				OrderItems: []OrderItemParams{{ItemID: item.ID, Quantity: 1}},
			},
			message: "Customer name is required",
		},
		{
			name: "whitespace only name",
			params: PlaceOrderParams{
				CustomerName: "  ",
				Phone:        "7771234",
				OrderItems:   []OrderItemParams{{ItemID: item.ID, Quantity: 1}},
			},
			message: "Customer name is required",
		},
		{
			name: "no contact method",
			params: PlaceOrderParams{
				CustomerName: "Mariyam",
				OrderItems:   []OrderItemParams{{ItemID: item.ID, Quantity: 1}},
			},
			message: "Please provide either Instagram username or Phone number",
		},
		{
			name: "empty items",
			params: PlaceOrderParams{
				CustomerName: "Mariyam",
				Phone:        "7771234",
			},
			message: "Order must have at least one item",
		},
		{
			name: "zero quantity",
			params: PlaceOrderParams{
				CustomerName: "Mariyam",
				Phone:        "7771234",
				OrderItems:   []OrderItemParams{{ItemID: item.ID, Quantity: 0}},
			},
			message: "Order items must reference an item with a positive quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(&tt.params)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if validationErr.Message != tt.message {
				t.Errorf("message = %q, want %q", validationErr.Message, tt.message)
			}
		})
	}
}

func TestTrackOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, testConfig(), nil)
	item := createTestItem(t, db, "Octopus", 25, 4)

	confirmation, err := svc.PlaceOrder(&PlaceOrderParams{
		CustomerName:   "Ibrahim",
		Instagram:      "@ibrahim",
		DeliveryMethod: models.DeliveryMethodPickup,
		PaymentMethod:  models.PaymentMethodTransfer,
		OrderItems:     []OrderItemParams{{ItemID: item.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	result, err := svc.TrackOrder(confirmation.TrackingID)
	if err != nil {
		t.Fatalf("TrackOrder: %v", err)
	}
	if !result.Found {
		t.Fatal("expected order to be found")
	}
	if result.Order.TrackingID != confirmation.TrackingID {
		t.Errorf("tracking id = %q, want %q", result.Order.TrackingID, confirmation.TrackingID)
	}
	if len(result.Items) != 1 || result.Items[0].Name != "Octopus" || result.Items[0].Quantity != 3 {
		t.Errorf("unexpected track items: %+v", result.Items)
	}
}

func TestTrackOrderSoftMiss(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, testConfig(), nil)

	result, err := svc.TrackOrder("POAXXXXXXXX")
	if err != nil {
		t.Fatalf("TrackOrder: %v", err)
	}
	if result.Found {
		t.Error("expected soft miss for unknown tracking id")
	}
	if result.Order != nil {
		t.Errorf("order = %+v, want nil", result.Order)
	}
}

func TestGetAllOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, testConfig(), nil)
	item := createTestItem(t, db, "Whale", 30, 5)

	for _, name := range []string{"First", "Second"} {
		_, err := svc.PlaceOrder(&PlaceOrderParams{
			CustomerName:   name,
			Phone:          "7770000",
			DeliveryMethod: models.DeliveryMethodPickup,
			PaymentMethod:  models.PaymentMethodCash,
			OrderItems:     []OrderItemParams{{ItemID: item.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("PlaceOrder %s: %v", name, err)
		}
	}

	orders, err := svc.GetAllOrders()
	if err != nil {
		t.Fatalf("GetAllOrders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}
	for _, order := range orders {
		if len(order.Items) != 1 || order.Items[0].Name != "Whale" {
			t.Errorf("order %d items = %+v", order.ID, order.Items)
		}
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, testConfig(), nil)
	item := createTestItem(t, db, "Crab", 8, 2)

	confirmation, err := svc.PlaceOrder(&PlaceOrderParams{
		CustomerName:   "Fathimath",
		Phone:          "7779999",
		DeliveryMethod: models.DeliveryMethodDelivery,
		PaymentMethod:  models.PaymentMethodTransfer,
		OrderItems:     []OrderItemParams{{ItemID: item.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if err := svc.UpdateOrderStatus(confirmation.OrderID, "shipped"); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}

	var order models.Order
	if err := db.First(&order, confirmation.OrderID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if order.Status != "shipped" {
		t.Errorf("status = %q, want %q", order.Status, "shipped")
	}

	if err := svc.UpdateOrderStatus(99999, "lost"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestDeleteOrderCascades(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, testConfig(), nil)
	item := createTestItem(t, db, "Seal", 18, 2)

	confirmation, err := svc.PlaceOrder(&PlaceOrderParams{
		CustomerName:   "Ahmed",
		Phone:          "7775555",
		DeliveryMethod: models.DeliveryMethodPickup,
		PaymentMethod:  models.PaymentMethodCash,
		OrderItems:     []OrderItemParams{{ItemID: item.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if err := svc.DeleteOrder(confirmation.OrderID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}

	var orderCount, lineCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Where("order_id = ?", confirmation.OrderID).Count(&lineCount)
	if orderCount != 0 || lineCount != 0 {
		t.Errorf("orders=%d order items=%d after delete, want 0/0", orderCount, lineCount)
	}

	if err := svc.DeleteOrder(confirmation.OrderID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestPlaceOrderThroughPoolTransaction(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pool.db")
	pool, err := database.NewConnectionPool(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   dbPath,
	})
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	db := pool.GetDB()
	if err := db.AutoMigrate(&models.Item{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	item := createTestItem(t, db, "Penguin", 12, 2)

	svc := NewOrderService(db, testConfig(), pool)
	confirmation, err := svc.PlaceOrder(&PlaceOrderParams{
		CustomerName:   "Nashfa",
		Phone:          "7778888",
		DeliveryMethod: models.DeliveryMethodPickup,
		PaymentMethod:  models.PaymentMethodCash,
		OrderItems:     []OrderItemParams{{ItemID: item.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if confirmation.TotalPrice != "24.00" {
		t.Errorf("total price = %q, want %q", confirmation.TotalPrice, "24.00")
	}

	var lines int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", confirmation.OrderID).Count(&lines)
	if lines != 1 {
		t.Errorf("order item rows = %d, want 1", lines)
	}
}

func TestInsertWithCompensationRollsBackOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := &OrderService{DB: db, Config: testConfig()}
	item := createTestItem(t, db, "Dolphin", 22, 1)

	// 订单行表不存在时，订单主行应被补偿删除
	if err := db.Migrator().DropTable(&models.OrderItem{}); err != nil {
		t.Fatalf("drop order_items: %v", err)
	}

	order := models.Order{
		CustomerName: "Zahra",
		Phone:        "7772222",
		TrackingID:   "POATESTCOMP",
		Status:       models.OrderStatusDefault,
	}
	err := svc.insertWithCompensation(&order, []OrderItemParams{{ItemID: item.ID, Quantity: 1}})
	if err == nil {
		t.Fatal("expected error when order item insert fails")
	}

	var count int64
	db.Model(&models.Order{}).Where("tracking_id = ?", "POATESTCOMP").Count(&count)
	if count != 0 {
		t.Errorf("order row survived failed line insert, count = %d", count)
	}
}
