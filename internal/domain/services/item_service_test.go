package services

import (
	"errors"
	"testing"

	"github.com/lolollllo/plushofaddu-backend/internal/domain/models"
)

func TestCreateItemRoundsPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewItemService(db, testConfig())

	item, err := svc.CreateItem(&ItemParams{Name: "Bear", Price: 19.999, Stock: 3})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Price != 20.00 {
		t.Errorf("price = %v, want 20.00", item.Price)
	}
}

func TestCreateItemAcceptsStringPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewItemService(db, testConfig())

	item, err := svc.CreateItem(&ItemParams{Name: "Turtle", Price: " 12.5 ", Stock: 1})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Price != 12.5 {
		t.Errorf("price = %v, want 12.5", item.Price)
	}
}

func TestCreateItemRejectsBadPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewItemService(db, testConfig())

	for _, price := range []interface{}{"abc", nil, true} {
		_, err := svc.CreateItem(&ItemParams{Name: "Shark", Price: price, Stock: 1})
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("price %v: err = %v, want ValidationError", price, err)
		}
		if validationErr.Message != "Price must be a number" {
			t.Errorf("price %v: message = %q", price, validationErr.Message)
		}
	}
}

func TestCreateItemClampsStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewItemService(db, testConfig())

	tests := []struct {
		name       string
		stock      interface{}
		wantStock  int
		wantStatus string
	}{
		{"negative clamps to zero", -5, 0, models.ItemStatusPreOrder},
		{"string parses", "7", 7, models.ItemStatusInStock},
		{"garbage clamps to zero", "lots", 0, models.ItemStatusPreOrder},
		{"nil clamps to zero", nil, 0, models.ItemStatusPreOrder},
		{"json number", float64(4), 4, models.ItemStatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := svc.CreateItem(&ItemParams{Name: "Plush", Price: 10, Stock: tt.stock})
			if err != nil {
				t.Fatalf("CreateItem: %v", err)
			}
			if item.Stock != tt.wantStock {
				t.Errorf("stock = %d, want %d", item.Stock, tt.wantStock)
			}
			if item.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", item.Status, tt.wantStatus)
			}
		})
	}
}

func TestUpdateItemRecomputesStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewItemService(db, testConfig())

	item, err := svc.CreateItem(&ItemParams{Name: "Whale", Price: 30, Stock: 0})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Status != models.ItemStatusPreOrder {
		t.Fatalf("status = %q, want %q", item.Status, models.ItemStatusPreOrder)
	}

	if err := svc.UpdateItem(item.ID, &ItemParams{Name: "Whale", Price: 30, Stock: 3}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	var reloaded models.Item
	if err := db.First(&reloaded, item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if reloaded.Status != models.ItemStatusInStock {
		t.Errorf("status = %q, want %q", reloaded.Status, models.ItemStatusInStock)
	}
	if reloaded.Stock != 3 {
		t.Errorf("stock = %d, want 3", reloaded.Stock)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewItemService(db, testConfig())

	err := svc.UpdateItem(99999, &ItemParams{Name: "Ghost", Price: 1, Stock: 1})
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestCreateItemMirrorsFirstImage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewItemService(db, testConfig())

	item, err := svc.CreateItem(&ItemParams{
		Name:   "Octopus",
		Price:  25,
		Stock:  2,
		Images: []string{"/uploads/a.jpg", "/uploads/b.jpg"},
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.ImageURL != "/uploads/a.jpg" {
		t.Errorf("legacy image url = %q, want %q", item.ImageURL, "/uploads/a.jpg")
	}

	_, urls, err := svc.GetItemByID(item.ID)
	if err != nil {
		t.Fatalf("GetItemByID: %v", err)
	}
	if len(urls) != 2 || urls[0] != "/uploads/a.jpg" || urls[1] != "/uploads/b.jpg" {
		t.Errorf("image urls = %v", urls)
	}
}

func TestGetAllItemsIncludesPreview(t *testing.T) {
	db := setupTestDB(t)
	svc := NewItemService(db, testConfig())

	withImages, err := svc.CreateItem(&ItemParams{
		Name:   "Crab",
		Price:  8,
		Stock:  1,
		Images: []string{"/uploads/crab-1.jpg", "/uploads/crab-2.jpg"},
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if _, err := svc.CreateItem(&ItemParams{Name: "Bare", Price: 5, Stock: 1}); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	items, err := svc.GetAllItems()
	if err != nil {
		t.Fatalf("GetAllItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	for _, item := range items {
		switch item.ID {
		case withImages.ID:
			if item.PreviewImageURL == nil || *item.PreviewImageURL != "/uploads/crab-1.jpg" {
				t.Errorf("preview = %v, want /uploads/crab-1.jpg", item.PreviewImageURL)
			}
		default:
			if item.PreviewImageURL != nil && *item.PreviewImageURL != "" {
				t.Errorf("preview = %v, want empty", item.PreviewImageURL)
			}
		}
	}
}

func TestGetItemByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewItemService(db, testConfig())

	_, _, err := svc.GetItemByID(12345)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestMigrateLegacyImages(t *testing.T) {
	db := setupTestDB(t)
	svc := NewItemService(db, testConfig())

	legacy := models.Item{Name: "Old", Price: 9, ImageURL: "/uploads/old.jpg", Status: models.ItemStatusInStock, Stock: 1}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("seed legacy item: %v", err)
	}

	if err := svc.MigrateLegacyImages(); err != nil {
		t.Fatalf("MigrateLegacyImages: %v", err)
	}
	// 再跑一次不应产生重复记录
	if err := svc.MigrateLegacyImages(); err != nil {
		t.Fatalf("MigrateLegacyImages rerun: %v", err)
	}

	var count int64
	db.Model(&models.ItemImage{}).Where("item_id = ?", legacy.ID).Count(&count)
	if count != 1 {
		t.Errorf("image rows = %d, want 1", count)
	}
}
