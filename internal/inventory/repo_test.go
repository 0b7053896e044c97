package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// unique name per test; shared cache keeps the pool on one database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Shop{}, &models.Card{}, &models.InventoryEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedEntry(t *testing.T, db *gorm.DB, qty int) (uuid.UUID, uuid.UUID) {
	t.Helper()
	shop := models.Shop{ID: uuid.New(), Name: "shop-" + uuid.NewString()}
	card := models.Card{ID: uuid.New(), Name: "card-" + uuid.NewString(), Expansion: "Base", Rarity: "Rare"}
	if err := db.Create(&shop).Error; err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("seed card: %v", err)
	}
	entry := models.InventoryEntry{ShopID: shop.ID, CardID: card.ID, AvailableQty: qty}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	return shop.ID, card.ID
}

func TestCheckAvailability(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shopID, cardID := seedEntry(t, db, 3)

	ok, available, err := repo.CheckAvailability(ctx, shopID, cardID, 3)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !ok || available != 3 {
		t.Fatalf("expected ok with 3 available, got ok=%v available=%d", ok, available)
	}

	ok, _, err = repo.CheckAvailability(ctx, shopID, cardID, 4)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ok {
		t.Fatal("expected insufficient availability for qty 4")
	}
}

func TestCheckAvailabilityUnknownEntry(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	_, _, err := repo.CheckAvailability(context.Background(), uuid.New(), uuid.New(), 1)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCheckAvailabilityRejectsZeroQuantity(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	_, _, err := repo.CheckAvailability(context.Background(), uuid.New(), uuid.New(), 0)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestDecrement(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shopID, cardID := seedEntry(t, db, 5)

	if err := repo.Decrement(ctx, shopID, cardID, 2); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	var entry models.InventoryEntry
	if err := db.Where("shop_id = ? AND card_id = ?", shopID, cardID).First(&entry).Error; err != nil {
		t.Fatalf("reload entry: %v", err)
	}
	if entry.AvailableQty != 3 {
		t.Fatalf("expected available_qty=3, got %d", entry.AvailableQty)
	}
}

func TestDecrementToZero(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shopID, cardID := seedEntry(t, db, 2)

	if err := repo.Decrement(ctx, shopID, cardID, 2); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	ok, available, err := repo.CheckAvailability(ctx, shopID, cardID, 1)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ok || available != 0 {
		t.Fatalf("expected 0 available, got ok=%v available=%d", ok, available)
	}
}

func TestDecrementInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shopID, cardID := seedEntry(t, db, 1)

	err := repo.Decrement(ctx, shopID, cardID, 2)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}

	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected typed error, got %T", err)
	}
	details, ok := appErr.Details().(map[string]any)
	if !ok || details["card_id"] != cardID {
		t.Fatalf("expected card_id detail, got %v", appErr.Details())
	}

	var entry models.InventoryEntry
	if err := db.Where("shop_id = ? AND card_id = ?", shopID, cardID).First(&entry).Error; err != nil {
		t.Fatalf("reload entry: %v", err)
	}
	if entry.AvailableQty != 1 {
		t.Fatalf("stock must be untouched after failed decrement, got %d", entry.AvailableQty)
	}
}

func TestDecrementUnknownEntry(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	err := repo.Decrement(context.Background(), uuid.New(), uuid.New(), 1)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUpsertReplacesQuantity(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shopID, cardID := seedEntry(t, db, 1)

	err := repo.Upsert(ctx, &models.InventoryEntry{ShopID: shopID, CardID: cardID, AvailableQty: 9})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	_, available, err := repo.CheckAvailability(ctx, shopID, cardID, 1)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if available != 9 {
		t.Fatalf("expected available_qty=9, got %d", available)
	}
}
