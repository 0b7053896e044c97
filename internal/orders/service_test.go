package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	"github.com/tcghub/tcghub-backend/pkg/enums"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Card{},
		&models.Shop{},
		&models.Delivery{},
		&models.PurchaseRecord{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCard(t *testing.T, db *gorm.DB, name string, priceCents int) models.Card {
	t.Helper()
	card := models.Card{ID: uuid.New(), Name: name, Expansion: "Base", Rarity: "Rare", CurrentPriceCents: priceCents}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("seed card: %v", err)
	}
	return card
}

func seedDelivery(t *testing.T, db *gorm.DB, buyerID uuid.UUID, shipping time.Time) *models.Delivery {
	t.Helper()
	delivery := BuildDelivery(buyerID, shipping)
	if err := db.Create(delivery).Error; err != nil {
		t.Fatalf("seed delivery: %v", err)
	}
	return delivery
}

func newServiceWithClock(t *testing.T, db *gorm.DB, now time.Time) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func TestListOrdersGroupsByDelivery(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	buyerID := uuid.New()
	shopID := uuid.New()

	// current catalog prices drive totals, not the price paid at checkout
	pikachu := seedCard(t, db, "Pikachu", 1000)
	eevee := seedCard(t, db, "Eevee", 500)

	today := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	older := seedDelivery(t, db, buyerID, today.AddDate(0, 0, -10))
	newer := seedDelivery(t, db, buyerID, today.AddDate(0, 0, -1))

	repo := NewRepository(db)
	records := BuildPurchaseRecords(newer.ID, buyerID, PurchaseInput{
		CardID: pikachu.ID, ShopID: shopID, ShopName: "Mint Condition", Quantity: 2, PriceCents: 900,
	})
	records = append(records, BuildPurchaseRecords(newer.ID, buyerID, PurchaseInput{
		CardID: eevee.ID, ShopID: shopID, ShopName: "Mint Condition", Quantity: 1, PriceCents: 500,
	})...)
	if err := repo.CreatePurchaseRecords(ctx, records); err != nil {
		t.Fatalf("seed purchases: %v", err)
	}
	olderRecords := BuildPurchaseRecords(older.ID, buyerID, PurchaseInput{
		CardID: eevee.ID, ShopID: shopID, ShopName: "Mint Condition", Quantity: 1, PriceCents: 500,
	})
	if err := repo.CreatePurchaseRecords(ctx, olderRecords); err != nil {
		t.Fatalf("seed purchases: %v", err)
	}

	svc := newServiceWithClock(t, db, today)
	orders, err := svc.ListOrders(ctx, buyerID)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}

	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].DeliveryID != newer.ID {
		t.Fatal("expected newest delivery first")
	}
	if len(orders[0].Items) != 3 {
		t.Fatalf("expected 3 units in newest order, got %d", len(orders[0].Items))
	}
	// 2x Pikachu at the current 1000 plus 1x Eevee at 500
	if orders[0].TotalCents != 2500 {
		t.Fatalf("expected total 2500, got %d", orders[0].TotalCents)
	}
	if orders[0].Status != enums.OrderStatusInTransit {
		t.Fatalf("expected in_transit, got %s", orders[0].Status)
	}
	if orders[1].DeliveryID != older.ID || orders[1].Status != enums.OrderStatusDelivered {
		t.Fatalf("unexpected older order %+v", orders[1])
	}
}

func TestListOrdersEmptyHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newServiceWithClock(t, db, time.Now())

	orders, err := svc.ListOrders(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders, got %d", len(orders))
	}
}

func TestListOrdersExcludesOtherBuyers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	buyerID := uuid.New()
	otherID := uuid.New()
	card := seedCard(t, db, "Snorlax", 700)

	delivery := seedDelivery(t, db, otherID, time.Now())
	repo := NewRepository(db)
	err := repo.CreatePurchaseRecords(ctx, BuildPurchaseRecords(delivery.ID, otherID, PurchaseInput{
		CardID: card.ID, ShopID: uuid.New(), ShopName: "Other Shop", Quantity: 1, PriceCents: 700,
	}))
	if err != nil {
		t.Fatalf("seed purchases: %v", err)
	}

	svc := newServiceWithClock(t, db, time.Now())
	orders, err := svc.ListOrders(ctx, buyerID)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders for unrelated buyer, got %d", len(orders))
	}
}

func TestListOrdersRequiresBuyer(t *testing.T) {
	db := newTestDB(t)
	svc := newServiceWithClock(t, db, time.Now())

	_, err := svc.ListOrders(context.Background(), uuid.Nil)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestGetDelivery(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	buyerID := uuid.New()
	card := seedCard(t, db, "Charizard", 120000)

	delivery := seedDelivery(t, db, buyerID, time.Now())
	repo := NewRepository(db)
	err := repo.CreatePurchaseRecords(ctx, BuildPurchaseRecords(delivery.ID, buyerID, PurchaseInput{
		CardID: card.ID, ShopID: uuid.New(), ShopName: "Mint Condition", Quantity: 2, PriceCents: 120000,
	}))
	if err != nil {
		t.Fatalf("seed purchases: %v", err)
	}

	svc := newServiceWithClock(t, db, time.Now())
	found, err := svc.GetDelivery(ctx, buyerID, delivery.ID)
	if err != nil {
		t.Fatalf("get delivery: %v", err)
	}
	if found.ID != delivery.ID || len(found.Purchases) != 2 {
		t.Fatalf("unexpected delivery %+v", found)
	}

	_, err = svc.GetDelivery(ctx, uuid.New(), delivery.ID)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for foreign buyer, got %v", err)
	}
}
