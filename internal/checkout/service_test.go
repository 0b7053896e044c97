package checkout

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/internal/inventory"
	"github.com/tcghub/tcghub-backend/internal/orders"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
	"github.com/tcghub/tcghub-backend/pkg/metrics"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type fixture struct {
	db      *gorm.DB
	service Service
}

func newFixture(t *testing.T) *fixture {
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
		&models.InventoryEntry{},
		&models.Delivery{},
		&models.PurchaseRecord{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc, err := NewService(
		gormTxRunner{db: db},
		inventory.NewRepository(db),
		orders.NewRepository(db),
		metrics.NewCheckoutMetrics(nil),
		nil,
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &fixture{db: db, service: svc}
}

func (f *fixture) seedStock(t *testing.T, qty int) (uuid.UUID, uuid.UUID) {
	t.Helper()
	shop := models.Shop{ID: uuid.New(), Name: "shop-" + uuid.NewString()}
	card := models.Card{ID: uuid.New(), Name: "card-" + uuid.NewString(), Expansion: "Base", Rarity: "Rare", CurrentPriceCents: 500}
	if err := f.db.Create(&shop).Error; err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	if err := f.db.Create(&card).Error; err != nil {
		t.Fatalf("seed card: %v", err)
	}
	entry := models.InventoryEntry{ShopID: shop.ID, CardID: card.ID, AvailableQty: qty}
	if err := f.db.Create(&entry).Error; err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	return shop.ID, card.ID
}

func (f *fixture) stock(t *testing.T, shopID, cardID uuid.UUID) int {
	t.Helper()
	var entry models.InventoryEntry
	if err := f.db.Where("shop_id = ? AND card_id = ?", shopID, cardID).First(&entry).Error; err != nil {
		t.Fatalf("reload entry: %v", err)
	}
	return entry.AvailableQty
}

func (f *fixture) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func TestExecuteCommitsWholeCart(t *testing.T) {
	f := newFixture(t)
	buyerID := uuid.New()
	shopID, cardID := f.seedStock(t, 5)
	otherShopID, otherCardID := f.seedStock(t, 2)

	result, err := f.service.Execute(context.Background(), buyerID, []CartLine{
		{CardID: cardID, ShopID: shopID, ShopName: "Mint Condition", Quantity: 3, PriceCents: 500},
		{CardID: otherCardID, ShopID: otherShopID, ShopName: "Rare Finds", Quantity: 2, PriceCents: 900},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.DeliveryID == uuid.Nil {
		t.Fatal("expected delivery id")
	}
	if result.UnitCount != 5 {
		t.Fatalf("expected 5 units, got %d", result.UnitCount)
	}

	if got := f.stock(t, shopID, cardID); got != 2 {
		t.Fatalf("expected stock 2, got %d", got)
	}
	if got := f.stock(t, otherShopID, otherCardID); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}
	if got := f.countRows(t, &models.Delivery{}); got != 1 {
		t.Fatalf("expected 1 delivery, got %d", got)
	}
	if got := f.countRows(t, &models.PurchaseRecord{}); got != 5 {
		t.Fatalf("expected 5 purchase records, got %d", got)
	}

	var delivery models.Delivery
	if err := f.db.First(&delivery).Error; err != nil {
		t.Fatalf("load delivery: %v", err)
	}
	if delivery.BuyerID != buyerID {
		t.Fatal("delivery must belong to the buyer")
	}
	wantArrival := delivery.ShippingDate.AddDate(0, 0, 5)
	if !delivery.ArrivalDate.Equal(wantArrival) {
		t.Fatalf("expected arrival %s, got %s", wantArrival, delivery.ArrivalDate)
	}
	if result.ArrivalDate != delivery.ArrivalDate.Format("2006-01-02") {
		t.Fatalf("result arrival %s does not match delivery", result.ArrivalDate)
	}
}

func TestExecuteRollsBackOnInsufficientStock(t *testing.T) {
	f := newFixture(t)
	buyerID := uuid.New()
	plentyShopID, plentyCardID := f.seedStock(t, 10)
	scarceShopID, scarceCardID := f.seedStock(t, 1)

	_, err := f.service.Execute(context.Background(), buyerID, []CartLine{
		{CardID: plentyCardID, ShopID: plentyShopID, Quantity: 2, PriceCents: 500},
		{CardID: scarceCardID, ShopID: scarceShopID, Quantity: 3, PriceCents: 500},
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}

	// nothing may survive the rollback, including the passing line
	if got := f.stock(t, plentyShopID, plentyCardID); got != 10 {
		t.Fatalf("expected stock 10 after rollback, got %d", got)
	}
	if got := f.stock(t, scarceShopID, scarceCardID); got != 1 {
		t.Fatalf("expected stock 1 after rollback, got %d", got)
	}
	if got := f.countRows(t, &models.Delivery{}); got != 0 {
		t.Fatalf("expected no deliveries, got %d", got)
	}
	if got := f.countRows(t, &models.PurchaseRecord{}); got != 0 {
		t.Fatalf("expected no purchase records, got %d", got)
	}
}

func TestExecuteDuplicateLinesCannotOversell(t *testing.T) {
	f := newFixture(t)
	buyerID := uuid.New()
	shopID, cardID := f.seedStock(t, 3)

	// each line passes the availability check alone; together they exceed
	// stock, so the guarded decrement must fail the transaction
	_, err := f.service.Execute(context.Background(), buyerID, []CartLine{
		{CardID: cardID, ShopID: shopID, Quantity: 2, PriceCents: 500},
		{CardID: cardID, ShopID: shopID, Quantity: 2, PriceCents: 500},
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}
	if got := f.stock(t, shopID, cardID); got != 3 {
		t.Fatalf("expected stock 3 after rollback, got %d", got)
	}
}

func TestExecuteSecondBuyerCannotOversell(t *testing.T) {
	f := newFixture(t)
	shopID, cardID := f.seedStock(t, 1)

	_, err := f.service.Execute(context.Background(), uuid.New(), []CartLine{
		{CardID: cardID, ShopID: shopID, Quantity: 1, PriceCents: 500},
	})
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	_, err = f.service.Execute(context.Background(), uuid.New(), []CartLine{
		{CardID: cardID, ShopID: shopID, Quantity: 1, PriceCents: 500},
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}
	if got := f.stock(t, shopID, cardID); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}
}

func TestExecuteEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Execute(context.Background(), uuid.New(), nil)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if got := f.countRows(t, &models.Delivery{}); got != 0 {
		t.Fatalf("expected no deliveries, got %d", got)
	}
}

func TestExecuteRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)
	shopID, cardID := f.seedStock(t, 5)

	_, err := f.service.Execute(context.Background(), uuid.New(), []CartLine{
		{CardID: cardID, ShopID: shopID, Quantity: 0, PriceCents: 500},
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if got := f.stock(t, shopID, cardID); got != 5 {
		t.Fatalf("expected stock untouched, got %d", got)
	}
}

func TestExecuteRequiresBuyer(t *testing.T) {
	f := newFixture(t)
	shopID, cardID := f.seedStock(t, 5)

	_, err := f.service.Execute(context.Background(), uuid.Nil, []CartLine{
		{CardID: cardID, ShopID: shopID, Quantity: 1, PriceCents: 500},
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestExecuteUnknownInventoryEntry(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Execute(context.Background(), uuid.New(), []CartLine{
		{CardID: uuid.New(), ShopID: uuid.New(), Quantity: 1, PriceCents: 500},
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestExecuteConcurrentBuyersNeverOversell(t *testing.T) {
	f := newFixture(t)
	shopID, cardID := f.seedStock(t, 5)

	const buyers = 8
	var wg sync.WaitGroup
	var sold int64
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lines := []CartLine{{CardID: cardID, ShopID: shopID, Quantity: 2, PriceCents: 500}}
			for attempt := 0; attempt < 100; attempt++ {
				_, err := f.service.Execute(context.Background(), uuid.New(), lines)
				if err == nil {
					atomic.AddInt64(&sold, 2)
					return
				}
				if pkgerrors.CodeOf(err) == pkgerrors.CodeInsufficientStock {
					return
				}
				// sqlite rejects concurrent writers with busy/locked
				// errors; back off and retry
				time.Sleep(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	committed := atomic.LoadInt64(&sold)
	if committed > 5 {
		t.Fatalf("oversold: %d units committed from a stock of 5", committed)
	}
	remaining := f.stock(t, shopID, cardID)
	if remaining < 0 {
		t.Fatalf("stock went negative: %d", remaining)
	}
	if int64(remaining) != 5-committed {
		t.Fatalf("expected stock %d, got %d", 5-committed, remaining)
	}
	if got := f.countRows(t, &models.PurchaseRecord{}); got != committed {
		t.Fatalf("expected %d purchase records, got %d", committed, got)
	}
}

func TestExecuteConcurrentDisjointCartsBothCommit(t *testing.T) {
	f := newFixture(t)
	shopA, cardA := f.seedStock(t, 3)
	shopB, cardB := f.seedStock(t, 3)

	run := func(shopID, cardID uuid.UUID, errs chan<- error) {
		var err error
		for attempt := 0; attempt < 100; attempt++ {
			_, err = f.service.Execute(context.Background(), uuid.New(), []CartLine{
				{CardID: cardID, ShopID: shopID, Quantity: 2, PriceCents: 500},
			})
			if err == nil {
				break
			}
			time.Sleep(time.Millisecond)
		}
		errs <- err
	}

	errs := make(chan error, 2)
	go run(shopA, cardA, errs)
	go run(shopB, cardB, errs)
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("checkout: %v", err)
		}
	}

	if got := f.stock(t, shopA, cardA); got != 1 {
		t.Fatalf("expected stock 1 for first entry, got %d", got)
	}
	if got := f.stock(t, shopB, cardB); got != 1 {
		t.Fatalf("expected stock 1 for second entry, got %d", got)
	}
	if got := f.countRows(t, &models.Delivery{}); got != 2 {
		t.Fatalf("expected 2 deliveries, got %d", got)
	}
}

func TestExecuteFeedsOrderHistory(t *testing.T) {
	f := newFixture(t)
	buyerID := uuid.New()
	shopID, cardID := f.seedStock(t, 4)

	result, err := f.service.Execute(context.Background(), buyerID, []CartLine{
		{CardID: cardID, ShopID: shopID, ShopName: "Mint Condition", Quantity: 2, PriceCents: 500},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	ordersSvc, err := orders.NewService(orders.NewRepository(f.db))
	if err != nil {
		t.Fatalf("orders service: %v", err)
	}
	history, err := ordersSvc.ListOrders(context.Background(), buyerID)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 order, got %d", len(history))
	}
	if history[0].DeliveryID != result.DeliveryID {
		t.Fatal("order must reference the checkout delivery")
	}
	if len(history[0].Items) != 2 {
		t.Fatalf("expected 2 units, got %d", len(history[0].Items))
	}
	// totals price from the catalog's current 500 per unit
	if history[0].TotalCents != 1000 {
		t.Fatalf("expected total 1000, got %d", history[0].TotalCents)
	}
}
