package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/vendor-payments/internal/constants"
	"github.com/vendor-payments/internal/models"
	"github.com/vendor-payments/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupVendorPaymentServiceTest(t *testing.T) (*VendorPaymentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:vendor_payment_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Vendor{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.VendorPayment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewVendorPaymentService(
		repository.NewVendorPaymentRepository(db),
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
	)
	return svc, db
}

func seedCompletedOrderFixture(t *testing.T, db *gorm.DB) (models.Order, []models.OrderItem) {
	t.Helper()

	vendorA := models.Vendor{Name: "Vendor A", Email: "vendor-a@example.com", PasswordHash: "hash", IsActive: true}
	vendorB := models.Vendor{Name: "Vendor B", Email: "vendor-b@example.com", PasswordHash: "hash", IsActive: true}
	for _, v := range []*models.Vendor{&vendorA, &vendorB} {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("create vendor failed: %v", err)
		}
	}

	productA := models.Product{
		Name:         "Product A",
		Slug:         "product-a",
		PriceAmount:  models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		VendorID:     vendorA.ID,
		PurchaseCost: models.NewMoneyFromDecimal(decimal.RequireFromString("12.50")),
		PaymentTerm:  constants.PaymentTermWeekly,
		IsActive:     true,
	}
	productB := models.Product{
		Name:         "Product B",
		Slug:         "product-b",
		PriceAmount:  models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		VendorID:     vendorB.ID,
		PurchaseCost: models.NewMoneyFromDecimal(decimal.RequireFromString("8.00")),
		PaymentTerm:  constants.PaymentTermMonthly,
		IsActive:     true,
	}
	for _, p := range []*models.Product{&productA, &productB} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	now := time.Now()
	order := models.Order{
		OrderNo:     "ORD501",
		ExternalID:  501,
		Status:      constants.OrderStatusCompleted,
		Currency:    "USD",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		CompletedAt: &now,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	items := []models.OrderItem{
		{
			OrderID:        order.ID,
			ExternalItemID: 9001,
			ProductID:      productA.ID,
			ProductName:    "Product A",
			Quantity:       1,
			UnitPrice:      models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		},
		{
			OrderID:        order.ID,
			ExternalItemID: 9002,
			ProductID:      productB.ID,
			ProductName:    "Product B",
			Quantity:       1,
			UnitPrice:      models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("create order items failed: %v", err)
	}
	return order, items
}

func TestCreateForOrderCreatesRowPerItemWithSnapshots(t *testing.T) {
	svc, db := setupVendorPaymentServiceTest(t)
	order, items := seedCompletedOrderFixture(t, db)

	created, err := svc.CreateForOrder(order.ID)
	if err != nil {
		t.Fatalf("create for order failed: %v", err)
	}
	if created != 2 {
		t.Fatalf("created want 2 got %d", created)
	}

	payments, err := svc.ListByOrderID(order.ID)
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("payments len want 2 got %d", len(payments))
	}

	byItem := make(map[uint]models.VendorPayment, len(payments))
	for _, p := range payments {
		byItem[p.OrderItemID] = p
	}

	first, ok := byItem[items[0].ID]
	if !ok {
		t.Fatalf("missing payment for first item")
	}
	if first.Vendor != "Vendor A" {
		t.Fatalf("first vendor want Vendor A got %q", first.Vendor)
	}
	if first.ProductName != "Product A" {
		t.Fatalf("first product name want Product A got %q", first.ProductName)
	}
	if first.PaymentTerm != constants.PaymentTermWeekly {
		t.Fatalf("first payment term want %q got %q", constants.PaymentTermWeekly, first.PaymentTerm)
	}
	if !first.PurchaseCost.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("first purchase cost want 12.50 got %s", first.PurchaseCost.String())
	}
	if first.PaymentStatus != constants.VendorPaymentStatusPending {
		t.Fatalf("first status want Pending got %q", first.PaymentStatus)
	}
	if first.OrderStatus != constants.OrderStatusCompleted {
		t.Fatalf("first order status want completed got %q", first.OrderStatus)
	}

	second, ok := byItem[items[1].ID]
	if !ok {
		t.Fatalf("missing payment for second item")
	}
	if second.Vendor != "Vendor B" {
		t.Fatalf("second vendor want Vendor B got %q", second.Vendor)
	}
	if second.PaymentTerm != constants.PaymentTermMonthly {
		t.Fatalf("second payment term want %q got %q", constants.PaymentTermMonthly, second.PaymentTerm)
	}
}

func TestCreateForOrderIsIdempotent(t *testing.T) {
	svc, db := setupVendorPaymentServiceTest(t)
	order, _ := seedCompletedOrderFixture(t, db)

	if _, err := svc.CreateForOrder(order.ID); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	payments, err := svc.ListByOrderID(order.ID)
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	if _, err := svc.UpdateStatus(payments[0].ID, constants.VendorPaymentStatusPaid); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	created, err := svc.CreateForOrder(order.ID)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if created != 0 {
		t.Fatalf("second run should create nothing, created=%d", created)
	}

	payments, err = svc.ListByOrderID(order.ID)
	if err != nil {
		t.Fatalf("list payments after rerun failed: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("payments len want 2 after rerun got %d", len(payments))
	}
	foundPaid := false
	for _, p := range payments {
		if p.PaymentStatus == constants.VendorPaymentStatusPaid {
			foundPaid = true
		}
	}
	if !foundPaid {
		t.Fatalf("rerun must not reset existing payment status")
	}
}

func TestCreateForOrderSkipsUnresolvableItems(t *testing.T) {
	svc, db := setupVendorPaymentServiceTest(t)
	order, _ := seedCompletedOrderFixture(t, db)

	noVendorProduct := models.Product{
		Name:        "Orphan Product",
		Slug:        "orphan-product",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		PaymentTerm: constants.PaymentTermPostPayment,
		IsActive:    true,
	}
	if err := db.Create(&noVendorProduct).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	extra := []models.OrderItem{
		{OrderID: order.ID, ExternalItemID: 9003, ProductID: 0, ProductName: "Deleted Product", Quantity: 1},
		{OrderID: order.ID, ExternalItemID: 9004, ProductID: noVendorProduct.ID, ProductName: "Orphan Product", Quantity: 1},
	}
	if err := db.Create(&extra).Error; err != nil {
		t.Fatalf("create extra items failed: %v", err)
	}

	created, err := svc.CreateForOrder(order.ID)
	if err != nil {
		t.Fatalf("create for order failed: %v", err)
	}
	if created != 2 {
		t.Fatalf("only resolvable items should create records, created=%d", created)
	}

	payments, err := svc.ListByOrderID(order.ID)
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	for _, p := range payments {
		if p.OrderItemID == extra[0].ID || p.OrderItemID == extra[1].ID {
			t.Fatalf("skipped item must not have a payment record, item_id=%d", p.OrderItemID)
		}
	}
}

func TestCreateForOrderMissingOrderIsNoop(t *testing.T) {
	svc, _ := setupVendorPaymentServiceTest(t)

	created, err := svc.CreateForOrder(99999)
	if err != nil {
		t.Fatalf("missing order should not error: %v", err)
	}
	if created != 0 {
		t.Fatalf("missing order should create nothing, created=%d", created)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	svc, db := setupVendorPaymentServiceTest(t)
	order, _ := seedCompletedOrderFixture(t, db)

	if _, err := svc.CreateForOrder(order.ID); err != nil {
		t.Fatalf("create for order failed: %v", err)
	}
	payments, err := svc.ListByOrderID(order.ID)
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	target := payments[0]

	// 大小写敏感，非法值拒绝
	for _, invalid := range []string{"paid", "PAID", "Done", "credit note", ""} {
		if _, err := svc.UpdateStatus(target.ID, invalid); err != ErrPaymentStatusInvalid {
			t.Fatalf("status %q want ErrPaymentStatusInvalid got %v", invalid, err)
		}
	}

	if _, err := svc.UpdateStatus(99999, constants.VendorPaymentStatusPaid); err != ErrPaymentNotFound {
		t.Fatalf("missing payment want ErrPaymentNotFound got %v", err)
	}

	updated, err := svc.UpdateStatus(target.ID, constants.VendorPaymentStatusCreditNote)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.PaymentStatus != constants.VendorPaymentStatusCreditNote {
		t.Fatalf("status want Credit Note got %q", updated.PaymentStatus)
	}

	got, err := svc.GetByID(target.ID)
	if err != nil {
		t.Fatalf("get payment failed: %v", err)
	}
	if got.Vendor != target.Vendor || got.ProductName != target.ProductName || got.PaymentTerm != target.PaymentTerm {
		t.Fatalf("status update must not touch snapshot fields")
	}
	if !got.PurchaseCost.Equal(target.PurchaseCost.Decimal) {
		t.Fatalf("status update must not touch purchase cost")
	}
}

func TestGetForVendorScopesOwnership(t *testing.T) {
	svc, db := setupVendorPaymentServiceTest(t)
	order, _ := seedCompletedOrderFixture(t, db)

	if _, err := svc.CreateForOrder(order.ID); err != nil {
		t.Fatalf("create for order failed: %v", err)
	}
	payments, err := svc.ListByOrderID(order.ID)
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}

	owned := payments[0]
	got, err := svc.GetForVendor(owned.ID, owned.VendorID)
	if err != nil {
		t.Fatalf("owner fetch failed: %v", err)
	}
	if got.ID != owned.ID {
		t.Fatalf("owner fetch returned wrong record")
	}

	if _, err := svc.GetForVendor(owned.ID, owned.VendorID+100); err != ErrPaymentNotFound {
		t.Fatalf("foreign vendor want ErrPaymentNotFound got %v", err)
	}

	rows, total, err := svc.ListForVendor(owned.VendorID, "", 1, 50)
	if err != nil {
		t.Fatalf("list for vendor failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("vendor list want exactly own records, total=%d", total)
	}
	if rows[0].VendorID != owned.VendorID {
		t.Fatalf("vendor list leaked other vendor's record")
	}
}
