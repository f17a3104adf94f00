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

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Vendor{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewVendorRepository(db),
	)
	return svc, db
}

func seedProductWithVendor(t *testing.T, db *gorm.DB) (models.Product, models.Vendor) {
	t.Helper()
	vendor := models.Vendor{Name: "Vendor A", Email: "vendor-a@example.com", PasswordHash: "hash", IsActive: true}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}
	product := models.Product{
		Name:        "Widget",
		Slug:        "widget",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		PaymentTerm: constants.PaymentTermPostPayment,
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product, vendor
}

func TestSaveVendorConfigClampsNegativeCost(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	product, vendor := seedProductWithVendor(t, db)

	updated, err := svc.SaveVendorConfig(product.ID, VendorConfigInput{
		VendorID:     vendor.ID,
		PurchaseCost: decimal.RequireFromString("-3.75"),
		PaymentTerm:  constants.PaymentTermWeekly,
	})
	if err != nil {
		t.Fatalf("save vendor config failed: %v", err)
	}
	if !updated.PurchaseCost.Equal(decimal.Zero) {
		t.Fatalf("negative cost must clamp to zero, got %s", updated.PurchaseCost.String())
	}
	if updated.VendorID != vendor.ID {
		t.Fatalf("vendor id want %d got %d", vendor.ID, updated.VendorID)
	}
	if updated.PaymentTerm != constants.PaymentTermWeekly {
		t.Fatalf("payment term want %q got %q", constants.PaymentTermWeekly, updated.PaymentTerm)
	}
}

func TestSaveVendorConfigRejectsUnknownTerm(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	product, vendor := seedProductWithVendor(t, db)

	for _, invalid := range []string{"Quarterly", "weekly", "post payment"} {
		_, err := svc.SaveVendorConfig(product.ID, VendorConfigInput{
			VendorID:     vendor.ID,
			PurchaseCost: decimal.NewFromInt(5),
			PaymentTerm:  invalid,
		})
		if err != ErrPaymentTermInvalid {
			t.Fatalf("term %q want ErrPaymentTermInvalid got %v", invalid, err)
		}
	}
}

func TestSaveVendorConfigDefaultsEmptyTerm(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	product, vendor := seedProductWithVendor(t, db)

	updated, err := svc.SaveVendorConfig(product.ID, VendorConfigInput{
		VendorID:     vendor.ID,
		PurchaseCost: decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("save vendor config failed: %v", err)
	}
	if updated.PaymentTerm != constants.PaymentTermPostPayment {
		t.Fatalf("empty term should default to %q, got %q", constants.PaymentTermPostPayment, updated.PaymentTerm)
	}
}

func TestSaveVendorConfigUnknownVendor(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	product, _ := seedProductWithVendor(t, db)

	_, err := svc.SaveVendorConfig(product.ID, VendorConfigInput{
		VendorID:     9999,
		PurchaseCost: decimal.NewFromInt(5),
		PaymentTerm:  constants.PaymentTermWeekly,
	})
	if err != ErrVendorNotFound {
		t.Fatalf("unknown vendor want ErrVendorNotFound got %v", err)
	}
}
