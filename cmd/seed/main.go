package main

import (
	"time"

	"github.com/vendor-payments/internal/config"
	"github.com/vendor-payments/internal/constants"
	"github.com/vendor-payments/internal/logger"
	"github.com/vendor-payments/internal/models"
	"github.com/vendor-payments/internal/provider"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加供应商账号
	vendorSeeds := []struct {
		Name     string
		Email    string
		Password string
	}{
		{Name: "Acme Supplies", Email: "acme@example.com", Password: "AcmeSeed-2024!"},
		{Name: "Bolt Trading", Email: "bolt@example.com", Password: "BoltSeed-2024!"},
		{Name: "Crown Wholesale", Email: "crown@example.com", Password: "CrownSeed-2024!"},
	}
	vendorIDs := map[string]uint{}
	for _, seed := range vendorSeeds {
		var existing models.Vendor
		if err := models.DB.Where("email = ?", seed.Email).First(&existing).Error; err == nil {
			stdLog.Printf("Vendor already exists: %s", seed.Name)
			vendorIDs[seed.Name] = existing.ID
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash vendor password: %v", err)
		}
		vendor := models.Vendor{
			Name:         seed.Name,
			Email:        seed.Email,
			PasswordHash: string(hash),
			IsActive:     true,
		}
		if err := models.DB.Create(&vendor).Error; err != nil {
			stdLog.Printf("Failed to create vendor %s: %v", seed.Name, err)
			continue
		}
		stdLog.Printf("Created vendor: %s", seed.Name)
		vendorIDs[seed.Name] = vendor.ID
	}

	// 添加商品与采购配置
	products := []models.Product{
		{
			Name:         "Wireless Bluetooth Earphones",
			Slug:         "wireless-earphones",
			PriceAmount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			VendorID:     vendorIDs["Acme Supplies"],
			PurchaseCost: models.NewMoneyFromDecimal(decimal.NewFromFloat(62.50)),
			PaymentTerm:  constants.PaymentTermWeekly,
			IsActive:     true,
		},
		{
			Name:         "Smart Watch",
			Slug:         "smart-watch",
			PriceAmount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(199.00)),
			VendorID:     vendorIDs["Acme Supplies"],
			PurchaseCost: models.NewMoneyFromDecimal(decimal.NewFromFloat(120.00)),
			PaymentTerm:  constants.PaymentTermMonthly,
			IsActive:     true,
		},
		{
			Name:         "USB-C Charging Cable",
			Slug:         "usb-c-cable",
			PriceAmount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(12.90)),
			VendorID:     vendorIDs["Bolt Trading"],
			PurchaseCost: models.NewMoneyFromDecimal(decimal.NewFromFloat(4.20)),
			PaymentTerm:  constants.PaymentTermPostPayment,
			IsActive:     true,
		},
		{
			// 未配置供应商的商品，不会生成付款记录
			Name:        "Gift Wrapping",
			Slug:        "gift-wrapping",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(3.00)),
			IsActive:    true,
		},
	}
	productIDs := map[string]uint{}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", product.Slug)
			productIDs[product.Slug] = existing.ID
			continue
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			continue
		}
		stdLog.Printf("Created product: %s", product.Slug)
		productIDs[product.Slug] = product.ID
	}

	// 添加一笔已完成的演示订单并生成付款记录
	const demoOrderNo = "SEED-ORD-0001"
	var existingOrder models.Order
	if err := models.DB.Where("order_no = ?", demoOrderNo).First(&existingOrder).Error; err == nil {
		stdLog.Printf("Demo order already exists: %s", demoOrderNo)
		return
	}

	completedAt := time.Now().Add(-time.Hour)
	order := models.Order{
		OrderNo:     demoOrderNo,
		ExternalID:  900001,
		Status:      constants.OrderStatusCompleted,
		Currency:    "USD",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(311.89)),
		CompletedAt: &completedAt,
	}
	if err := models.DB.Create(&order).Error; err != nil {
		stdLog.Fatalf("Failed to create demo order: %v", err)
	}
	items := []models.OrderItem{
		{
			OrderID:        order.ID,
			ExternalItemID: 910001,
			ProductID:      productIDs["wireless-earphones"],
			ProductName:    "Wireless Bluetooth Earphones",
			Quantity:       1,
			UnitPrice:      models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
		},
		{
			OrderID:        order.ID,
			ExternalItemID: 910002,
			ProductID:      productIDs["smart-watch"],
			ProductName:    "Smart Watch",
			Quantity:       1,
			UnitPrice:      models.NewMoneyFromDecimal(decimal.NewFromFloat(199.00)),
		},
		{
			OrderID:        order.ID,
			ExternalItemID: 910003,
			ProductID:      productIDs["usb-c-cable"],
			ProductName:    "USB-C Charging Cable",
			Quantity:       1,
			UnitPrice:      models.NewMoneyFromDecimal(decimal.NewFromFloat(12.90)),
		},
	}
	for i := range items {
		if err := models.DB.Create(&items[i]).Error; err != nil {
			stdLog.Printf("Failed to create demo order item: %v", err)
		}
	}
	stdLog.Printf("Created demo order: %s", demoOrderNo)

	container := provider.NewContainer(cfg)
	created, err := container.VendorPaymentService.CreateForOrder(order.ID)
	if err != nil {
		stdLog.Printf("Failed to create vendor payments for demo order: %v", err)
		return
	}
	stdLog.Printf("Created %d vendor payment records for demo order", created)
}
