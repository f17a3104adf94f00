package public

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vendor-payments/internal/config"
	"github.com/vendor-payments/internal/constants"
	"github.com/vendor-payments/internal/models"
	"github.com/vendor-payments/internal/provider"
	"github.com/vendor-payments/internal/repository"
	"github.com/vendor-payments/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const webhookTestSecret = "order-webhook-test-secret"

func setupOrderWebhookTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:order_webhook_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	models.DB = db

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	paymentRepo := repository.NewVendorPaymentRepository(db)
	orderService := service.NewOrderService(orderRepo)
	paymentService := service.NewVendorPaymentService(paymentRepo, orderRepo, productRepo)

	cfg := &config.Config{}
	cfg.Webhook.Secret = webhookTestSecret

	h := &Handler{Container: &provider.Container{
		Config:               cfg,
		OrderService:         orderService,
		VendorPaymentService: paymentService,
	}}
	return h, db
}

func seedWebhookVendorProduct(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	vendor := models.Vendor{Name: "Webhook Vendor", Email: "webhook_vendor@example.com", PasswordHash: "hash", IsActive: true}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}
	product := models.Product{
		Name:         "Webhook Widget",
		Slug:         "webhook-widget",
		PriceAmount:  models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		VendorID:     vendor.ID,
		PurchaseCost: models.NewMoneyFromDecimal(decimal.NewFromFloat(18.75)),
		PaymentTerm:  constants.PaymentTermWeekly,
		IsActive:     true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product.ID
}

func signWebhookBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookTestSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func buildOrderCompletedBody(t *testing.T, productID uint, orderNo string) []byte {
	t.Helper()
	completedAt := time.Now().UTC().Truncate(time.Second)
	payload := OrderWebhookPayload{
		Event: constants.WebhookEventOrderCompleted,
		Order: OrderWebhookOrder{
			ExternalID:  5001,
			OrderNo:     orderNo,
			Currency:    "USD",
			TotalAmount: decimal.NewFromInt(30),
			CompletedAt: &completedAt,
			Items: []OrderWebhookItem{
				{
					ExternalItemID: 6001,
					ProductID:      productID,
					ProductName:    "Webhook Widget",
					Quantity:       1,
					UnitPrice:      decimal.NewFromInt(30),
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return body
}

func postWebhook(t *testing.T, h *Handler, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhooks/orders/completed", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if signature != "" {
		c.Request.Header.Set(constants.WebhookSignatureHeader, signature)
	}
	h.OrderCompletedWebhook(c)
	return w
}

func TestOrderCompletedWebhookRejectsBadSignature(t *testing.T) {
	h, db := setupOrderWebhookTest(t)
	productID := seedWebhookVendorProduct(t, db)
	body := buildOrderCompletedBody(t, productID, "WEBHOOK001")

	w := postWebhook(t, h, body, "deadbeef")
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}

	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("order should not be ingested, got %d rows", count)
	}
}

func TestOrderCompletedWebhookMissingSignatureRejected(t *testing.T) {
	h, db := setupOrderWebhookTest(t)
	productID := seedWebhookVendorProduct(t, db)
	body := buildOrderCompletedBody(t, productID, "WEBHOOK002")

	w := postWebhook(t, h, body, "")
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestOrderCompletedWebhookIngestsAndRecordsPayments(t *testing.T) {
	h, db := setupOrderWebhookTest(t)
	productID := seedWebhookVendorProduct(t, db)
	body := buildOrderCompletedBody(t, productID, "WEBHOOK003")

	w := postWebhook(t, h, body, signWebhookBody(body))
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}

	var order models.Order
	if err := db.Where("order_no = ?", "WEBHOOK003").First(&order).Error; err != nil {
		t.Fatalf("order should be ingested: %v", err)
	}
	if order.Status != constants.OrderStatusCompleted {
		t.Fatalf("order status want completed got %s", order.Status)
	}

	var payments []models.VendorPayment
	if err := db.Where("order_id = ?", order.ID).Find(&payments).Error; err != nil {
		t.Fatalf("load payments failed: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("payments want 1 got %d", len(payments))
	}
	if payments[0].Vendor != "Webhook Vendor" {
		t.Fatalf("payment vendor snapshot want Webhook Vendor got %s", payments[0].Vendor)
	}
	if payments[0].PaymentStatus != constants.VendorPaymentStatusPending {
		t.Fatalf("payment status want Pending got %s", payments[0].PaymentStatus)
	}
}

func TestOrderCompletedWebhookDuplicateDeliveryIsIdempotent(t *testing.T) {
	h, db := setupOrderWebhookTest(t)
	productID := seedWebhookVendorProduct(t, db)
	body := buildOrderCompletedBody(t, productID, "WEBHOOK004")
	signature := signWebhookBody(body)

	postWebhook(t, h, body, signature)
	postWebhook(t, h, body, signature)

	var orderCount int64
	if err := db.Model(&models.Order{}).Where("order_no = ?", "WEBHOOK004").Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 1 {
		t.Fatalf("order rows want 1 got %d", orderCount)
	}

	var paymentCount int64
	if err := db.Model(&models.VendorPayment{}).Count(&paymentCount).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if paymentCount != 1 {
		t.Fatalf("payment rows want 1 got %d", paymentCount)
	}
}

func TestOrderCompletedWebhookIgnoresOtherEvents(t *testing.T) {
	h, db := setupOrderWebhookTest(t)
	seedWebhookVendorProduct(t, db)

	body := []byte(`{"event":"order.refunded","order":{"external_id":1,"order_no":"WEBHOOK005"}}`)
	w := postWebhook(t, h, body, signWebhookBody(body))

	var resp struct {
		StatusCode int                    `json:"status_code"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if processed, _ := resp.Data["processed"].(bool); processed {
		t.Fatalf("event should not be processed")
	}

	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("no order should be ingested, got %d", count)
	}
}
