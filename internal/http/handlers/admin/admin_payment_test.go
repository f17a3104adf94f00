package admin

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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

type adminPaymentFixture struct {
	VendorAID  uint
	VendorBID  uint
	OrderID    uint
	PaymentAID uint
	PaymentBID uint
}

func setupAdminPaymentHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_payment_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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

	paymentRepo := repository.NewVendorPaymentRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	paymentService := service.NewVendorPaymentService(paymentRepo, orderRepo, productRepo)

	h := &Handler{Container: &provider.Container{
		VendorPaymentService: paymentService,
	}}
	return h, db
}

func seedAdminPaymentData(t *testing.T, db *gorm.DB) adminPaymentFixture {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)

	vendorA := models.Vendor{Name: "Vendor A", Email: "vendor_a@example.com", PasswordHash: "hash", IsActive: true}
	vendorB := models.Vendor{Name: "Vendor B", Email: "vendor_b@example.com", PasswordHash: "hash", IsActive: true}
	if err := db.Create(&vendorA).Error; err != nil {
		t.Fatalf("create vendor a failed: %v", err)
	}
	if err := db.Create(&vendorB).Error; err != nil {
		t.Fatalf("create vendor b failed: %v", err)
	}

	completedAt := now
	order := models.Order{
		OrderNo:     "ADMHANDLER001",
		ExternalID:  7001,
		Status:      constants.OrderStatusCompleted,
		Currency:    "USD",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		CompletedAt: &completedAt,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	paymentA := models.VendorPayment{
		VendorID:      vendorA.ID,
		Vendor:        vendorA.Name,
		ProductName:   "Widget",
		OrderID:       order.ID,
		OrderItemID:   8001,
		OrderStatus:   constants.OrderStatusCompleted,
		PaymentTerm:   constants.PaymentTermWeekly,
		PurchaseCost:  models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50)),
		PaymentStatus: constants.VendorPaymentStatusPending,
	}
	paymentB := models.VendorPayment{
		VendorID:      vendorB.ID,
		Vendor:        vendorB.Name,
		ProductName:   "Gadget",
		OrderID:       order.ID,
		OrderItemID:   8002,
		OrderStatus:   constants.OrderStatusCompleted,
		PaymentTerm:   constants.PaymentTermMonthly,
		PurchaseCost:  models.NewMoneyFromDecimal(decimal.NewFromFloat(8.00)),
		PaymentStatus: constants.VendorPaymentStatusPaid,
	}
	if err := db.Create(&paymentA).Error; err != nil {
		t.Fatalf("create payment a failed: %v", err)
	}
	if err := db.Create(&paymentB).Error; err != nil {
		t.Fatalf("create payment b failed: %v", err)
	}

	return adminPaymentFixture{
		VendorAID:  vendorA.ID,
		VendorBID:  vendorB.ID,
		OrderID:    order.ID,
		PaymentAID: paymentA.ID,
		PaymentBID: paymentB.ID,
	}
}

type responsePaginationAssert struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

func TestGetAdminPaymentsFiltersByVendorID(t *testing.T) {
	h, db := setupAdminPaymentHandlerTest(t)
	fixture := seedAdminPaymentData(t, db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	url := fmt.Sprintf("/admin/payments?vendor_id=%d&page=1&page_size=20", fixture.VendorAID)
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)

	h.GetAdminPayments(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}

	var resp struct {
		StatusCode int                      `json:"status_code"`
		Pagination responsePaginationAssert `json:"pagination"`
		Data       []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Pagination.Total != 1 {
		t.Fatalf("pagination total want 1 got %d", resp.Pagination.Total)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("data len want 1 got %d", len(resp.Data))
	}
	idRaw, ok := resp.Data[0]["id"].(float64)
	if !ok || uint(idRaw) != fixture.PaymentAID {
		t.Fatalf("row id want %d got %+v", fixture.PaymentAID, resp.Data[0]["id"])
	}
}

func TestGetAdminPaymentsBadQueryReturnsBadRequestCode(t *testing.T) {
	h, _ := setupAdminPaymentHandlerTest(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/payments?vendor_id=abc", nil)

	h.GetAdminPayments(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}

func TestUpdateVendorPaymentStatusRejectsUnknownStatus(t *testing.T) {
	h, db := setupAdminPaymentHandlerTest(t)
	fixture := seedAdminPaymentData(t, db)

	body := bytes.NewBufferString(`{"status":"paid"}`)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/admin/payments/1/status", body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", fixture.PaymentAID)}}

	h.UpdateVendorPaymentStatus(c)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}

	var stored models.VendorPayment
	if err := db.First(&stored, fixture.PaymentAID).Error; err != nil {
		t.Fatalf("load payment failed: %v", err)
	}
	if stored.PaymentStatus != constants.VendorPaymentStatusPending {
		t.Fatalf("payment status should stay Pending, got %s", stored.PaymentStatus)
	}
}

func TestUpdateVendorPaymentStatusUpdatesRecord(t *testing.T) {
	h, db := setupAdminPaymentHandlerTest(t)
	fixture := seedAdminPaymentData(t, db)

	body := bytes.NewBufferString(`{"status":"Credit Note"}`)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/admin/payments/1/status", body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", fixture.PaymentAID)}}

	h.UpdateVendorPaymentStatus(c)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}

	var stored models.VendorPayment
	if err := db.First(&stored, fixture.PaymentAID).Error; err != nil {
		t.Fatalf("load payment failed: %v", err)
	}
	if stored.PaymentStatus != constants.VendorPaymentStatusCreditNote {
		t.Fatalf("payment status want Credit Note got %s", stored.PaymentStatus)
	}
}

func TestGetAdminPaymentNotFound(t *testing.T) {
	h, _ := setupAdminPaymentHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/payments/999", nil)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	h.GetAdminPayment(c)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}

func TestExportAdminPaymentsByVendorID(t *testing.T) {
	h, db := setupAdminPaymentHandlerTest(t)
	fixture := seedAdminPaymentData(t, db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	url := fmt.Sprintf("/admin/payments/export?vendor_id=%d", fixture.VendorAID)
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)

	h.ExportAdminPayments(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if contentType := strings.TrimSpace(w.Header().Get("Content-Type")); !strings.HasPrefix(contentType, "text/csv") {
		t.Fatalf("content-type should be csv, got %s", contentType)
	}

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("read csv failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("csv rows want 2 got %d", len(records))
	}
	header := strings.Join(records[0], ",")
	if header != "id,vendor_id,vendor,product_name,order_id,order_item_id,order_status,payment_term,purchase_cost,transaction_detail,payment_status,created_at" {
		t.Fatalf("csv header mismatch, got %s", header)
	}
	if records[1][2] != "Vendor A" {
		t.Fatalf("csv row vendor want Vendor A got %s", records[1][2])
	}
	if records[1][8] != "12.5" && records[1][8] != "12.50" {
		t.Fatalf("csv row purchase_cost unexpected: %s", records[1][8])
	}
}

func TestParseAdminQueryUint(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/payments?vendor_id=12", nil)

	parsed, err := parseAdminQueryUint(c, "vendor_id")
	if err != nil {
		t.Fatalf("parse vendor_id failed: %v", err)
	}
	if parsed != 12 {
		t.Fatalf("parsed vendor_id want 12 got %d", parsed)
	}

	w, c = httptest.NewRecorder(), nil
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/payments?vendor_id=0", nil)
	if _, err = parseAdminQueryUint(c, "vendor_id"); err == nil {
		t.Fatalf("expected parse error for vendor_id=0")
	}

	w, c = httptest.NewRecorder(), nil
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/payments", nil)
	parsed, err = parseAdminQueryUint(c, "vendor_id")
	if err != nil {
		t.Fatalf("unexpected error for empty query: %v", err)
	}
	if parsed != 0 {
		t.Fatalf("parsed empty vendor_id want 0 got %d", parsed)
	}
}

func TestBuildAdminPaymentFilterParsesTimeRange(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/payments?created_from=2026-01-01T00:00:00Z&created_to=2026-02-01T00:00:00Z&status=Paid", nil)

	filter, err := buildAdminPaymentFilter(c, 1, 20)
	if err != nil {
		t.Fatalf("build filter failed: %v", err)
	}
	if filter.CreatedFrom == nil || filter.CreatedTo == nil {
		t.Fatalf("time range should be parsed")
	}
	if filter.Status != "Paid" {
		t.Fatalf("status want Paid got %s", filter.Status)
	}

	w, c = httptest.NewRecorder(), nil
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/payments?created_from=not-a-time", nil)
	if _, err := buildAdminPaymentFilter(c, 1, 20); err == nil {
		t.Fatalf("expected invalid created_from error")
	}
}
