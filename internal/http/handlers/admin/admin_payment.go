package admin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vendor-payments/internal/cache"
	"github.com/vendor-payments/internal/http/response"
	"github.com/vendor-payments/internal/repository"
	"github.com/vendor-payments/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const adminPaymentExportBatchSize = 500

// GetAdminPayments 获取付款记录列表
func (h *Handler) GetAdminPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter, err := buildAdminPaymentFilter(c, page, pageSize)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	payments, total, err := h.VendorPaymentService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, payments, pagination)
}

// GetAdminPayment 获取付款记录详情
func (h *Handler) GetAdminPayment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.payment_invalid", nil)
		return
	}

	payment, err := h.VendorPaymentService.GetByID(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			respondError(c, response.CodeNotFound, "error.payment_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.payment_fetch_failed", err)
		}
		return
	}

	response.Success(c, payment)
}

// UpdatePaymentStatusRequest 更新付款状态请求
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateVendorPaymentStatus 更新付款状态
// 这是付款状态唯一的写入口，仅修改 payment_status 字段
func (h *Handler) UpdateVendorPaymentStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.payment_invalid", nil)
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.payment_status_required", err)
		return
	}

	payment, err := h.VendorPaymentService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.payment_status_invalid", nil)
		case errors.Is(err, service.ErrPaymentNotFound):
			respondError(c, response.CodeNotFound, "error.payment_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.payment_update_failed", err)
		}
		return
	}

	requestLog(c).Infow("admin_payment_status_updated",
		"payment_id", payment.ID,
		"status", payment.PaymentStatus,
	)
	response.Success(c, payment)
}

// GetAntiForgeryToken 签发防伪令牌
// 状态变更请求须在 X-Anti-Forgery-Token 头携带该令牌
func (h *Handler) GetAntiForgeryToken(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	token := uuid.NewString()
	ttl := time.Duration(h.Config.AntiForgery.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if err := cache.SetAntiForgeryToken(c.Request.Context(), adminID, token, ttl); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_in": int(ttl.Seconds()),
	})
}

// ExportAdminPayments 导出付款记录 CSV
func (h *Handler) ExportAdminPayments(c *gin.Context) {
	filter, err := buildAdminPaymentFilter(c, 1, adminPaymentExportBatchSize)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	filter.SkipCount = true

	payments, _, err := h.VendorPaymentService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_fetch_failed", err)
		return
	}

	filename := fmt.Sprintf("vendor_payments_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write([]string{
		"id",
		"vendor_id",
		"vendor",
		"product_name",
		"order_id",
		"order_item_id",
		"order_status",
		"payment_term",
		"purchase_cost",
		"transaction_detail",
		"payment_status",
		"created_at",
	}); err != nil {
		requestLog(c).Errorw("admin_payment_export_header_write_failed", "error", err)
		return
	}

	page := 1
	for {
		for _, payment := range payments {
			if err := writer.Write([]string{
				strconv.FormatUint(uint64(payment.ID), 10),
				strconv.FormatUint(uint64(payment.VendorID), 10),
				payment.Vendor,
				payment.ProductName,
				strconv.FormatUint(uint64(payment.OrderID), 10),
				strconv.FormatUint(uint64(payment.OrderItemID), 10),
				payment.OrderStatus,
				payment.PaymentTerm,
				payment.PurchaseCost.String(),
				payment.TransactionDetail,
				payment.PaymentStatus,
				payment.CreatedAt.Format(time.RFC3339),
			}); err != nil {
				requestLog(c).Errorw("admin_payment_export_rows_write_failed", "page", page, "error", err)
				return
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			requestLog(c).Errorw("admin_payment_export_flush_failed", "page", page, "error", err)
			return
		}
		if len(payments) < adminPaymentExportBatchSize {
			break
		}
		page++
		filter.Page = page
		payments, _, err = h.VendorPaymentService.ListAdmin(filter)
		if err != nil {
			requestLog(c).Errorw("admin_payment_export_batch_fetch_failed", "page", page, "error", err)
			return
		}
	}
}

func parseAdminQueryUint(c *gin.Context, key string) (uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if parsed == 0 {
		return 0, errors.New("invalid query value")
	}
	return uint(parsed), nil
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func buildAdminPaymentFilter(c *gin.Context, page, pageSize int) (repository.VendorPaymentListFilter, error) {
	vendorID, err := parseAdminQueryUint(c, "vendor_id")
	if err != nil {
		return repository.VendorPaymentListFilter{}, err
	}
	orderID, err := parseAdminQueryUint(c, "order_id")
	if err != nil {
		return repository.VendorPaymentListFilter{}, err
	}

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		return repository.VendorPaymentListFilter{}, err
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		return repository.VendorPaymentListFilter{}, err
	}

	return repository.VendorPaymentListFilter{
		Page:        page,
		PageSize:    pageSize,
		VendorID:    vendorID,
		OrderID:     orderID,
		Status:      strings.TrimSpace(c.Query("status")),
		PaymentTerm: strings.TrimSpace(c.Query("payment_term")),
		Search:      strings.TrimSpace(c.Query("search")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}, nil
}
