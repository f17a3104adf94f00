package admin

import (
	"errors"
	"strconv"

	"github.com/vendor-payments/internal/http/response"
	"github.com/vendor-payments/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetAdminProducts 获取商品列表
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var vendorID uint
	if raw := c.Query("vendor_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		vendorID = uint(parsed)
	}

	products, total, err := h.ProductService.ListAdmin(vendorID, c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetAdminProduct 获取商品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
		return
	}

	product, err := h.ProductService.GetByID(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		}
		return
	}

	response.Success(c, product)
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Slug        string          `json:"slug" binding:"required"`
	PriceAmount decimal.Decimal `json:"price_amount"`
	IsActive    *bool           `json:"is_active"`
}

// CreateAdminProduct 创建商品
func (h *Handler) CreateAdminProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Create(service.CreateProductInput{
		Name:        req.Name,
		Slug:        req.Slug,
		PriceAmount: req.PriceAmount,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_save_failed", err)
		return
	}

	requestLog(c).Infow("admin_product_created", "product_id", product.ID, "slug", product.Slug)
	response.Success(c, product)
}

// UpdateProductRequest 更新商品请求
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	PriceAmount *decimal.Decimal `json:"price_amount"`
	IsActive    *bool            `json:"is_active"`
}

// UpdateAdminProduct 更新商品
func (h *Handler) UpdateAdminProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Update(uint(id), service.UpdateProductInput{
		Name:        req.Name,
		PriceAmount: req.PriceAmount,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_save_failed", err)
		}
		return
	}

	response.Success(c, product)
}

// DeleteAdminProduct 删除商品
func (h *Handler) DeleteAdminProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
		return
	}

	if err := h.ProductService.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_save_failed", err)
		}
		return
	}

	requestLog(c).Infow("admin_product_deleted", "product_id", id)
	response.Success(c, gin.H{"deleted": true})
}

// VendorConfigRequest 商品供应商配置请求
type VendorConfigRequest struct {
	VendorID     uint            `json:"vendor_id" binding:"required"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	PaymentTerm  string          `json:"payment_term"`
}

// SaveAdminProductVendorConfig 保存商品的供应商配置
func (h *Handler) SaveAdminProductVendorConfig(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
		return
	}

	var req VendorConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.SaveVendorConfig(uint(id), service.VendorConfigInput{
		VendorID:     req.VendorID,
		PurchaseCost: req.PurchaseCost,
		PaymentTerm:  req.PaymentTerm,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		case errors.Is(err, service.ErrVendorNotFound):
			respondError(c, response.CodeBadRequest, "error.vendor_not_found", nil)
		case errors.Is(err, service.ErrPaymentTermInvalid):
			respondError(c, response.CodeBadRequest, "error.payment_term_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_save_failed", err)
		}
		return
	}

	requestLog(c).Infow("admin_product_vendor_config_saved",
		"product_id", product.ID,
		"vendor_id", req.VendorID,
		"payment_term", product.PaymentTerm,
	)
	response.Success(c, product)
}
