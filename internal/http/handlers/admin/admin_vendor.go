package admin

import (
	"errors"
	"strconv"

	"github.com/vendor-payments/internal/http/response"
	"github.com/vendor-payments/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminVendors 获取供应商列表
func (h *Handler) GetAdminVendors(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	onlyActive := c.Query("only_active") == "true"
	vendors, total, err := h.VendorService.ListAdmin(c.Query("search"), onlyActive, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.vendor_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, vendors, pagination)
}

// GetAdminVendor 获取供应商详情
func (h *Handler) GetAdminVendor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.vendor_invalid", nil)
		return
	}

	vendor, err := h.VendorService.GetByID(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVendorNotFound):
			respondError(c, response.CodeNotFound, "error.vendor_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.vendor_fetch_failed", err)
		}
		return
	}

	response.Success(c, vendor)
}

// CreateVendorRequest 创建供应商请求
type CreateVendorRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// CreateAdminVendor 创建供应商
func (h *Handler) CreateAdminVendor(c *gin.Context) {
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	vendor, err := h.VendorService.Create(service.CreateVendorInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVendorExists):
			respondError(c, response.CodeBadRequest, "error.vendor_exists", nil)
		case errors.Is(err, service.ErrWeakPassword):
			h.respondPasswordPolicyError(c, err)
		default:
			respondError(c, response.CodeInternal, "error.vendor_save_failed", err)
		}
		return
	}

	requestLog(c).Infow("admin_vendor_created", "vendor_id", vendor.ID, "name", vendor.Name)
	response.Success(c, vendor)
}

// UpdateVendorRequest 更新供应商请求
type UpdateVendorRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// UpdateAdminVendor 更新供应商
func (h *Handler) UpdateAdminVendor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.vendor_invalid", nil)
		return
	}

	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	vendor, err := h.VendorService.Update(uint(id), service.UpdateVendorInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVendorNotFound):
			respondError(c, response.CodeNotFound, "error.vendor_not_found", nil)
		case errors.Is(err, service.ErrVendorExists):
			respondError(c, response.CodeBadRequest, "error.vendor_exists", nil)
		case errors.Is(err, service.ErrWeakPassword):
			h.respondPasswordPolicyError(c, err)
		default:
			respondError(c, response.CodeInternal, "error.vendor_save_failed", err)
		}
		return
	}

	response.Success(c, vendor)
}
