package repository

import (
	"errors"
	"time"

	"github.com/vendor-payments/internal/models"

	"gorm.io/gorm"
)

// VendorPaymentRepository 供应商付款记录数据访问接口
type VendorPaymentRepository interface {
	Create(payment *models.VendorPayment) error
	GetByID(id uint) (*models.VendorPayment, error)
	GetByOrderItem(orderID uint, orderItemID uint) (*models.VendorPayment, error)
	ListByOrderID(orderID uint) ([]models.VendorPayment, error)
	ListAdmin(filter VendorPaymentListFilter) ([]models.VendorPayment, int64, error)
	UpdateStatus(id uint, status string) error
	WithTx(tx *gorm.DB) *GormVendorPaymentRepository
}

// GormVendorPaymentRepository GORM 实现
type GormVendorPaymentRepository struct {
	db *gorm.DB
}

// NewVendorPaymentRepository 创建供应商付款记录仓库
func NewVendorPaymentRepository(db *gorm.DB) *GormVendorPaymentRepository {
	return &GormVendorPaymentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVendorPaymentRepository) WithTx(tx *gorm.DB) *GormVendorPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormVendorPaymentRepository{db: tx}
}

// Create 创建付款记录
func (r *GormVendorPaymentRepository) Create(payment *models.VendorPayment) error {
	return r.db.Create(payment).Error
}

// GetByID 根据 ID 获取付款记录
func (r *GormVendorPaymentRepository) GetByID(id uint) (*models.VendorPayment, error) {
	var payment models.VendorPayment
	if err := r.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetByOrderItem 根据订单项获取付款记录
func (r *GormVendorPaymentRepository) GetByOrderItem(orderID uint, orderItemID uint) (*models.VendorPayment, error) {
	var payment models.VendorPayment
	result := r.db.Where("order_id = ? AND order_item_id = ?", orderID, orderItemID).Limit(1).Find(&payment)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &payment, nil
}

// ListByOrderID 获取订单的付款记录
func (r *GormVendorPaymentRepository) ListByOrderID(orderID uint) ([]models.VendorPayment, error) {
	var payments []models.VendorPayment
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ListAdmin 管理端付款记录列表
func (r *GormVendorPaymentRepository) ListAdmin(filter VendorPaymentListFilter) ([]models.VendorPayment, int64, error) {
	query := r.db.Model(&models.VendorPayment{})

	if filter.VendorID != 0 {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		query = query.Where("payment_status = ?", filter.Status)
	}
	if filter.PaymentTerm != "" {
		query = query.Where("payment_term = ?", filter.PaymentTerm)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("vendor LIKE ? OR product_name LIKE ?", like, like)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if !filter.SkipCount {
		if err := query.Count(&total).Error; err != nil {
			return nil, 0, err
		}
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var payments []models.VendorPayment
	if err := query.Order("id desc").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// UpdateStatus 仅更新付款状态字段
func (r *GormVendorPaymentRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.VendorPayment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": status,
			"updated_at":     time.Now(),
		}).Error
}
