package service

import (
	"strings"

	"github.com/vendor-payments/internal/constants"
	"github.com/vendor-payments/internal/models"
	"github.com/vendor-payments/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	productRepo repository.ProductRepository
	vendorRepo  repository.VendorRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, vendorRepo repository.VendorRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
	}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	Name        string
	Slug        string
	PriceAmount decimal.Decimal
	IsActive    *bool
}

// UpdateProductInput 更新商品输入
type UpdateProductInput struct {
	Name        *string
	PriceAmount *decimal.Decimal
	IsActive    *bool
}

// VendorConfigInput 商品供应商配置输入
type VendorConfigInput struct {
	VendorID     uint
	PurchaseCost decimal.Decimal
	PaymentTerm  string
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(vendorID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		VendorID:   vendorID,
		Search:     strings.TrimSpace(search),
		WithVendor: true,
	}
	return s.productRepo.ListAdmin(filter)
}

// GetByID 获取商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.TrimSpace(input.Slug),
		PriceAmount: models.NewMoneyFromDecimal(input.PriceAmount.Round(2)),
		PaymentTerm: constants.PaymentTermPostPayment,
		IsActive:    isActive,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品基础信息
func (s *ProductService) Update(id uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.PriceAmount != nil {
		product.PriceAmount = models.NewMoneyFromDecimal(input.PriceAmount.Round(2))
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
// 已生成的付款记录持有名称快照，不受商品删除影响
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

// SaveVendorConfig 保存商品供应商配置
// 采购成本为负数时归零，付款账期必须是合法枚举值
func (s *ProductService) SaveVendorConfig(productID uint, input VendorConfigInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if input.VendorID != 0 {
		vendor, err := s.vendorRepo.GetByID(input.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, ErrVendorNotFound
		}
	}

	term := strings.TrimSpace(input.PaymentTerm)
	if term == "" {
		term = constants.PaymentTermPostPayment
	}
	if !constants.ValidPaymentTerms[term] {
		return nil, ErrPaymentTermInvalid
	}

	cost := input.PurchaseCost.Round(2)
	if cost.IsNegative() {
		cost = decimal.Zero
	}

	product.VendorID = input.VendorID
	product.PurchaseCost = models.NewMoneyFromDecimal(cost)
	product.PaymentTerm = term

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}
