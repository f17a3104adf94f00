package service

import (
	"strings"

	"github.com/vendor-payments/internal/constants"
	"github.com/vendor-payments/internal/logger"
	"github.com/vendor-payments/internal/models"
	"github.com/vendor-payments/internal/repository"
)

// VendorPaymentService 供应商付款记录服务
type VendorPaymentService struct {
	paymentRepo repository.VendorPaymentRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewVendorPaymentService 创建供应商付款记录服务
func NewVendorPaymentService(
	paymentRepo repository.VendorPaymentRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) *VendorPaymentService {
	return &VendorPaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// CreateForOrder 为订单生成供应商付款记录
// 每个订单项至多一条记录，重复触发时已存在的记录保持不变；
// 无法解析商品或商品未配置供应商的订单项跳过。
// 订单不存在时视为空操作。
func (s *VendorPaymentService) CreateForOrder(orderID uint) (int, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return 0, err
	}
	if order == nil {
		return 0, nil
	}

	productIDs := make([]uint, 0, len(order.Items))
	for _, item := range order.Items {
		if item.ProductID != 0 {
			productIDs = append(productIDs, item.ProductID)
		}
	}
	products, err := s.productRepo.GetByIDs(productIDs)
	if err != nil {
		return 0, err
	}
	productByID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	created := 0
	for _, item := range order.Items {
		product, ok := productByID[item.ProductID]
		if !ok {
			logger.Warnw("vendor_payment_item_skipped",
				"reason", "product_unresolved",
				"order_id", order.ID,
				"order_item_id", item.ID,
			)
			continue
		}
		if product.VendorID == 0 || product.Vendor == nil {
			logger.Warnw("vendor_payment_item_skipped",
				"reason", "vendor_unset",
				"order_id", order.ID,
				"order_item_id", item.ID,
				"product_id", product.ID,
			)
			continue
		}

		existing, err := s.paymentRepo.GetByOrderItem(order.ID, item.ID)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		productName := strings.TrimSpace(item.ProductName)
		if productName == "" {
			productName = product.Name
		}

		payment := &models.VendorPayment{
			VendorID:      product.VendorID,
			Vendor:        product.Vendor.Name,
			ProductName:   productName,
			OrderID:       order.ID,
			OrderItemID:   item.ID,
			OrderStatus:   order.Status,
			PaymentTerm:   product.PaymentTerm,
			PurchaseCost:  product.PurchaseCost,
			PaymentStatus: constants.VendorPaymentStatusPending,
		}
		if err := s.paymentRepo.Create(payment); err != nil {
			// 并发触发时唯一索引兜底，重查确认后跳过
			dup, dupErr := s.paymentRepo.GetByOrderItem(order.ID, item.ID)
			if dupErr == nil && dup != nil {
				continue
			}
			return created, err
		}
		created++
	}

	return created, nil
}

// ListAdmin 获取后台付款记录列表
func (s *VendorPaymentService) ListAdmin(filter repository.VendorPaymentListFilter) ([]models.VendorPayment, int64, error) {
	return s.paymentRepo.ListAdmin(filter)
}

// ListForVendor 获取供应商名下付款记录列表
func (s *VendorPaymentService) ListForVendor(vendorID uint, status string, page, pageSize int) ([]models.VendorPayment, int64, error) {
	if vendorID == 0 {
		return []models.VendorPayment{}, 0, nil
	}
	filter := repository.VendorPaymentListFilter{
		Page:     page,
		PageSize: pageSize,
		VendorID: vendorID,
		Status:   status,
	}
	return s.paymentRepo.ListAdmin(filter)
}

// ListByOrderID 获取订单关联的付款记录
func (s *VendorPaymentService) ListByOrderID(orderID uint) ([]models.VendorPayment, error) {
	return s.paymentRepo.ListByOrderID(orderID)
}

// GetByID 获取付款记录详情
func (s *VendorPaymentService) GetByID(id uint) (*models.VendorPayment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// GetForVendor 获取供应商名下付款记录详情
// 归属其他供应商的记录视为不存在
func (s *VendorPaymentService) GetForVendor(id uint, vendorID uint) (*models.VendorPayment, error) {
	payment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment.VendorID != vendorID {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// UpdateStatus 更新付款状态
// 状态值大小写敏感，必须是合法枚举；仅 payment_status 字段被修改
func (s *VendorPaymentService) UpdateStatus(id uint, status string) (*models.VendorPayment, error) {
	if !constants.ValidVendorPaymentStatuses[status] {
		return nil, ErrPaymentStatusInvalid
	}

	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	if payment.PaymentStatus != status {
		if err := s.paymentRepo.UpdateStatus(payment.ID, status); err != nil {
			return nil, err
		}
		payment.PaymentStatus = status
	}
	return payment, nil
}
