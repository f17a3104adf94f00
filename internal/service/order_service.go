package service

import (
	"strings"
	"time"

	"github.com/vendor-payments/internal/constants"
	"github.com/vendor-payments/internal/models"
	"github.com/vendor-payments/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单镜像服务
// 订单数据来自商城平台 webhook，本系统只读镜像
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// IngestOrderItemInput webhook 订单项输入
type IngestOrderItemInput struct {
	ExternalItemID uint64
	ProductID      uint
	ProductName    string
	Quantity       int
	UnitPrice      decimal.Decimal
}

// IngestOrderInput webhook 订单输入
type IngestOrderInput struct {
	ExternalID  uint64
	OrderNo     string
	Currency    string
	TotalAmount decimal.Decimal
	CompletedAt *time.Time
	Items       []IngestOrderItemInput
}

// IngestCompletedOrder 落库已完成订单（按订单号幂等）
func (s *OrderService) IngestCompletedOrder(input IngestOrderInput) (*models.Order, error) {
	orderNo := strings.TrimSpace(input.OrderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}

	completedAt := input.CompletedAt
	if completedAt == nil {
		now := time.Now()
		completedAt = &now
	}

	existing, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// 重复投递：刷新状态；订单项缺失时按本次投递补建，
		// 否则之前写入中断的订单永远生成不了付款记录。
		if existing.Status != constants.OrderStatusCompleted {
			existing.Status = constants.OrderStatusCompleted
			existing.CompletedAt = completedAt
			if err := s.orderRepo.Update(existing); err != nil {
				return nil, err
			}
		}
		if len(existing.Items) == 0 && len(input.Items) > 0 {
			items := buildOrderItems(input.Items)
			err := models.DB.Transaction(func(tx *gorm.DB) error {
				return s.orderRepo.WithTx(tx).CreateItems(existing.ID, items)
			})
			if err != nil {
				return nil, err
			}
			existing.Items = items
		}
		return existing, nil
	}

	order := &models.Order{
		OrderNo:     orderNo,
		ExternalID:  input.ExternalID,
		Status:      constants.OrderStatusCompleted,
		Currency:    strings.TrimSpace(input.Currency),
		TotalAmount: models.NewMoneyFromDecimal(input.TotalAmount.Round(2)),
		CompletedAt: completedAt,
	}
	items := buildOrderItems(input.Items)

	// 订单与订单项一个事务落库，避免半写入的订单
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, items)
	})
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func buildOrderItems(inputs []IngestOrderItemInput) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(inputs))
	for _, item := range inputs {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items = append(items, models.OrderItem{
			ExternalItemID: item.ExternalItemID,
			ProductID:      item.ProductID,
			ProductName:    strings.TrimSpace(item.ProductName),
			Quantity:       quantity,
			UnitPrice:      models.NewMoneyFromDecimal(item.UnitPrice.Round(2)),
		})
	}
	return items
}

// ListAdmin 获取后台订单列表
func (s *OrderService) ListAdmin(status, orderNo string, page, pageSize int) ([]models.Order, int64, error) {
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   status,
		OrderNo:  orderNo,
	}
	return s.orderRepo.ListAdmin(filter)
}

// GetByID 获取订单详情
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
