package models

import (
	"time"
)

// VendorPayment 供应商付款记录表
// vendor / product_name / order_status / purchase_cost 均为创建时刻的快照，
// 之后不随源数据变化。(order_id, order_item_id) 唯一，重复投递事件不会产生重复行。
type VendorPayment struct {
	ID                uint      `gorm:"primarykey" json:"id"`                                       // 主键
	VendorID          uint      `gorm:"index;not null;default:0" json:"vendor_id"`                  // 供应商ID
	Vendor            string    `gorm:"not null" json:"vendor"`                                     // 供应商名称快照
	ProductName       string    `gorm:"not null" json:"product_name"`                               // 商品名称快照
	OrderID           uint      `gorm:"uniqueIndex:idx_vendor_payments_order_item;not null" json:"order_id"`       // 订单ID
	OrderItemID       uint      `gorm:"uniqueIndex:idx_vendor_payments_order_item;not null" json:"order_item_id"` // 订单项ID
	OrderStatus       string    `gorm:"type:varchar(50);not null" json:"order_status"`              // 订单状态快照
	PaymentTerm       string    `gorm:"type:varchar(50);not null" json:"payment_term"`              // 付款账期快照
	PurchaseCost      Money     `gorm:"type:decimal(20,2);not null;default:0" json:"purchase_cost"` // 采购成本快照
	TransactionDetail string    `gorm:"type:varchar(255)" json:"transaction_detail"`                // 交易备注（预留字段）
	PaymentStatus     string    `gorm:"type:varchar(50);index;not null;default:'Pending'" json:"payment_status"` // 付款状态
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt         time.Time `json:"updated_at"`                                                 // 更新时间
}

// TableName 指定表名
func (VendorPayment) TableName() string {
	return "vendor_payments"
}
