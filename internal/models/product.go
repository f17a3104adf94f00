package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
// 供应商采购配置（vendor_id / purchase_cost / payment_term）挂在商品上，
// 仅在生成付款记录时读取一次。
type Product struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name         string         `gorm:"not null" json:"name"`                                      // 商品名称
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	PriceAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 售价
	VendorID     uint           `gorm:"index" json:"vendor_id"`                                    // 供应商ID（0 表示未配置）
	PurchaseCost Money          `gorm:"type:decimal(20,2);not null;default:0" json:"purchase_cost"` // 采购成本（非负）
	PaymentTerm  string         `gorm:"type:varchar(50)" json:"payment_term"`                      // 付款账期
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Vendor *Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"` // 供应商信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
