package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
type OrderItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID        uint           `gorm:"index;not null" json:"order_id"`                          // 订单ID
	ExternalItemID uint64         `gorm:"index;not null" json:"external_item_id"`                  // 商城平台订单项ID
	ProductID      uint           `gorm:"index" json:"product_id"`                                 // 商品ID（0 表示未能匹配本地商品）
	ProductName    string         `gorm:"not null" json:"product_name"`                            // 商品名称快照
	Quantity       int            `gorm:"not null;default:1" json:"quantity"`                      // 数量
	UnitPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 单价
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
