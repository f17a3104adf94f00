package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单镜像表
// 订单归商城平台所有，本服务在 order.completed 事件到达时落一份镜像，
// 供付款记录生成与管理端查询使用。
type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo     string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	ExternalID  uint64         `gorm:"index;not null" json:"external_id"`                         // 商城平台订单ID
	Status      string         `gorm:"index;not null" json:"status"`                              // 订单状态（事件到达时的快照）
	Currency    string         `gorm:"not null" json:"currency"`                                  // 币种
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单金额
	CompletedAt *time.Time     `gorm:"index" json:"completed_at"`                                 // 完成时间
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
