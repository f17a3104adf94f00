package models

import (
	"time"

	"gorm.io/gorm"
)

// Vendor 供应商账号表
// 付款记录通过 vendor_id 归属到供应商账号，而不是按展示名字符串匹配。
type Vendor struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                        // 主键
	Name               string         `gorm:"uniqueIndex;not null" json:"name"`            // 供应商名称（展示名）
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`           // 登录邮箱
	PasswordHash       string         `gorm:"not null" json:"-"`                           // 密码哈希
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                 // Token 版本
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                              // 该时间点前签发的 Token 失效
	IsActive           bool           `gorm:"not null;default:true;index" json:"is_active"` // 是否启用
	LastLoginAt        *time.Time     `json:"last_login_at"`                               // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                  // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间
}

// TableName 指定表名
func (Vendor) TableName() string {
	return "vendors"
}
