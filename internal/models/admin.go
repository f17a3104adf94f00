package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin 后台管理员。供应商付款记录的状态流转只允许管理员操作，
// 权限由 casbin 角色控制，IsSuper 账号不受角色约束。
type Admin struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                         // 主键
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`         // 登录账号
	PasswordHash       string         `gorm:"not null" json:"-"`                            // bcrypt 密码哈希
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                  // Token 版本，改密后自增使旧 Token 失效
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                               // 该时间点之前签发的 Token 一律拒绝
	IsSuper            bool           `gorm:"not null;default:false;index" json:"is_super"` // 超级管理员跳过 RBAC 校验
	LastLoginAt        *time.Time     `json:"last_login_at"`                                // 最后登录时间
	PasswordChangedAt  *time.Time     `json:"password_changed_at"`                          // 最近改密时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
