package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/vendor-payments/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// AdminAuthState 管理员鉴权快照
// token_invalid_before 为 Unix 秒时间戳，0 表示未设置
// 该结构仅用于服务端 Redis 缓存
type AdminAuthState struct {
	AdminID            uint   `json:"admin_id"`
	Username           string `json:"username"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	IsSuper            bool   `json:"is_super"`
	UpdatedAt          int64  `json:"updated_at"`
}

// VendorAuthState 供应商鉴权快照
type VendorAuthState struct {
	VendorID           uint   `json:"vendor_id"`
	Name               string `json:"name"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	IsActive           bool   `json:"is_active"`
	UpdatedAt          int64  `json:"updated_at"`
}

func adminAuthStateKey(adminID uint) string {
	return fmt.Sprintf("auth:admin:%d", adminID)
}

func vendorAuthStateKey(vendorID uint) string {
	return fmt.Sprintf("auth:vendor:%d", vendorID)
}

// BuildAdminAuthState 从管理员模型构建鉴权快照
func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	state := &AdminAuthState{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		IsSuper:      admin.IsSuper,
		UpdatedAt:    time.Now().Unix(),
	}
	if admin.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = admin.TokenInvalidBefore.Unix()
	}
	return state
}

// BuildVendorAuthState 从供应商模型构建鉴权快照
func BuildVendorAuthState(vendor *models.Vendor) *VendorAuthState {
	if vendor == nil {
		return nil
	}
	state := &VendorAuthState{
		VendorID:     vendor.ID,
		Name:         vendor.Name,
		TokenVersion: vendor.TokenVersion,
		IsActive:     vendor.IsActive,
		UpdatedAt:    time.Now().Unix(),
	}
	if vendor.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = vendor.TokenInvalidBefore.Unix()
	}
	return state
}

// GetAdminAuthState 获取管理员鉴权快照
func GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	if adminID == 0 {
		return nil, false, nil
	}
	var state AdminAuthState
	hit, err := GetJSON(ctx, adminAuthStateKey(adminID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAdminAuthState 写入管理员鉴权快照
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.AdminID == 0 {
		return nil
	}
	return SetJSON(ctx, adminAuthStateKey(state.AdminID), state, authStateCacheTTL)
}

// DelAdminAuthState 删除管理员鉴权快照
func DelAdminAuthState(ctx context.Context, adminID uint) error {
	if adminID == 0 {
		return nil
	}
	return Del(ctx, adminAuthStateKey(adminID))
}

// GetVendorAuthState 获取供应商鉴权快照
func GetVendorAuthState(ctx context.Context, vendorID uint) (*VendorAuthState, bool, error) {
	if vendorID == 0 {
		return nil, false, nil
	}
	var state VendorAuthState
	hit, err := GetJSON(ctx, vendorAuthStateKey(vendorID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetVendorAuthState 写入供应商鉴权快照
func SetVendorAuthState(ctx context.Context, state *VendorAuthState) error {
	if state == nil || state.VendorID == 0 {
		return nil
	}
	return SetJSON(ctx, vendorAuthStateKey(state.VendorID), state, authStateCacheTTL)
}

// DelVendorAuthState 删除供应商鉴权快照
func DelVendorAuthState(ctx context.Context, vendorID uint) error {
	if vendorID == 0 {
		return nil
	}
	return Del(ctx, vendorAuthStateKey(vendorID))
}
