package service

import "errors"

// 服务层统一错误定义，handler 层通过 errors.Is 映射为响应码
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("原密码错误")
	ErrWeakPassword       = errors.New("密码不符合安全策略")

	ErrVendorNotFound = errors.New("供应商不存在")
	ErrVendorExists   = errors.New("供应商已存在")
	ErrVendorDisabled = errors.New("供应商已停用")

	ErrProductNotFound    = errors.New("商品不存在")
	ErrPaymentTermInvalid = errors.New("付款条款无效")

	ErrOrderNotFound = errors.New("订单不存在")

	ErrPaymentNotFound      = errors.New("付款记录不存在")
	ErrPaymentStatusInvalid = errors.New("付款状态无效")
)
