package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	VendorID   uint
	Search     string
	OnlyActive bool
	WithVendor bool
}

// VendorListFilter 查询供应商列表的过滤条件
type VendorListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// VendorPaymentListFilter 查询供应商付款记录列表的过滤条件
type VendorPaymentListFilter struct {
	Page        int
	PageSize    int
	VendorID    uint
	OrderID     uint
	Status      string
	PaymentTerm string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SkipCount   bool
}
