package constants

// 订单状态常量（来自商城平台的订单快照）
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusCompleted      = "completed"
	OrderStatusRefunded       = "refunded"
	OrderStatusCanceled       = "canceled"
)

// 供应商付款状态常量
const (
	VendorPaymentStatusPending    = "Pending"
	VendorPaymentStatusPaid       = "Paid"
	VendorPaymentStatusRefunded   = "Refunded"
	VendorPaymentStatusCreditNote = "Credit Note"
)

// ValidVendorPaymentStatuses 合法付款状态集合（大小写敏感，精确匹配）
var ValidVendorPaymentStatuses = map[string]bool{
	VendorPaymentStatusPending:    true,
	VendorPaymentStatusPaid:       true,
	VendorPaymentStatusRefunded:   true,
	VendorPaymentStatusCreditNote: true,
}

// 付款账期常量
const (
	PaymentTermPostPayment = "Post Payment"
	PaymentTermPrePayment  = "Pre Payment"
	PaymentTermWeekly      = "Weekly"
	PaymentTermMonthly     = "Monthly"
)

// ValidPaymentTerms 合法账期集合
var ValidPaymentTerms = map[string]bool{
	PaymentTermPostPayment: true,
	PaymentTermPrePayment:  true,
	PaymentTermWeekly:      true,
	PaymentTermMonthly:     true,
}

// 队列常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskVendorPaymentRecord = "vendor_payment:record"
)

// Webhook 常量
const (
	WebhookSignatureHeader     = "X-Webhook-Signature"
	WebhookEventOrderCompleted = "order.completed"
)

// 防伪令牌常量
const (
	AntiForgeryTokenHeader = "X-Anti-Forgery-Token"
)
