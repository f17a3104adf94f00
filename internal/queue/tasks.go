package queue

import (
	"encoding/json"

	"github.com/vendor-payments/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVendorPaymentRecord 供应商付款记录生成任务
	TaskVendorPaymentRecord = constants.TaskVendorPaymentRecord
)

// VendorPaymentRecordPayload 付款记录生成任务载荷
type VendorPaymentRecordPayload struct {
	OrderID uint `json:"order_id"`
}

// NewVendorPaymentRecordTask 创建付款记录生成任务
func NewVendorPaymentRecordTask(payload VendorPaymentRecordPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVendorPaymentRecord, body), nil
}
