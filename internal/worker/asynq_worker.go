package worker

import (
	"context"
	"encoding/json"

	"github.com/vendor-payments/internal/logger"
	"github.com/vendor-payments/internal/provider"
	"github.com/vendor-payments/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVendorPaymentRecord, c.handleVendorPaymentRecord)
}

func (c *Consumer) handleVendorPaymentRecord(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_vendor_payment_record_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VendorPaymentRecordPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_vendor_payment_record_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_vendor_payment_record_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.VendorPaymentService == nil {
		logger.Warnw("worker_vendor_payment_record_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	created, err := c.VendorPaymentService.CreateForOrder(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_vendor_payment_record_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	logger.Infow("worker_vendor_payment_record_done", "order_id", payload.OrderID, "created", created)
	return nil
}
