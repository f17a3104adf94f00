package public

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/vendor-payments/internal/constants"
	"github.com/vendor-payments/internal/http/response"
	"github.com/vendor-payments/internal/queue"
	"github.com/vendor-payments/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OrderWebhookItem 订单完成事件中的订单项
type OrderWebhookItem struct {
	ExternalItemID uint64          `json:"external_item_id"`
	ProductID      uint            `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// OrderWebhookOrder 订单完成事件中的订单快照
type OrderWebhookOrder struct {
	ExternalID  uint64             `json:"external_id"`
	OrderNo     string             `json:"order_no"`
	Currency    string             `json:"currency"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	CompletedAt *time.Time         `json:"completed_at"`
	Items       []OrderWebhookItem `json:"items"`
}

// OrderWebhookPayload 商城平台订单完成事件
type OrderWebhookPayload struct {
	Event string            `json:"event"`
	Order OrderWebhookOrder `json:"order"`
}

// OrderCompletedWebhook 接收商城平台的订单完成事件
// 校验签名后落库订单镜像，并异步触发付款记录生成；
// 队列未启用时同步生成，保证事件不丢。
func (h *Handler) OrderCompletedWebhook(c *gin.Context) {
	log := requestLog(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warnw("order_webhook_body_read_failed", "error", err)
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	signature := strings.TrimSpace(c.GetHeader(constants.WebhookSignatureHeader))
	if !h.verifyWebhookSignature(body, signature) {
		log.Warnw("order_webhook_signature_invalid",
			"client_ip", c.ClientIP(),
			"body_size", len(body),
		)
		respondError(c, response.CodeUnauthorized, "error.webhook_signature_invalid", nil)
		return
	}

	var payload OrderWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Warnw("order_webhook_payload_invalid", "error", err)
		respondError(c, response.CodeBadRequest, "error.webhook_payload_invalid", err)
		return
	}
	if payload.Event != constants.WebhookEventOrderCompleted {
		log.Infow("order_webhook_event_ignored", "event", payload.Event)
		response.Success(c, gin.H{"accepted": true, "processed": false})
		return
	}

	input := service.IngestOrderInput{
		ExternalID:  payload.Order.ExternalID,
		OrderNo:     payload.Order.OrderNo,
		Currency:    payload.Order.Currency,
		TotalAmount: payload.Order.TotalAmount,
		CompletedAt: payload.Order.CompletedAt,
	}
	for _, item := range payload.Order.Items {
		input.Items = append(input.Items, service.IngestOrderItemInput{
			ExternalItemID: item.ExternalItemID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
		})
	}

	order, err := h.OrderService.IngestCompletedOrder(input)
	if err != nil {
		log.Warnw("order_webhook_ingest_failed",
			"order_no", payload.Order.OrderNo,
			"error", err,
		)
		respondError(c, response.CodeBadRequest, "error.webhook_payload_invalid", err)
		return
	}

	if h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueVendorPaymentRecord(queue.VendorPaymentRecordPayload{OrderID: order.ID}); err != nil {
			log.Warnw("order_webhook_enqueue_failed", "order_id", order.ID, "error", err)
			h.recordVendorPaymentsSync(c, order.ID)
		}
	} else {
		h.recordVendorPaymentsSync(c, order.ID)
	}

	log.Infow("order_webhook_processed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"items", len(payload.Order.Items),
	)
	response.Success(c, gin.H{
		"accepted":  true,
		"processed": true,
		"order_id":  order.ID,
	})
}

func (h *Handler) recordVendorPaymentsSync(c *gin.Context, orderID uint) {
	created, err := h.VendorPaymentService.CreateForOrder(orderID)
	if err != nil {
		requestLog(c).Errorw("order_webhook_record_failed", "order_id", orderID, "error", err)
		return
	}
	requestLog(c).Infow("order_webhook_record_done", "order_id", orderID, "created", created)
}

func (h *Handler) verifyWebhookSignature(body []byte, signature string) bool {
	secret := strings.TrimSpace(h.Config.Webhook.Secret)
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}
