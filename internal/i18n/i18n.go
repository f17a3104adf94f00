package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认语言
const DefaultLocale = "en-US"

// ResolveLocale 解析请求语言（query 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := normalizeLocale(c.Query("locale")); locale != "" {
		return locale
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		if idx := strings.Index(part, ";"); idx >= 0 {
			part = part[:idx]
		}
		if locale := normalizeLocale(part); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// T 按语言翻译消息 key，未命中时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译带参数的消息 key
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func normalizeLocale(raw string) string {
	normalized := strings.TrimSpace(raw)
	if normalized == "" {
		return ""
	}
	lower := strings.ToLower(normalized)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return "zh-CN"
	case strings.HasPrefix(lower, "en"):
		return "en-US"
	}
	return ""
}

var catalog = map[string]map[string]string{
	"en-US": {
		"error.bad_request":               "Invalid request",
		"error.unauthorized":              "Unauthorized",
		"error.forbidden":                 "You do not have sufficient permissions to perform this action",
		"error.internal":                  "Internal server error",
		"error.invalid_credentials":       "Invalid username or password",
		"error.old_password_invalid":      "Old password is incorrect",
		"error.password_policy":           "Password does not meet the security policy",
		"error.password_min_length":       "Password must be at least %d characters",
		"error.password_require_upper":    "Password must contain an uppercase letter",
		"error.password_require_lower":    "Password must contain a lowercase letter",
		"error.password_require_number":   "Password must contain a digit",
		"error.password_require_special":  "Password must contain a special character",
		"error.login_too_many":            "Too many login attempts, please try again later",
		"error.rate_limit_unavailable":    "Rate limiter unavailable",
		"error.jwt_secret_missing":        "Server auth secret is not configured",
		"error.auth_header_missing":       "Authorization header missing",
		"error.auth_header_invalid":       "Authorization header invalid",
		"error.token_invalid":             "Invalid token",
		"error.token_revoked":             "Token has been revoked",
		"error.anti_forgery_invalid":      "Invalid request",
		"error.payment_invalid":           "Invalid payment ID",
		"error.product_invalid":           "Invalid product ID",
		"error.vendor_invalid":            "Invalid vendor ID",
		"error.order_invalid":             "Invalid order ID",
		"error.payment_not_found":         "Payment record not found",
		"error.payment_fetch_failed":      "Failed to fetch payment records",
		"error.payment_update_failed":     "Failed to update the payment status. Please try again.",
		"error.payment_status_invalid":    "Invalid payment status",
		"error.payment_status_required":   "Payment status is required",
		"error.order_not_found":           "Order not found",
		"error.order_fetch_failed":        "Failed to fetch orders",
		"error.product_not_found":         "Product not found",
		"error.product_fetch_failed":      "Failed to fetch products",
		"error.product_save_failed":       "Failed to save product",
		"error.payment_term_invalid":      "Invalid payment term",
		"error.vendor_not_found":          "Vendor not found",
		"error.vendor_fetch_failed":       "Failed to fetch vendors",
		"error.vendor_save_failed":        "Failed to save vendor",
		"error.vendor_exists":             "Vendor already exists",
		"error.vendor_disabled":           "Vendor account is disabled",
		"error.webhook_signature_invalid": "Invalid webhook signature",
		"error.webhook_payload_invalid":   "Invalid webhook payload",
	},
	"zh-CN": {
		"error.bad_request":               "无效的请求",
		"error.unauthorized":              "未登录或登录已过期",
		"error.forbidden":                 "没有执行该操作的权限",
		"error.internal":                  "服务器内部错误",
		"error.invalid_credentials":       "用户名或密码错误",
		"error.old_password_invalid":      "旧密码错误",
		"error.password_policy":           "密码不符合安全策略",
		"error.password_min_length":       "密码长度至少为 %d 位",
		"error.password_require_upper":    "密码必须包含大写字母",
		"error.password_require_lower":    "密码必须包含小写字母",
		"error.password_require_number":   "密码必须包含数字",
		"error.password_require_special":  "密码必须包含特殊字符",
		"error.login_too_many":            "登录尝试过于频繁，请稍后再试",
		"error.rate_limit_unavailable":    "限流服务不可用",
		"error.jwt_secret_missing":        "服务端未配置鉴权密钥",
		"error.auth_header_missing":       "缺少 Authorization 请求头",
		"error.auth_header_invalid":       "Authorization 请求头无效",
		"error.token_invalid":             "无效的 token",
		"error.token_revoked":             "token 已失效",
		"error.anti_forgery_invalid":      "无效的请求",
		"error.payment_invalid":           "无效的付款记录 ID",
		"error.product_invalid":           "无效的商品 ID",
		"error.vendor_invalid":            "无效的供应商 ID",
		"error.order_invalid":             "无效的订单 ID",
		"error.payment_not_found":         "付款记录不存在",
		"error.payment_fetch_failed":      "获取付款记录失败",
		"error.payment_update_failed":     "更新付款状态失败，请重试",
		"error.payment_status_invalid":    "无效的付款状态",
		"error.payment_status_required":   "付款状态不能为空",
		"error.order_not_found":           "订单不存在",
		"error.order_fetch_failed":        "获取订单失败",
		"error.product_not_found":         "商品不存在",
		"error.product_fetch_failed":      "获取商品失败",
		"error.product_save_failed":       "保存商品失败",
		"error.payment_term_invalid":      "无效的付款账期",
		"error.vendor_not_found":          "供应商不存在",
		"error.vendor_fetch_failed":       "获取供应商失败",
		"error.vendor_save_failed":        "保存供应商失败",
		"error.vendor_exists":             "供应商已存在",
		"error.vendor_disabled":           "供应商账号已停用",
		"error.webhook_signature_invalid": "无效的 webhook 签名",
		"error.webhook_payload_invalid":   "无效的 webhook 数据",
	},
}
