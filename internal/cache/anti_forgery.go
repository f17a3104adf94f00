package cache

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/vendor-payments/internal/logger"
)

func antiForgeryKey(adminID uint) string {
	return fmt.Sprintf("anti_forgery:admin:%d", adminID)
}

// SetAntiForgeryToken 写入管理员防伪令牌
func SetAntiForgeryToken(ctx context.Context, adminID uint, token string, ttl time.Duration) error {
	if adminID == 0 || token == "" {
		return nil
	}
	return SetString(ctx, antiForgeryKey(adminID), token, ttl)
}

// ConsumeAntiForgeryToken 校验并消费管理员防伪令牌，令牌一次有效。
// 缓存未启用时跳过校验，返回 true。
func ConsumeAntiForgeryToken(ctx context.Context, adminID uint, token string) (bool, error) {
	if !Enabled() {
		return true, nil
	}
	if adminID == 0 || token == "" {
		return false, nil
	}
	stored, hit, err := GetString(ctx, antiForgeryKey(adminID))
	if err != nil {
		return false, err
	}
	if !hit {
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return false, nil
	}
	// 校验已通过，删除失败只记日志，令牌最迟随 TTL 过期
	if err := DelAntiForgeryToken(ctx, adminID); err != nil {
		logger.Warnw("anti_forgery_token_del_failed", "admin_id", adminID, "error", err)
	}
	return true, nil
}

// DelAntiForgeryToken 删除管理员防伪令牌
func DelAntiForgeryToken(ctx context.Context, adminID uint) error {
	if adminID == 0 {
		return nil
	}
	return Del(ctx, antiForgeryKey(adminID))
}
