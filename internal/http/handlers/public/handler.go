package public

import (
	"github.com/vendor-payments/internal/provider"
)

// Handler 公开接口处理器
type Handler struct {
	*provider.Container
}

// New 创建公开接口处理器
func New(container *provider.Container) *Handler {
	return &Handler{Container: container}
}
