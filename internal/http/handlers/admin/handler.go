package admin

import "github.com/vendor-payments/internal/provider"

// Handler 管理端 API 入口，付款记录的状态流转只在这里暴露。
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
