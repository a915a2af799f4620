package public

import "github.com/maekabu-office/internal/provider"

// Handler ログイン前に呼べる API の処理
type Handler struct {
	*provider.Container
}

// New 処理を生成する
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
