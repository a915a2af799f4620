package admin

import "github.com/maekabu-office/internal/provider"

// Handler 業務 API の処理。全ルートでログインが必要
type Handler struct {
	*provider.Container
}

// New 処理を生成する
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
