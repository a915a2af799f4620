package queue

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/maekabu-office/internal/config"
	"github.com/maekabu-office/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 既定のキュー名
	DefaultQueue = constants.QueueDefault

	archiveMaxRetry    = 3
	defaultConcurrency = 10
)

// Client asynq クライアント
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
}

// NewClient キュークライアントを生成する。無効設定なら何もしないクライアントを返す
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:       client,
		enabled:      true,
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled 有効か
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 接続を閉じる
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueInvoiceArchive 請求書保管タスクを投入する。無効時は何もしない
// 同じ請求書のタスクが待機中なら重複投入しない
func (c *Client) EnqueueInvoiceArchive(payload InvoiceArchivePayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewInvoiceArchiveTask(payload)
	if err != nil {
		return err
	}
	options := []asynq.Option{
		asynq.Queue(c.defaultQueue),
		asynq.MaxRetry(archiveMaxRetry),
		asynq.TaskID(TaskInvoiceArchive + ":" + strings.TrimSpace(payload.InvoiceID)),
	}
	_, err = c.client.Enqueue(task, append(options, opts...)...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskInvoiceArchive, err)
	}
	return nil
}

// BuildServerConfig ワーカー用の接続と並列度
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 1},
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			serverCfg.Concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			serverCfg.Queues = cfg.Queues
		}
	}
	return buildRedisOpt(cfg), serverCfg
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
