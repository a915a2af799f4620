package worker

import (
	"context"
	"errors"
	"time"

	"github.com/maekabu-office/internal/config"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	defaultOverdueSweepInterval = time.Hour
)

// Service 非同期キューサービス
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	sweepInterval time.Duration
}

// NewService 非同期キューサービスを生成する
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:          "worker",
		server:        server,
		mux:           mux,
		consumer:      consumer,
		sweepInterval: sweepIntervalOf(cfg.Billing),
	}, nil
}

func sweepIntervalOf(cfg config.BillingConfig) time.Duration {
	if cfg.OverdueSweepMinutes <= 0 {
		return defaultOverdueSweepInterval
	}
	return time.Duration(cfg.OverdueSweepMinutes) * time.Minute
}

// Name サービス名
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start サービスを起動する
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	// Run は独自にシグナルを待つので Start を使い、停止は Stop に任せる
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	if s.consumer != nil && s.consumer.Container != nil && s.consumer.InvoiceService != nil {
		go s.runOverdueSweepLoop(ctx)
	}
	<-ctx.Done()
	return nil
}

// Stop サービスを停止する
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runOverdueSweepLoop 期日超過の請求書を定期的に更新する
func (s *Service) runOverdueSweepLoop(ctx context.Context) {
	runOnce := func() {
		affected, err := s.consumer.InvoiceService.MarkOverdue(ctx)
		if err != nil {
			logger.Warnw("worker_invoice_overdue_sweep_failed", "error", err)
			return
		}
		if affected > 0 {
			logger.Infow("worker_invoice_overdue_sweep", "affected", affected)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
