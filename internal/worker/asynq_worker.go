package worker

import (
	"context"
	"errors"
	"strings"

	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/provider"
	"github.com/maekabu-office/internal/queue"
	"github.com/maekabu-office/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 非同期タスクの消費者
type Consumer struct {
	*provider.Container
}

// NewConsumer 消費者を生成する
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register タスクハンドラを登録する
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskInvoiceArchive, c.handleInvoiceArchive)
}

func (c *Consumer) handleInvoiceArchive(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_invoice_archive_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseInvoiceArchivePayload(task)
	if err != nil {
		logger.Warnw("worker_invoice_archive_unmarshal_failed", "error", err)
		return err
	}
	invoiceID := strings.TrimSpace(payload.InvoiceID)
	if invoiceID == "" {
		logger.Debugw("worker_invoice_archive_skip_invalid_payload")
		return nil
	}
	if c.InvoiceDocumentService == nil {
		logger.Warnw("worker_invoice_archive_skip_service_nil", "invoice_id", invoiceID)
		return nil
	}
	url, err := c.InvoiceDocumentService.Archive(ctx, invoiceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound):
			logger.Debugw("worker_invoice_archive_skip_not_found", "invoice_id", invoiceID)
			return nil
		case errors.Is(err, service.ErrStorageUnavailable):
			// リトライしても解消しない
			logger.Warnw("worker_invoice_archive_storage_unavailable", "invoice_id", invoiceID)
			return nil
		default:
			logger.Warnw("worker_invoice_archive_failed", "invoice_id", invoiceID, "error", err)
			return err
		}
	}
	logger.Debugw("worker_invoice_archive_done", "invoice_id", invoiceID, "document_url", url)
	return nil
}
