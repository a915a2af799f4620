package queue

import (
	"encoding/json"

	"github.com/maekabu-office/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskInvoiceArchive 請求書 HTML をバケットへ保管する
	TaskInvoiceArchive = constants.TaskInvoiceArchive
)

// InvoiceArchivePayload 請求書保管タスクのペイロード
type InvoiceArchivePayload struct {
	InvoiceID string `json:"invoice_id"`
}

// NewInvoiceArchiveTask 請求書保管タスクを作る
func NewInvoiceArchiveTask(payload InvoiceArchivePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInvoiceArchive, body), nil
}

// ParseInvoiceArchivePayload タスク本文を読む
func ParseInvoiceArchivePayload(task *asynq.Task) (InvoiceArchivePayload, error) {
	var payload InvoiceArchivePayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
