package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/idgen"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/queue"
	"github.com/maekabu-office/internal/repository"

	"gorm.io/gorm"
)

// InvoiceItemInput 明細の入力
type InvoiceItemInput struct {
	Description string          `json:"description"`
	Quantity    models.Quantity `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   models.Money    `json:"unit_price"`
}

// InvoiceInput 請求書の登録・更新内容
// Items が nil の更新は明細を変更しない
type InvoiceInput struct {
	CompanyID     string              `json:"company_id"`
	ClientID      *string             `json:"client_id"`
	InvoiceNumber string              `json:"invoice_number"`
	Title         string              `json:"title"`
	InvoiceDate   string              `json:"invoice_date"`
	DueDate       string              `json:"due_date"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	Subtotal      models.Money        `json:"subtotal"`
	Notes         string              `json:"notes"`
	Items         *[]InvoiceItemInput `json:"items"`
}

// InvoiceView 一覧用。取引先名を解決済み
type InvoiceView struct {
	models.Invoice
	ClientName string `json:"client_name"`
}

// InvoiceService 請求書管理
type InvoiceService struct {
	invoiceRepo      repository.InvoiceRepository
	ids              *idgen.Generator
	queueClient      *queue.Client
	numberPrefix     string
	defaultCompanyID string
	now              func() time.Time
}

// NewInvoiceService 請求書サービスを生成する
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, ids *idgen.Generator, queueClient *queue.Client, numberPrefix, defaultCompanyID string) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:      invoiceRepo,
		ids:              ids,
		queueClient:      queueClient,
		numberPrefix:     numberPrefix,
		defaultCompanyID: defaultCompanyID,
		now:              time.Now,
	}
}

// List 自社の請求書を支払期日の新しい順で返す
func (s *InvoiceService) List(filter repository.InvoiceListFilter) ([]InvoiceView, int64, error) {
	if strings.TrimSpace(filter.CompanyID) == "" {
		filter.CompanyID = s.defaultCompanyID
	}
	invoices, total, err := s.invoiceRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]InvoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		views = append(views, InvoiceView{Invoice: invoice, ClientName: clientNameOf(invoice.Client)})
	}
	return views, total, nil
}

func clientNameOf(client *models.Client) string {
	if client != nil && strings.TrimSpace(client.ClientName) != "" {
		return client.ClientName
	}
	return constants.UnknownName
}

// Get 明細付きで取得する
func (s *InvoiceService) Get(id string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// Create ヘッダと明細を 1 トランザクションで作成する
func (s *InvoiceService) Create(input InvoiceInput, createdBy string) (*models.Invoice, error) {
	invoice := &models.Invoice{
		Status:        constants.InvoiceStatusDraft,
		PaymentStatus: constants.PaymentStatusUnpaid,
		CompanyID:     s.defaultCompanyID,
	}
	if err := applyInvoiceInput(invoice, input); err != nil {
		return nil, err
	}
	invoice.InvoiceNumber = strings.TrimSpace(input.InvoiceNumber)
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = s.ids.InvoiceNumber(s.numberPrefix, s.now())
	}
	if createdBy = strings.TrimSpace(createdBy); createdBy != "" {
		invoice.CreatedBy = &createdBy
	}

	items := s.buildItems(invoice, input)
	err := s.invoiceRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.invoiceRepo.WithTx(tx)
		if err := repo.Create(invoice); err != nil {
			return err
		}
		return repo.ReplaceItems(invoice.ID, items)
	})
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	logger.Infow("invoice_created", "invoice_id", invoice.ID, "invoice_number", invoice.InvoiceNumber, "items", len(items))
	s.enqueueArchive(invoice.ID)
	return invoice, nil
}

// Update ヘッダを更新し、明細が送られた場合は差し替えて合計を再計算する
func (s *InvoiceService) Update(id string, input InvoiceInput) (*models.Invoice, error) {
	invoice, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyInvoiceInput(invoice, input); err != nil {
		return nil, err
	}
	if number := strings.TrimSpace(input.InvoiceNumber); number != "" {
		invoice.InvoiceNumber = number
	}

	replace := input.Items != nil
	var items []models.InvoiceItem
	if replace {
		items = s.buildItems(invoice, input)
	} else if len(invoice.Items) == 0 {
		applyTotals(invoice, ComputeInvoiceTotals([]InvoiceLine{{Quantity: models.NewQuantity(1), UnitPrice: input.Subtotal}}))
	}

	err = s.invoiceRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.invoiceRepo.WithTx(tx)
		if err := repo.Update(invoice); err != nil {
			return err
		}
		if !replace {
			return nil
		}
		return repo.ReplaceItems(invoice.ID, items)
	})
	if err != nil {
		return nil, err
	}
	s.enqueueArchive(invoice.ID)
	// 取引先と明細を保存後の状態で返す
	return s.Get(invoice.ID)
}

// enqueueArchive 保管タスクの投入失敗は書き込み結果に影響させない
func (s *InvoiceService) enqueueArchive(invoiceID string) {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueInvoiceArchive(queue.InvoiceArchivePayload{InvoiceID: invoiceID}); err != nil {
		logger.Warnw("invoice_archive_enqueue_failed", "invoice_id", invoiceID, "error", err)
	}
}

// Delete 明細とヘッダを 1 トランザクションで削除する
func (s *InvoiceService) Delete(id string) error {
	invoice, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.invoiceRepo.Transaction(func(tx *gorm.DB) error {
		return s.invoiceRepo.WithTx(tx).Delete(invoice.ID)
	})
}

// MarkOverdue 支払期日を過ぎた未入金の請求書を期日超過にする
func (s *InvoiceService) MarkOverdue(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.invoiceRepo.MarkOverdue(s.now())
}

// buildItems 明細を整形し合計をヘッダへ反映する。明細なしは入力の小計から算出する
func (s *InvoiceService) buildItems(invoice *models.Invoice, input InvoiceInput) []models.InvoiceItem {
	raw := make([]models.InvoiceItem, 0)
	if input.Items != nil {
		for _, item := range *input.Items {
			raw = append(raw, models.InvoiceItem{
				Description: strings.TrimSpace(item.Description),
				Quantity:    item.Quantity,
				Unit:        strings.TrimSpace(item.Unit),
				UnitPrice:   item.UnitPrice,
			})
		}
	}
	if len(raw) == 0 {
		applyTotals(invoice, ComputeInvoiceTotals([]InvoiceLine{{Quantity: models.NewQuantity(1), UnitPrice: input.Subtotal}}))
		return raw
	}
	items, totals := PrepareInvoiceItems(raw)
	applyTotals(invoice, totals)
	return items
}

func applyTotals(invoice *models.Invoice, totals InvoiceTotals) {
	invoice.Subtotal = totals.Subtotal
	invoice.TaxAmount = totals.TaxAmount
	invoice.TotalAmount = totals.TotalAmount
}

func applyInvoiceInput(invoice *models.Invoice, input InvoiceInput) error {
	invoiceDate, err := parseDate(input.InvoiceDate)
	if err != nil {
		return fmt.Errorf("%w: invoice_date: %v", ErrInvoiceInvalid, err)
	}
	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		return fmt.Errorf("%w: due_date: %v", ErrInvoiceInvalid, err)
	}
	if invoiceDate.IsZero() || dueDate.IsZero() {
		return fmt.Errorf("%w: invoice_date and due_date are required", ErrInvoiceInvalid)
	}
	if input.Subtotal.IsNegative() {
		return fmt.Errorf("%w: subtotal must not be negative", ErrInvoiceInvalid)
	}
	if input.Items != nil {
		for _, item := range *input.Items {
			if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
				return fmt.Errorf("%w: item quantity and unit_price must not be negative", ErrInvoiceInvalid)
			}
		}
	}

	if companyID := strings.TrimSpace(input.CompanyID); companyID != "" {
		invoice.CompanyID = companyID
	}
	invoice.ClientID = nil
	if input.ClientID != nil {
		if clientID := strings.TrimSpace(*input.ClientID); clientID != "" {
			invoice.ClientID = &clientID
		}
	}
	invoice.Title = strings.TrimSpace(input.Title)
	invoice.InvoiceDate = invoiceDate
	invoice.DueDate = dueDate
	if status := strings.TrimSpace(input.Status); status != "" {
		switch status {
		case constants.InvoiceStatusDraft, constants.InvoiceStatusIssued, constants.InvoiceStatusCancelled:
			invoice.Status = status
		default:
			return fmt.Errorf("%w: status %q", ErrInvoiceInvalid, status)
		}
	}
	if status := strings.TrimSpace(input.PaymentStatus); status != "" {
		if !validPaymentStatus(status) {
			return fmt.Errorf("%w: payment_status %q", ErrInvoiceInvalid, status)
		}
		invoice.PaymentStatus = status
	}
	invoice.Notes = input.Notes
	return nil
}

func validPaymentStatus(status string) bool {
	switch status {
	case constants.PaymentStatusUnpaid, constants.PaymentStatusPaid, constants.PaymentStatusOverdue:
		return true
	default:
		return false
	}
}

// parseDate YYYY-MM-DD（UTC）または RFC3339。空文字はゼロ値
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
