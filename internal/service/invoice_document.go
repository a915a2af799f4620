package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/repository"
	"github.com/maekabu-office/internal/storage"
)

//go:embed templates/invoice.html.tmpl
var invoiceTemplateFS embed.FS

var invoiceTemplate = template.Must(
	template.New("invoice.html.tmpl").
		Funcs(template.FuncMap{"yen": formatYen, "jaDate": formatJaDate}).
		ParseFS(invoiceTemplateFS, "templates/invoice.html.tmpl"),
)

const defaultServiceDescription = "サービス料金"

// invoiceDocumentRow 明細表の 1 行（表示用に整形済み）
type invoiceDocumentRow struct {
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

type invoiceDocumentData struct {
	Invoice    *models.Invoice
	Company    *models.Company
	ClientName string
	Rows       []invoiceDocumentRow
}

// InvoiceDocumentService 請求書の HTML 生成と保管
type InvoiceDocumentService struct {
	invoiceRepo      repository.InvoiceRepository
	companyRepo      repository.CompanyRepository
	store            storage.ObjectStore
	bucket           string
	defaultCompanyID string
}

// NewInvoiceDocumentService 請求書書類サービスを生成する
func NewInvoiceDocumentService(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	store storage.ObjectStore,
	bucket, defaultCompanyID string,
) *InvoiceDocumentService {
	return &InvoiceDocumentService{
		invoiceRepo:      invoiceRepo,
		companyRepo:      companyRepo,
		store:            store,
		bucket:           bucket,
		defaultCompanyID: defaultCompanyID,
	}
}

// Render 現在のヘッダ・明細・会社情報から印刷用 HTML を生成する
func (s *InvoiceDocumentService) Render(id string) (*models.Invoice, []byte, error) {
	invoice, err := s.invoiceRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, nil, err
	}
	if invoice == nil {
		return nil, nil, ErrInvoiceNotFound
	}

	companyID := strings.TrimSpace(invoice.CompanyID)
	if companyID == "" {
		companyID = s.defaultCompanyID
	}
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, nil, err
	}

	html, err := RenderInvoiceHTML(invoice, company)
	if err != nil {
		return nil, nil, err
	}
	return invoice, html, nil
}

// Archive HTML をバケットへ保管し、document_url を記録する
func (s *InvoiceDocumentService) Archive(ctx context.Context, id string) (string, error) {
	if s.store == nil {
		return "", ErrStorageUnavailable
	}
	invoice, html, err := s.Render(id)
	if err != nil {
		return "", err
	}
	object := fmt.Sprintf("invoices/%s.html", invoice.InvoiceNumber)
	url, err := s.store.Put(ctx, s.bucket, object, "text/html; charset=utf-8", bytes.NewReader(html))
	if err != nil {
		return "", err
	}
	if err := s.invoiceRepo.UpdateDocumentURL(invoice.ID, url); err != nil {
		return "", err
	}
	logger.Infow("invoice_document_archived", "invoice_id", invoice.ID, "object", object)
	return url, nil
}

// RenderInvoiceHTML 請求書 HTML を生成する。company が nil の場合は未登録表示
func RenderInvoiceHTML(invoice *models.Invoice, company *models.Company) ([]byte, error) {
	data := invoiceDocumentData{
		Invoice:    invoice,
		Company:    company,
		ClientName: clientNameOf(invoice.Client),
		Rows:       documentRows(invoice),
	}
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// documentRows 明細が無い場合は件名（なければサービス料金）で小計 1 行にする
func documentRows(invoice *models.Invoice) []invoiceDocumentRow {
	if len(invoice.Items) == 0 {
		description := strings.TrimSpace(invoice.Title)
		if description == "" {
			description = defaultServiceDescription
		}
		return []invoiceDocumentRow{{
			Description: description,
			Quantity:    "1",
			UnitPrice:   formatYen(invoice.Subtotal),
			Amount:      formatYen(invoice.Subtotal),
		}}
	}
	rows := make([]invoiceDocumentRow, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		quantity := "1"
		if !item.Quantity.IsZero() {
			quantity = item.Quantity.String()
		}
		rows = append(rows, invoiceDocumentRow{
			Description: item.Description,
			Quantity:    quantity,
			UnitPrice:   formatYen(item.UnitPrice),
			Amount:      formatYen(item.Amount),
		})
	}
	return rows
}

// formatYen ¥1,234 形式。端数がある場合のみ小数 2 桁を付ける
func formatYen(amount models.Money) string {
	d := amount.Decimal
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	text := d.StringFixed(0)
	fraction := ""
	if !d.Equal(d.Truncate(0)) {
		fixed := d.StringFixed(2)
		dot := strings.IndexByte(fixed, '.')
		text, fraction = fixed[:dot], fixed[dot:]
	}
	return "¥" + sign + groupThousands(text) + fraction
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// formatJaDate 2024年5月1日 形式
func formatJaDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}
