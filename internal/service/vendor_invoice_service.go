package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/repository"
)

// VendorInvoiceInput 支払請求書の登録内容。file_url と file_name はアップロード結果
type VendorInvoiceInput struct {
	CompanyID           string       `json:"company_id"`
	VendorID            *string      `json:"vendor_id"`
	VendorName          string       `json:"vendor_name"`
	VendorInvoiceNumber string       `json:"vendor_invoice_number"`
	InvoiceDate         string       `json:"invoice_date"`
	DueDate             string       `json:"due_date"`
	TotalAmount         models.Money `json:"total_amount"`
	PaymentStatus       string       `json:"payment_status"`
	FileURL             string       `json:"file_url"`
	FileName            string       `json:"file_name"`
	FileURLs            []string     `json:"file_urls"`
	PDFURL              string       `json:"pdf_url"`
	Notes               string       `json:"notes"`
}

// VendorInvoiceView 一覧用。仕入先名と表示ファイル URL を解決済み
type VendorInvoiceView struct {
	models.VendorInvoice
	VendorName string  `json:"vendor_name"`
	FileURL    *string `json:"file_url"`
}

// VendorInvoiceService 支払請求書管理
type VendorInvoiceService struct {
	vendorInvoiceRepo repository.VendorInvoiceRepository
	defaultCompanyID  string
}

// NewVendorInvoiceService 支払請求書サービスを生成する
func NewVendorInvoiceService(vendorInvoiceRepo repository.VendorInvoiceRepository, defaultCompanyID string) *VendorInvoiceService {
	return &VendorInvoiceService{vendorInvoiceRepo: vendorInvoiceRepo, defaultCompanyID: defaultCompanyID}
}

// List 自社の支払請求書を支払期日の新しい順で返す
func (s *VendorInvoiceService) List(filter repository.VendorInvoiceListFilter) ([]VendorInvoiceView, error) {
	if strings.TrimSpace(filter.CompanyID) == "" {
		filter.CompanyID = s.defaultCompanyID
	}
	invoices, err := s.vendorInvoiceRepo.List(filter)
	if err != nil {
		return nil, err
	}
	views := make([]VendorInvoiceView, 0, len(invoices))
	for i := range invoices {
		views = append(views, vendorInvoiceViewOf(&invoices[i]))
	}
	return views, nil
}

func vendorInvoiceViewOf(invoice *models.VendorInvoice) VendorInvoiceView {
	view := VendorInvoiceView{VendorInvoice: *invoice, VendorName: constants.UnknownName}
	switch {
	case invoice.Vendor != nil && strings.TrimSpace(invoice.Vendor.ClientName) != "":
		view.VendorName = invoice.Vendor.ClientName
	case strings.TrimSpace(invoice.VendorName) != "":
		view.VendorName = invoice.VendorName
	}
	if url := invoice.PrimaryFileURL(); url != "" {
		view.FileURL = &url
	}
	return view
}

// Create 支払請求書を登録する。file_url と file_name が揃っていれば file_urls と pdf_url に展開する
func (s *VendorInvoiceService) Create(input VendorInvoiceInput, createdBy string) (*models.VendorInvoice, error) {
	invoiceDate, err := parseOptionalDate(input.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invoice_date: %v", ErrInvalidInput, err)
	}
	dueDate, err := parseOptionalDate(input.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: due_date: %v", ErrInvalidInput, err)
	}
	if input.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: total_amount must not be negative", ErrInvalidInput)
	}

	invoice := &models.VendorInvoice{
		CompanyID:           strings.TrimSpace(input.CompanyID),
		VendorName:          strings.TrimSpace(input.VendorName),
		VendorInvoiceNumber: strings.TrimSpace(input.VendorInvoiceNumber),
		InvoiceDate:         invoiceDate,
		DueDate:             dueDate,
		TotalAmount:         input.TotalAmount,
		PaymentStatus:       constants.PaymentStatusUnpaid,
		FileURLs:            input.FileURLs,
		PDFURL:              strings.TrimSpace(input.PDFURL),
		Notes:               input.Notes,
	}
	if invoice.CompanyID == "" {
		invoice.CompanyID = s.defaultCompanyID
	}
	if input.VendorID != nil {
		if vendorID := strings.TrimSpace(*input.VendorID); vendorID != "" {
			invoice.VendorID = &vendorID
		}
	}
	if status := strings.TrimSpace(input.PaymentStatus); status != "" {
		if !validPaymentStatus(status) {
			return nil, fmt.Errorf("%w: payment_status %q", ErrInvalidInput, status)
		}
		invoice.PaymentStatus = status
	}
	fileURL := strings.TrimSpace(input.FileURL)
	if fileURL != "" && strings.TrimSpace(input.FileName) != "" {
		invoice.FileURLs = []string{fileURL}
		invoice.PDFURL = fileURL
	}
	if invoice.FileURLs == nil {
		invoice.FileURLs = []string{}
	}
	if createdBy = strings.TrimSpace(createdBy); createdBy != "" {
		invoice.CreatedBy = &createdBy
	}

	if err := s.vendorInvoiceRepo.Create(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	t, err := parseDate(raw)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}
