package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceRepository 請求書データアクセス
type InvoiceRepository interface {
	List(filter InvoiceListFilter) ([]models.Invoice, int64, error)
	GetByID(id string) (*models.Invoice, error)
	Create(invoice *models.Invoice) error
	Update(invoice *models.Invoice) error
	Delete(id string) error
	ReplaceItems(invoiceID string, items []models.InvoiceItem) error
	UpdateDocumentURL(id, url string) error
	MarkOverdue(now time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormInvoiceRepository
}

// GormInvoiceRepository GORM 実装
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository 請求書リポジトリを生成する
func NewInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// WithTx トランザクションに束縛する
func (r *GormInvoiceRepository) WithTx(tx *gorm.DB) *GormInvoiceRepository {
	if tx == nil {
		return r
	}
	return &GormInvoiceRepository{db: tx}
}

// Transaction ヘッダと明細の書き込みをまとめる
func (r *GormInvoiceRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// List 支払期日の新しい順
func (r *GormInvoiceRepository) List(filter InvoiceListFilter) ([]models.Invoice, int64, error) {
	query := r.db.Model(&models.Invoice{})
	if companyID := strings.TrimSpace(filter.CompanyID); companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}
	if status := strings.TrimSpace(filter.PaymentStatus); status != "" {
		query = query.Where("payment_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	invoices := make([]models.Invoice, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Client").Order("due_date DESC").Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// GetByID 取引先と明細（表示順）を含めて取得する
func (r *GormInvoiceRepository) GetByID(id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("item_order ASC") }).
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// Create ヘッダのみ作成する（明細は ReplaceItems で書き込む）
func (r *GormInvoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Omit(clause.Associations).Create(invoice).Error
}

// Update ヘッダを更新する
func (r *GormInvoiceRepository) Update(invoice *models.Invoice) error {
	return r.db.Omit(clause.Associations).Save(invoice).Error
}

// Delete 明細ごと削除する
func (r *GormInvoiceRepository) Delete(id string) error {
	if err := r.db.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&models.Invoice{}).Error
}

// ReplaceItems 既存明細を削除して差し替える
func (r *GormInvoiceRepository) ReplaceItems(invoiceID string, items []models.InvoiceItem) error {
	if err := r.db.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].InvoiceID = invoiceID
	}
	return r.db.Create(&items).Error
}

// UpdateDocumentURL 保管済み書類の URL を記録する
func (r *GormInvoiceRepository) UpdateDocumentURL(id, url string) error {
	return r.db.Model(&models.Invoice{}).Where("id = ?", id).Update("document_url", url).Error
}

// MarkOverdue 支払期日を過ぎた未入金の請求書を期日超過にする
func (r *GormInvoiceRepository) MarkOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.Invoice{}).
		Where("payment_status = ? AND due_date < ?", constants.PaymentStatusUnpaid, now).
		Update("payment_status", constants.PaymentStatusOverdue)
	return result.RowsAffected, result.Error
}

// VendorInvoiceRepository 支払請求書データアクセス
type VendorInvoiceRepository interface {
	List(filter VendorInvoiceListFilter) ([]models.VendorInvoice, error)
	Create(invoice *models.VendorInvoice) error
}

// GormVendorInvoiceRepository GORM 実装
type GormVendorInvoiceRepository struct {
	db *gorm.DB
}

// NewVendorInvoiceRepository 支払請求書リポジトリを生成する
func NewVendorInvoiceRepository(db *gorm.DB) *GormVendorInvoiceRepository {
	return &GormVendorInvoiceRepository{db: db}
}

// List 支払期日の新しい順
func (r *GormVendorInvoiceRepository) List(filter VendorInvoiceListFilter) ([]models.VendorInvoice, error) {
	query := r.db.Model(&models.VendorInvoice{})
	if companyID := strings.TrimSpace(filter.CompanyID); companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}
	if status := strings.TrimSpace(filter.PaymentStatus); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	invoices := make([]models.VendorInvoice, 0)
	if err := query.Preload("Vendor").Order("due_date DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Create 作成
func (r *GormVendorInvoiceRepository) Create(invoice *models.VendorInvoice) error {
	return r.db.Omit(clause.Associations).Create(invoice).Error
}
