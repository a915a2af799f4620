package models

import (
	"time"

	"gorm.io/gorm"
)

// Invoice 請求書ヘッダ
type Invoice struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	InvoiceNumber string        `gorm:"uniqueIndex;size:64;not null" json:"invoice_number"`
	CompanyID     string        `gorm:"size:36;index" json:"company_id"`
	ClientID      *string       `gorm:"size:36;index" json:"client_id"`
	Title         string        `gorm:"size:200" json:"title"`
	InvoiceDate   time.Time     `gorm:"index" json:"invoice_date"`
	DueDate       time.Time     `gorm:"index" json:"due_date"`
	Status        string        `gorm:"size:16;not null;default:'draft'" json:"status"`                 // draft / issued / cancelled
	PaymentStatus string        `gorm:"size:16;not null;default:'unpaid';index" json:"payment_status"` // unpaid / paid / overdue
	Subtotal      Money         `gorm:"type:decimal(14,2);not null;default:0" json:"subtotal"`
	TaxAmount     Money         `gorm:"type:decimal(14,2);not null;default:0" json:"tax_amount"`
	TotalAmount   Money         `gorm:"type:decimal(14,2);not null;default:0" json:"total_amount"`
	Notes         string        `gorm:"type:text" json:"notes"`
	DocumentURL   string        `gorm:"size:500" json:"document_url"` // 保管済み HTML
	CreatedBy     *string       `gorm:"size:36" json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Client        *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// TableName テーブル名
func (Invoice) TableName() string {
	return "invoices"
}

// BeforeCreate ID 採番
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// InvoiceItem 請求明細
type InvoiceItem struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	InvoiceID   string    `gorm:"size:36;not null;index" json:"invoice_id"`
	ItemOrder   int       `gorm:"not null;default:0" json:"item_order"`
	Description string    `gorm:"size:500" json:"description"`
	Quantity    Quantity  `gorm:"type:decimal(12,2);not null;default:0" json:"quantity"`
	Unit        string    `gorm:"size:16" json:"unit"`
	UnitPrice   Money     `gorm:"type:decimal(14,2);not null;default:0" json:"unit_price"`
	Amount      Money     `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
	TaxAmount   Money     `gorm:"type:decimal(14,2);not null;default:0" json:"tax_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName テーブル名
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// BeforeCreate ID 採番
func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// VendorInvoice 仕入先からの請求書（支払予定）
type VendorInvoice struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	CompanyID           string     `gorm:"size:36;index" json:"company_id"`
	VendorID            *string    `gorm:"size:36;index" json:"vendor_id"`
	VendorName          string     `gorm:"size:200" json:"vendor_name"` // 取引先未登録時の名称
	VendorInvoiceNumber string     `gorm:"size:64" json:"vendor_invoice_number"`
	InvoiceDate         *time.Time `json:"invoice_date"`
	DueDate             *time.Time `gorm:"index" json:"due_date"`
	TotalAmount         Money      `gorm:"type:decimal(14,2);not null;default:0" json:"total_amount"`
	PaymentStatus       string     `gorm:"size:16;not null;default:'unpaid';index" json:"payment_status"`
	FileURLs            []string   `gorm:"serializer:json;type:text" json:"file_urls"`
	PDFURL              string     `gorm:"size:500" json:"pdf_url"`
	Notes               string     `gorm:"type:text" json:"notes"`
	CreatedBy           *string    `gorm:"size:36" json:"created_by"`
	CreatedAt           time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	Vendor              *Client    `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

// TableName テーブル名
func (VendorInvoice) TableName() string {
	return "vendor_invoices"
}

// BeforeCreate ID 採番
func (v *VendorInvoice) BeforeCreate(tx *gorm.DB) error {
	ensureID(&v.ID)
	return nil
}

// PrimaryFileURL 表示用ファイル URL。pdf_url を優先する
func (v *VendorInvoice) PrimaryFileURL() string {
	if v.PDFURL != "" {
		return v.PDFURL
	}
	if len(v.FileURLs) > 0 {
		return v.FileURLs[0]
	}
	return ""
}
