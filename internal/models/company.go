package models

import (
	"time"

	"gorm.io/gorm"
)

// Company 自社（請求元）情報
type Company struct {
	ID                        string    `gorm:"primaryKey;size:36" json:"id"`
	CompanyName               string    `gorm:"size:200;not null;index" json:"company_name"`
	PostalCode                string    `gorm:"size:16" json:"postal_code"`
	Address                   string    `gorm:"size:500" json:"address"`
	Phone                     string    `gorm:"size:32" json:"phone"`
	Email                     string    `gorm:"size:255" json:"email"`
	RepresentativeName        string    `gorm:"size:100" json:"representative_name"`
	RepresentativeTitle       string    `gorm:"size:100" json:"representative_title"`
	InvoiceRegistrationNumber string    `gorm:"size:32" json:"invoice_registration_number"` // 適格請求書発行事業者登録番号
	BankName                  string    `gorm:"size:100" json:"bank_name"`
	BankBranch                string    `gorm:"size:100" json:"bank_branch"`
	BankAccountType           string    `gorm:"size:16" json:"bank_account_type"`
	BankAccountNumber         string    `gorm:"size:32" json:"bank_account_number"`
	BankAccountName           string    `gorm:"size:100" json:"bank_account_name"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// TableName テーブル名
func (Company) TableName() string {
	return "companies"
}

// BeforeCreate ID 採番
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
