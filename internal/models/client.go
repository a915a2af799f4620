package models

import (
	"time"

	"gorm.io/gorm"
)

// Client 取引先（請求先・仕入先）
type Client struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	CompanyID         string    `gorm:"size:36;index" json:"company_id"` // 所属する自社
	ClientName        string    `gorm:"size:200;not null;index" json:"client_name"`
	ClientNameKana    string    `gorm:"size:200" json:"client_name_kana"`
	PostalCode        string    `gorm:"size:16" json:"postal_code"`
	Address           string    `gorm:"size:500" json:"address"`
	Phone             string    `gorm:"size:32" json:"phone"`
	Email             string    `gorm:"size:255" json:"email"`
	ContactPerson     string    `gorm:"size:100" json:"contact_person"`
	Department        string    `gorm:"size:100" json:"department"`
	IsCustomer        bool      `gorm:"not null" json:"is_customer"`
	IsVendor          bool      `gorm:"not null;default:false" json:"is_vendor"`
	BankName          string    `gorm:"size:100" json:"bank_name"`
	BankBranch        string    `gorm:"size:100" json:"bank_branch"`
	BankAccountType   string    `gorm:"size:16" json:"bank_account_type"`
	BankAccountNumber string    `gorm:"size:32" json:"bank_account_number"`
	BankAccountName   string    `gorm:"size:100" json:"bank_account_name"`
	Notes             string    `gorm:"type:text" json:"notes"`
	CreatedBy         *string   `gorm:"size:36" json:"created_by"` // 登録した社員
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName テーブル名
func (Client) TableName() string {
	return "clients"
}

// BeforeCreate ID 採番
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
