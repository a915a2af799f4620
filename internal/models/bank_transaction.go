package models

import (
	"time"

	"gorm.io/gorm"
)

// BankTransaction 銀行入出金明細（取込後は変更しない）
type BankTransaction struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	TransactionDate time.Time `gorm:"index" json:"transaction_date"`
	TransactionType string    `gorm:"size:16;not null;index" json:"transaction_type"` // deposit / withdrawal
	BankAccount     string    `gorm:"size:32;not null;index" json:"bank_account"`
	CounterpartName string    `gorm:"size:200" json:"counterpart_name"`
	Description     string    `gorm:"size:500" json:"description"`
	Amount          Money     `gorm:"type:decimal(14,2);not null;default:0;index" json:"amount"`
	Balance         Money     `gorm:"type:decimal(14,2);not null;default:0" json:"balance"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName テーブル名
func (BankTransaction) TableName() string {
	return "bank_transactions"
}

// BeforeCreate ID 採番
func (b *BankTransaction) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
