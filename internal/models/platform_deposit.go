package models

import (
	"time"

	"gorm.io/gorm"
)

// PlatformDeposit プラットフォームからの月次入金（クリエイター単位）
type PlatformDeposit struct {
	ID                      string     `gorm:"primaryKey;size:36" json:"id"`
	FanPfCreatorID          *string    `gorm:"size:36;index" json:"fan_pf_creator_id"`
	Platform                string     `gorm:"size:32;index" json:"platform"`
	Year                    int        `gorm:"not null;index:idx_deposit_period" json:"year"`
	Month                   int        `gorm:"not null;index:idx_deposit_period" json:"month"`
	SalesAmount             Money      `gorm:"type:decimal(14,2);not null;default:0" json:"sales_amount"`
	RewardAmount            Money      `gorm:"type:decimal(14,2);not null;default:0" json:"reward_amount"`
	TransferFee             Money      `gorm:"type:decimal(14,2);not null;default:0" json:"transfer_fee"`
	PaymentAmountWithTax    Money      `gorm:"type:decimal(14,2);not null;default:0" json:"payment_amount_with_tax"`
	PaymentAmountWithoutTax Money      `gorm:"type:decimal(14,2);not null;default:0" json:"payment_amount_without_tax"`
	PaymentTax              Money      `gorm:"type:decimal(14,2);not null;default:0" json:"payment_tax"`
	CreatorRate             Rate       `gorm:"type:decimal(6,4);not null;default:0" json:"creator_rate"`
	CreatorReward           Money      `gorm:"type:decimal(14,2);not null;default:0" json:"creator_reward"` // 記録時点の算定値
	BankTransactionID       *string    `gorm:"size:36;uniqueIndex" json:"bank_transaction_id"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
	PfCreator               *PfCreator `gorm:"foreignKey:FanPfCreatorID" json:"fan_pf_creator,omitempty"`
}

// TableName テーブル名
func (PlatformDeposit) TableName() string {
	return "fan_platform_deposit"
}

// BeforeCreate ID 採番
func (d *PlatformDeposit) BeforeCreate(tx *gorm.DB) error {
	ensureID(&d.ID)
	return nil
}

// Reconciled 銀行明細と照合済みか
func (d *PlatformDeposit) Reconciled() bool {
	return d.BankTransactionID != nil && *d.BankTransactionID != ""
}
