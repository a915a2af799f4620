package models

import (
	"time"

	"gorm.io/gorm"
)

// TransferRequest クリエイターへの振込申請
type TransferRequest struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	FanPfCreatorID    string     `gorm:"size:36;not null;uniqueIndex:uq_transfer_request_work_month" json:"fan_pf_creator_id"`
	WorkYear          int        `gorm:"not null;uniqueIndex:uq_transfer_request_work_month" json:"work_year"`
	WorkMonth         int        `gorm:"not null;uniqueIndex:uq_transfer_request_work_month" json:"work_month"`
	DepositYear       int        `gorm:"not null" json:"deposit_year"`
	DepositMonth      int        `gorm:"not null" json:"deposit_month"`
	DepositAmount     Money      `gorm:"type:decimal(14,2);not null;default:0" json:"deposit_amount"`
	Note              string     `gorm:"type:text" json:"note"`
	Status            string     `gorm:"size:16;not null;default:'pending';index" json:"status"` // pending / approved / rejected / paid
	ApprovedBy        *string    `gorm:"size:36" json:"approved_by"`
	ApprovedAt        *time.Time `json:"approved_at"`
	PaymentDate       *time.Time `json:"payment_date"`
	BankTransactionID *string    `gorm:"size:36;uniqueIndex" json:"bank_transaction_id"`
	CreatedBy         *string    `gorm:"size:36" json:"created_by"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	PfCreator         *PfCreator `gorm:"foreignKey:FanPfCreatorID" json:"fan_pf_creator,omitempty"`
	Approver          *Employee  `gorm:"foreignKey:ApprovedBy" json:"approved_employee,omitempty"`
}

// TableName テーブル名
func (TransferRequest) TableName() string {
	return "fan_platform_transfer_requests"
}

// BeforeCreate ID 採番
func (t *TransferRequest) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

// Reconciled 銀行明細と照合済みか
func (t *TransferRequest) Reconciled() bool {
	return t.BankTransactionID != nil && *t.BankTransactionID != ""
}
