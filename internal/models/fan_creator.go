package models

import "time"

// FanCreator クリエイター本人（口座・連絡先を保持）
type FanCreator struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	Status            string    `gorm:"size:32;index" json:"status"`
	RealName          string    `gorm:"size:100;index" json:"real_name"`
	CreatorName       string    `gorm:"size:100" json:"creator_name"`
	InvoiceNumber     string    `gorm:"size:32" json:"invoice_number"` // インボイス登録番号
	LoginID           string    `gorm:"size:100" json:"login_id"`
	TransferFeeBurden string    `gorm:"size:32" json:"transfer_fee_burden"` // 振込手数料負担
	BankCode          string    `gorm:"size:8" json:"bank_code"`
	BankName          string    `gorm:"size:100" json:"bank_name"`
	BranchCode        string    `gorm:"size:8" json:"branch_code"`
	BranchName        string    `gorm:"size:100" json:"branch_name"`
	AccountType       string    `gorm:"size:16" json:"account_type"`
	AccountHolder     string    `gorm:"size:100" json:"account_holder"`
	AccountNumber     string    `gorm:"size:32" json:"account_number"`
	Address           string    `gorm:"size:500" json:"address"`
	Phone             string    `gorm:"size:32" json:"phone"`
	Email             string    `gorm:"size:255" json:"email"`
	Birthday          *string   `gorm:"size:10" json:"birthday"` // YYYY-MM-DD
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName テーブル名
func (FanCreator) TableName() string {
	return "fan_creator"
}
