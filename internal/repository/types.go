package repository

import "github.com/maekabu-office/internal/models"

// ClientListFilter 取引先一覧の条件
type ClientListFilter struct {
	CompanyID  string
	Search     string
	OnlyVendor bool
}

// PfCreatorListFilter プラットフォーム登録一覧の条件
type PfCreatorListFilter struct {
	Platform string
	Search   string
}

// InvoiceListFilter 請求書一覧の条件
type InvoiceListFilter struct {
	Page          int
	PageSize      int
	CompanyID     string
	PaymentStatus string
}

// VendorInvoiceListFilter 支払請求書一覧の条件
type VendorInvoiceListFilter struct {
	CompanyID     string
	PaymentStatus string
}

// BankTransactionListFilter 銀行明細一覧の条件
type BankTransactionListFilter struct {
	Page            int
	PageSize        int
	BankAccount     string
	TransactionType string
	Amount          *models.Money
	Year            int
	Month           int
}

// DepositListFilter 月次入金一覧の条件
type DepositListFilter struct {
	Year         int
	Month        int
	Platform     string
	OrderByMonth bool
}

// TransferRequestListFilter 振込申請一覧の条件
type TransferRequestListFilter struct {
	Search    string
	WorkYear  int
	WorkMonth int
	Platform  string
	Status    string
}

// PlatformDepositTotalRow 明細摘要から判定したプラットフォーム別入金合計
type PlatformDepositTotalRow struct {
	Platform string       `json:"platform"`
	Count    int64        `json:"count"`
	Total    models.Money `json:"total"`
}
