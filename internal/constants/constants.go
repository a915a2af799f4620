package constants

// 振込申請ステータス
const (
	TransferStatusPending  = "pending"
	TransferStatusApproved = "approved"
	TransferStatusRejected = "rejected"
	TransferStatusPaid     = "paid"
)

// 請求書ステータス
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusIssued    = "issued"
	InvoiceStatusCancelled = "cancelled"
)

// 入金ステータス（請求書・支払請求書共通）
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

// /payments の type パラメータ
const (
	PaymentKindDeposit         = "deposit"
	PaymentKindWithdrawal      = "withdrawal"
	PaymentKindTransferRequest = "transfer-request"
)

// 銀行明細
const (
	BankTransactionTypeDeposit    = "deposit"
	BankTransactionTypeWithdrawal = "withdrawal"
	DefaultBankAccount            = "MAIN002"
)

// クリエイター一覧のデータソース
const (
	CreatorSourceFan   = "fan_creator"
	CreatorSourcePf    = "fan_pf_creator"
	PlatformFilterAll  = "all"
	DepositStatusLabel = "入金済"
)

// 入金明細の摘要からプラットフォームを判定するキーワード
const (
	DescriptionKeywordMyfans = "トクネコ"
	DescriptionKeywordFantia = "トラノアナ"
)

// 請求書計算
const (
	// InvoiceTaxRatePercent 消費税率（%）
	InvoiceTaxRatePercent = 10
	// WorkMonthOffset 入金月から作業月を求める差分
	WorkMonthOffset = 2
	// UnknownName 名称を解決できない場合の表示
	UnknownName = "不明"
	// AgencyNameFallbackFormat 代理店名を解決できない場合の表示
	AgencyNameFallbackFormat = "Agency %s"
)

// 社員ロール
const (
	RoleAdmin      = "admin"
	RoleAccounting = "accounting"
	RoleStaff      = "staff"
	RoleViewer     = "viewer"
)

// SettlementCaveat 集計時に表示する注意書き
const SettlementCaveat = "※ CR料率、AG料率に関してはデータベースの最新の情報になるため、過去のデータを見た場合実際の計算と異なる場合があります。"

// 非同期キュー
const (
	QueueDefault = "default"
	// TaskInvoiceArchive 請求書 HTML の保管
	TaskInvoiceArchive = "invoice:archive"
)

// SessionCookieName セッション Cookie の既定名
const SessionCookieName = "session"
