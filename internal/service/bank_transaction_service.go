package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/repository"

	"github.com/shopspring/decimal"
)

// BankTransactionQuery 一覧の検索条件（クエリ文字列そのまま）
type BankTransactionQuery struct {
	BankAccount     string
	TransactionType string
	Amount          string
	Page            int
	PageSize        int
}

// BankTransactionImportRow 取込行
type BankTransactionImportRow struct {
	TransactionDate string       `json:"transaction_date"`
	TransactionType string       `json:"transaction_type"`
	BankAccount     string       `json:"bank_account"`
	CounterpartName string       `json:"counterpart_name"`
	Description     string       `json:"description"`
	Amount          models.Money `json:"amount"`
	Balance         models.Money `json:"balance"`
}

// PlatformDepositSummary 月次のプラットフォーム別入金
type PlatformDepositSummary struct {
	Year    int                                  `json:"year"`
	Month   int                                  `json:"month"`
	Rows    []repository.PlatformDepositTotalRow `json:"rows"`
	Total   models.Money                         `json:"total"`
	Account string                               `json:"bank_account"`
}

// BankTransactionService 銀行明細の参照と取込
type BankTransactionService struct {
	bankRepo       repository.BankTransactionRepository
	defaultAccount string
}

// NewBankTransactionService 銀行明細サービスを生成する
func NewBankTransactionService(bankRepo repository.BankTransactionRepository, defaultAccount string) *BankTransactionService {
	if strings.TrimSpace(defaultAccount) == "" {
		defaultAccount = constants.DefaultBankAccount
	}
	return &BankTransactionService{bankRepo: bankRepo, defaultAccount: defaultAccount}
}

// DefaultAccount 照合に使う口座
func (s *BankTransactionService) DefaultAccount() string {
	return s.defaultAccount
}

// List 口座・種別の既定値を補い、金額は完全一致で絞り込む。PageSize が 0 なら全件と件数を返す
func (s *BankTransactionService) List(query BankTransactionQuery) ([]models.BankTransaction, int64, error) {
	filter := repository.BankTransactionListFilter{
		Page:            query.Page,
		PageSize:        query.PageSize,
		BankAccount:     strings.TrimSpace(query.BankAccount),
		TransactionType: strings.TrimSpace(query.TransactionType),
	}
	if filter.BankAccount == "" {
		filter.BankAccount = s.defaultAccount
	}
	if filter.TransactionType == "" {
		filter.TransactionType = constants.BankTransactionTypeDeposit
	}
	if raw := strings.TrimSpace(query.Amount); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: amount %q", ErrInvalidInput, raw)
		}
		// 完全一致のみ。銭未満の指定は丸めずに弾く
		if !amount.Equal(amount.Truncate(2)) {
			return nil, 0, fmt.Errorf("%w: amount %q has more than 2 decimal places", ErrInvalidInput, raw)
		}
		money := models.NewMoneyFromDecimal(amount)
		filter.Amount = &money
	}
	return s.bankRepo.List(filter)
}

// Import 明細を一括登録する。1 行でも不正なら何も登録しない
func (s *BankTransactionService) Import(rows []BankTransactionImportRow) (int, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: no rows", ErrInvalidInput)
	}
	records := make([]models.BankTransaction, 0, len(rows))
	for i, row := range rows {
		date, err := parseDate(row.TransactionDate)
		if err != nil || date.IsZero() {
			return 0, fmt.Errorf("%w: row %d: transaction_date", ErrInvalidInput, i+1)
		}
		txType := strings.TrimSpace(row.TransactionType)
		if txType != constants.BankTransactionTypeDeposit && txType != constants.BankTransactionTypeWithdrawal {
			return 0, fmt.Errorf("%w: row %d: transaction_type %q", ErrInvalidInput, i+1, txType)
		}
		account := strings.TrimSpace(row.BankAccount)
		if account == "" {
			account = s.defaultAccount
		}
		records = append(records, models.BankTransaction{
			TransactionDate: date,
			TransactionType: txType,
			BankAccount:     account,
			CounterpartName: strings.TrimSpace(row.CounterpartName),
			Description:     strings.TrimSpace(row.Description),
			Amount:          row.Amount,
			Balance:         row.Balance,
		})
	}
	if err := s.bankRepo.CreateBatch(records); err != nil {
		return 0, err
	}
	logger.Infow("bank_transactions_imported", "rows", len(records))
	return len(records), nil
}

// PlatformSummary 指定月の入金明細を摘要からプラットフォーム別に合計する
func (s *BankTransactionService) PlatformSummary(year, month int) (*PlatformDepositSummary, error) {
	if year <= 0 || month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: year/month", ErrInvalidInput)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.bankRepo.PlatformTotals(s.defaultAccount, start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Total.Decimal)
	}
	return &PlatformDepositSummary{
		Year:    year,
		Month:   month,
		Rows:    rows,
		Total:   models.NewMoneyFromDecimal(total),
		Account: s.defaultAccount,
	}, nil
}
