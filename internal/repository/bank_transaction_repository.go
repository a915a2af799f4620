package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/models"

	"gorm.io/gorm"
)

// BankTransactionRepository 銀行明細データアクセス
type BankTransactionRepository interface {
	List(filter BankTransactionListFilter) ([]models.BankTransaction, int64, error)
	GetByID(id string) (*models.BankTransaction, error)
	CreateBatch(rows []models.BankTransaction) error
	IsLinked(id string) (bool, error)
	PlatformTotals(bankAccount string, start, end time.Time) ([]PlatformDepositTotalRow, error)
	WithTx(tx *gorm.DB) *GormBankTransactionRepository
}

// GormBankTransactionRepository GORM 実装
type GormBankTransactionRepository struct {
	db *gorm.DB
}

// NewBankTransactionRepository 銀行明細リポジトリを生成する
func NewBankTransactionRepository(db *gorm.DB) *GormBankTransactionRepository {
	return &GormBankTransactionRepository{db: db}
}

// WithTx トランザクションに束縛する
func (r *GormBankTransactionRepository) WithTx(tx *gorm.DB) *GormBankTransactionRepository {
	if tx == nil {
		return r
	}
	return &GormBankTransactionRepository{db: tx}
}

// List 取引日の新しい順。金額は完全一致で絞り込む。PageSize が 0 なら全件
func (r *GormBankTransactionRepository) List(filter BankTransactionListFilter) ([]models.BankTransaction, int64, error) {
	query := r.db.Model(&models.BankTransaction{})
	if account := strings.TrimSpace(filter.BankAccount); account != "" {
		query = query.Where("bank_account = ?", account)
	}
	if txType := strings.TrimSpace(filter.TransactionType); txType != "" {
		query = query.Where("transaction_type = ?", txType)
	}
	if filter.Amount != nil {
		query = query.Where("amount = ?", *filter.Amount)
	}
	if filter.Year > 0 && filter.Month >= 1 && filter.Month <= 12 {
		start := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("transaction_date >= ? AND transaction_date < ?", start, start.AddDate(0, 1, 0))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]models.BankTransaction, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("transaction_date DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetByID ID で取得する
func (r *GormBankTransactionRepository) GetByID(id string) (*models.BankTransaction, error) {
	var row models.BankTransaction
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// CreateBatch 明細を一括登録する
func (r *GormBankTransactionRepository) CreateBatch(rows []models.BankTransaction) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&rows, 200).Error
}

// IsLinked 入金・振込申請のいずれかから参照されているか
func (r *GormBankTransactionRepository) IsLinked(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.PlatformDeposit{}).Where("bank_transaction_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Model(&models.TransferRequest{}).Where("bank_transaction_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PlatformTotals 期間内の入金明細を摘要キーワードでプラットフォームに振り分けて合計する
func (r *GormBankTransactionRepository) PlatformTotals(bankAccount string, start, end time.Time) ([]PlatformDepositTotalRow, error) {
	keywords := []struct {
		platform string
		keyword  string
	}{
		{platform: models.PlatformMyfans, keyword: constants.DescriptionKeywordMyfans},
		{platform: models.PlatformFantia, keyword: constants.DescriptionKeywordFantia},
	}

	rows := make([]PlatformDepositTotalRow, 0, len(keywords))
	for _, item := range keywords {
		query := r.db.Model(&models.BankTransaction{}).
			Where("transaction_type = ?", constants.BankTransactionTypeDeposit).
			Where("transaction_date >= ? AND transaction_date < ?", start, end)
		if account := strings.TrimSpace(bankAccount); account != "" {
			query = query.Where("bank_account = ?", account)
		}
		query = applySearch(query, item.keyword, "description", "counterpart_name")

		var matched []models.BankTransaction
		if err := query.Select("id", "amount").Find(&matched).Error; err != nil {
			return nil, err
		}
		row := PlatformDepositTotalRow{Platform: item.platform, Count: int64(len(matched))}
		for _, tx := range matched {
			row.Total = models.NewMoneyFromDecimal(row.Total.Add(tx.Amount.Decimal))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
