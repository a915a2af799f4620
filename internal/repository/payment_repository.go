package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DepositRepository 月次入金データアクセス
type DepositRepository interface {
	List(filter DepositListFilter) ([]models.PlatformDeposit, error)
	GetByID(id string) (*models.PlatformDeposit, error)
	Create(deposit *models.PlatformDeposit) error
	LinkBankTransaction(id, bankTransactionID string) (bool, error)
	WithTx(tx *gorm.DB) *GormDepositRepository
}

// GormDepositRepository GORM 実装
type GormDepositRepository struct {
	db *gorm.DB
}

// NewDepositRepository 月次入金リポジトリを生成する
func NewDepositRepository(db *gorm.DB) *GormDepositRepository {
	return &GormDepositRepository{db: db}
}

// WithTx トランザクションに束縛する
func (r *GormDepositRepository) WithTx(tx *gorm.DB) *GormDepositRepository {
	if tx == nil {
		return r
	}
	return &GormDepositRepository{db: tx}
}

// List 入金一覧。OrderByMonth 指定時は年月の新しい順
func (r *GormDepositRepository) List(filter DepositListFilter) ([]models.PlatformDeposit, error) {
	query := r.db.Model(&models.PlatformDeposit{})
	if filter.Year > 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Month > 0 {
		query = query.Where("month = ?", filter.Month)
	}
	query = applyPlatformFilter(query, filter.Platform)
	if filter.OrderByMonth {
		query = query.Order("year DESC").Order("month DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	rows := make([]models.PlatformDeposit, 0)
	if err := query.Preload("PfCreator").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID ID で取得する
func (r *GormDepositRepository) GetByID(id string) (*models.PlatformDeposit, error) {
	var row models.PlatformDeposit
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Create 作成
func (r *GormDepositRepository) Create(deposit *models.PlatformDeposit) error {
	return r.db.Omit(clause.Associations).Create(deposit).Error
}

// LinkBankTransaction 未照合の行にだけ銀行明細を紐付ける。更新できたかを返す
func (r *GormDepositRepository) LinkBankTransaction(id, bankTransactionID string) (bool, error) {
	result := r.db.Model(&models.PlatformDeposit{}).
		Where("id = ? AND bank_transaction_id IS NULL", id).
		Update("bank_transaction_id", bankTransactionID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// TransferRequestRepository 振込申請データアクセス
type TransferRequestRepository interface {
	List(filter TransferRequestListFilter) ([]models.TransferRequest, error)
	GetByID(id string) (*models.TransferRequest, error)
	ExistsForWorkMonth(pfCreatorID string, workYear, workMonth int) (bool, error)
	Create(request *models.TransferRequest) error
	Delete(id string) error
	UpdateStatus(id, fromStatus, toStatus string, approvedBy *string, approvedAt *time.Time) (bool, error)
	LinkBankTransaction(id, bankTransactionID string, paymentDate time.Time) (bool, error)
	WithTx(tx *gorm.DB) *GormTransferRequestRepository
}

// GormTransferRequestRepository GORM 実装
type GormTransferRequestRepository struct {
	db *gorm.DB
}

// NewTransferRequestRepository 振込申請リポジトリを生成する
func NewTransferRequestRepository(db *gorm.DB) *GormTransferRequestRepository {
	return &GormTransferRequestRepository{db: db}
}

// WithTx トランザクションに束縛する
func (r *GormTransferRequestRepository) WithTx(tx *gorm.DB) *GormTransferRequestRepository {
	if tx == nil {
		return r
	}
	return &GormTransferRequestRepository{db: tx}
}

// List クリエイター・承認者を結合し、作業年月の新しい順で返す
func (r *GormTransferRequestRepository) List(filter TransferRequestListFilter) ([]models.TransferRequest, error) {
	query := r.db.Model(&models.TransferRequest{})
	if filter.WorkYear > 0 {
		query = query.Where("work_year = ?", filter.WorkYear)
	}
	if filter.WorkMonth > 0 {
		query = query.Where("work_month = ?", filter.WorkMonth)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	search := strings.TrimSpace(filter.Search)
	platform := strings.TrimSpace(filter.Platform)
	if search != "" || (platform != "" && platform != constants.PlatformFilterAll) {
		sub := applyPlatformFilter(r.db.Model(&models.PfCreator{}).Select("id"), platform)
		sub = applySearch(sub, search, "creator_name")
		query = query.Where("fan_pf_creator_id IN (?)", sub)
	}

	rows := make([]models.TransferRequest, 0)
	err := query.
		Preload("PfCreator").
		Preload("Approver", func(db *gorm.DB) *gorm.DB { return db.Select("id", "display_name") }).
		Order("work_year DESC").
		Order("work_month DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID クリエイター情報を含めて取得する
func (r *GormTransferRequestRepository) GetByID(id string) (*models.TransferRequest, error) {
	var row models.TransferRequest
	if err := r.db.Preload("PfCreator").Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ExistsForWorkMonth 同一クリエイター・作業年月の申請があるか
func (r *GormTransferRequestRepository) ExistsForWorkMonth(pfCreatorID string, workYear, workMonth int) (bool, error) {
	var count int64
	err := r.db.Model(&models.TransferRequest{}).
		Where("fan_pf_creator_id = ? AND work_year = ? AND work_month = ?", pfCreatorID, workYear, workMonth).
		Count(&count).Error
	return count > 0, err
}

// Create 作成
func (r *GormTransferRequestRepository) Create(request *models.TransferRequest) error {
	return r.db.Omit(clause.Associations).Create(request).Error
}

// Delete 物理削除
func (r *GormTransferRequestRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.TransferRequest{}).Error
}

// UpdateStatus 現在のステータスが fromStatus の場合のみ遷移させる
func (r *GormTransferRequestRepository) UpdateStatus(id, fromStatus, toStatus string, approvedBy *string, approvedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": toStatus}
	if approvedBy != nil {
		updates["approved_by"] = *approvedBy
	}
	if approvedAt != nil {
		updates["approved_at"] = *approvedAt
	}
	result := r.db.Model(&models.TransferRequest{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// LinkBankTransaction 未照合の申請に銀行明細を紐付け、支払済にする
func (r *GormTransferRequestRepository) LinkBankTransaction(id, bankTransactionID string, paymentDate time.Time) (bool, error) {
	result := r.db.Model(&models.TransferRequest{}).
		Where("id = ? AND bank_transaction_id IS NULL", id).
		Updates(map[string]interface{}{
			"bank_transaction_id": bankTransactionID,
			"status":              constants.TransferStatusPaid,
			"payment_date":        paymentDate,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
