package service

import (
	"context"
	"errors"
	"strings"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/repository"

	"gorm.io/gorm"
)

// FindCandidates 金額が完全一致する明細を返す。口座・種別は指定時のみ比較し、並び順は保つ
func FindCandidates(txs []models.BankTransaction, target models.Money, bankAccount, transactionType string) []models.BankTransaction {
	bankAccount = strings.TrimSpace(bankAccount)
	transactionType = strings.TrimSpace(transactionType)
	matched := make([]models.BankTransaction, 0)
	for _, tx := range txs {
		if !tx.Amount.Decimal.Equal(target.Decimal) {
			continue
		}
		if bankAccount != "" && tx.BankAccount != bankAccount {
			continue
		}
		if transactionType != "" && tx.TransactionType != transactionType {
			continue
		}
		matched = append(matched, tx)
	}
	return matched
}

// ReconciliationService 入金・振込申請と銀行明細の照合
type ReconciliationService struct {
	db           *gorm.DB
	bankRepo     repository.BankTransactionRepository
	depositRepo  repository.DepositRepository
	transferRepo repository.TransferRequestRepository
}

// NewReconciliationService 照合サービスを生成する
func NewReconciliationService(
	db *gorm.DB,
	bankRepo repository.BankTransactionRepository,
	depositRepo repository.DepositRepository,
	transferRepo repository.TransferRequestRepository,
) *ReconciliationService {
	return &ReconciliationService{
		db:           db,
		bankRepo:     bankRepo,
		depositRepo:  depositRepo,
		transferRepo: transferRepo,
	}
}

// NormalizePaymentKind type パラメータを検証する
func NormalizePaymentKind(raw string) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(raw))
	switch kind {
	case "":
		return "", ErrPaymentTypeRequired
	case constants.PaymentKindDeposit, constants.PaymentKindWithdrawal, constants.PaymentKindTransferRequest:
		return kind, nil
	default:
		return "", ErrInvalidPaymentType
	}
}

// ConfirmMatch 照合を確定する。記録と明細はそれぞれ一度しか紐付けない
func (s *ReconciliationService) ConfirmMatch(ctx context.Context, kind, recordID, bankTransactionID string) error {
	kind, err := NormalizePaymentKind(kind)
	if err != nil {
		return err
	}
	recordID = strings.TrimSpace(recordID)
	bankTransactionID = strings.TrimSpace(bankTransactionID)
	if recordID == "" || bankTransactionID == "" {
		return ErrIDRequired
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bankRepo := s.bankRepo.WithTx(tx)
		bankTx, err := bankRepo.GetByID(bankTransactionID)
		if err != nil {
			return err
		}
		if bankTx == nil {
			return ErrBankTransactionAbsent
		}

		switch kind {
		case constants.PaymentKindTransferRequest:
			return s.linkTransferRequest(tx, bankRepo, bankTx, recordID)
		default:
			return s.linkDeposit(tx, bankRepo, bankTx, recordID)
		}
	})
	if err != nil {
		return err
	}
	logger.Infow("payment_match_confirmed", "type", kind, "record_id", recordID, "bank_transaction_id", bankTransactionID)
	return nil
}

func (s *ReconciliationService) linkDeposit(tx *gorm.DB, bankRepo repository.BankTransactionRepository, bankTx *models.BankTransaction, recordID string) error {
	repo := s.depositRepo.WithTx(tx)
	record, err := repo.GetByID(recordID)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrPaymentNotFound
	}
	if record.Reconciled() {
		return ErrAlreadyReconciled
	}
	if err := ensureBankTransactionFree(bankRepo, bankTx.ID); err != nil {
		return err
	}
	ok, err := repo.LinkBankTransaction(record.ID, bankTx.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyReconciled
	}
	return nil
}

func (s *ReconciliationService) linkTransferRequest(tx *gorm.DB, bankRepo repository.BankTransactionRepository, bankTx *models.BankTransaction, recordID string) error {
	repo := s.transferRepo.WithTx(tx)
	record, err := repo.GetByID(recordID)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrPaymentNotFound
	}
	if record.Reconciled() {
		return ErrAlreadyReconciled
	}
	if record.Status == constants.TransferStatusRejected {
		return ErrTransferStatusInvalid
	}
	if err := ensureBankTransactionFree(bankRepo, bankTx.ID); err != nil {
		return err
	}
	ok, err := repo.LinkBankTransaction(record.ID, bankTx.ID, bankTx.TransactionDate)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyReconciled
	}
	return nil
}

func ensureBankTransactionFree(bankRepo repository.BankTransactionRepository, bankTransactionID string) error {
	linked, err := bankRepo.IsLinked(bankTransactionID)
	if err != nil {
		return err
	}
	if linked {
		return ErrBankTransactionLinked
	}
	return nil
}

// IsReconciliationConflict 照合の競合エラーか
func IsReconciliationConflict(err error) bool {
	return errors.Is(err, ErrAlreadyReconciled) || errors.Is(err, ErrBankTransactionLinked)
}
