package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/repository"

	"gorm.io/gorm"
)

// PaymentList /payments 一覧。type ごとにどちらか一方が入る
type PaymentList struct {
	Type             string                   `json:"type"`
	Deposits         []models.PlatformDeposit `json:"deposits,omitempty"`
	TransferRequests []SettlementRow          `json:"transfer_requests,omitempty"`
	Summary          *SettlementSummary       `json:"summary,omitempty"`
}

// TransferRequestInput 振込申請の作成内容。作業年月の省略時は入金月の 2 か月前
type TransferRequestInput struct {
	FanPfCreatorID string       `json:"fan_pf_creator_id"`
	DepositYear    int          `json:"deposit_year"`
	DepositMonth   int          `json:"deposit_month"`
	WorkYear       int          `json:"work_year"`
	WorkMonth      int          `json:"work_month"`
	DepositAmount  models.Money `json:"deposit_amount"`
	Note           string       `json:"note"`
}

// PaymentCandidates 照合候補
type PaymentCandidates struct {
	Type            string                   `json:"type"`
	RecordID        string                   `json:"record_id"`
	TargetAmount    models.Money             `json:"target_amount"`
	BankAccount     string                   `json:"bank_account"`
	TransactionType string                   `json:"transaction_type"`
	Candidates      []models.BankTransaction `json:"candidates"`
}

// PaymentService 入金・出金・振込申請
type PaymentService struct {
	depositRepo    repository.DepositRepository
	transferRepo   repository.TransferRequestRepository
	pfCreatorRepo  repository.PfCreatorRepository
	bankRepo       repository.BankTransactionRepository
	creators       *CreatorService
	reconciliation *ReconciliationService
	bankAccount    string
	now            func() time.Time
}

// NewPaymentService 支払サービスを生成する
func NewPaymentService(
	depositRepo repository.DepositRepository,
	transferRepo repository.TransferRequestRepository,
	pfCreatorRepo repository.PfCreatorRepository,
	bankRepo repository.BankTransactionRepository,
	creators *CreatorService,
	reconciliation *ReconciliationService,
	bankAccount string,
) *PaymentService {
	if strings.TrimSpace(bankAccount) == "" {
		bankAccount = constants.DefaultBankAccount
	}
	return &PaymentService{
		depositRepo:    depositRepo,
		transferRepo:   transferRepo,
		pfCreatorRepo:  pfCreatorRepo,
		bankRepo:       bankRepo,
		creators:       creators,
		reconciliation: reconciliation,
		bankAccount:    bankAccount,
		now:            time.Now,
	}
}

// List type 別の一覧。振込申請は現在の料率で再計算した集計を付ける
func (s *PaymentService) List(kind string, filter repository.TransferRequestListFilter) (*PaymentList, error) {
	kind, err := NormalizePaymentKind(kind)
	if err != nil {
		return nil, err
	}
	result := &PaymentList{Type: kind}
	switch kind {
	case constants.PaymentKindTransferRequest:
		summary, rows, err := s.Settlement(filter)
		if err != nil {
			return nil, err
		}
		result.TransferRequests = rows
		result.Summary = &summary
	default:
		deposits, err := s.depositRepo.List(repository.DepositListFilter{
			OrderByMonth: kind == constants.PaymentKindDeposit,
		})
		if err != nil {
			return nil, err
		}
		result.Deposits = deposits
	}
	return result, nil
}

// Settlement 振込申請の明細行と集計
func (s *PaymentService) Settlement(filter repository.TransferRequestListFilter) (SettlementSummary, []SettlementRow, error) {
	requests, err := s.transferRepo.List(filter)
	if err != nil {
		return SettlementSummary{}, nil, err
	}
	names, err := s.creators.AgencyNames(requests)
	if err != nil {
		return SettlementSummary{}, nil, err
	}
	return SummarizeTransferRequests(requests, names)
}

// CreateTransferRequest 承認待ちの振込申請を作成する
func (s *PaymentService) CreateTransferRequest(input TransferRequestInput, createdBy string) (*models.TransferRequest, error) {
	creatorID := strings.TrimSpace(input.FanPfCreatorID)
	if creatorID == "" {
		return nil, fmt.Errorf("%w: fan_pf_creator_id is required", ErrTransferRequestInvalid)
	}
	if input.DepositYear <= 0 || !validMonth(input.DepositMonth) {
		return nil, fmt.Errorf("%w: deposit year/month", ErrTransferRequestInvalid)
	}
	if input.DepositAmount.IsNegative() {
		return nil, fmt.Errorf("%w: deposit_amount must not be negative", ErrTransferRequestInvalid)
	}
	workYear, workMonth := input.WorkYear, input.WorkMonth
	if workYear == 0 && workMonth == 0 {
		workYear, workMonth = WorkMonthOf(input.DepositYear, input.DepositMonth)
	}
	if workYear <= 0 || !validMonth(workMonth) {
		return nil, fmt.Errorf("%w: work year/month", ErrTransferRequestInvalid)
	}

	creator, err := s.pfCreatorRepo.GetByID(creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, ErrCreatorNotFound
	}
	exists, err := s.transferRepo.ExistsForWorkMonth(creatorID, workYear, workMonth)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTransferRequestExists
	}

	request := &models.TransferRequest{
		FanPfCreatorID: creatorID,
		WorkYear:       workYear,
		WorkMonth:      workMonth,
		DepositYear:    input.DepositYear,
		DepositMonth:   input.DepositMonth,
		DepositAmount:  input.DepositAmount,
		Note:           strings.TrimSpace(input.Note),
		Status:         constants.TransferStatusPending,
	}
	if createdBy = strings.TrimSpace(createdBy); createdBy != "" {
		request.CreatedBy = &createdBy
	}
	if err := s.transferRepo.Create(request); err != nil {
		// 事前確認と同時に作られた場合は一意制約で弾かれる
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTransferRequestExists
		}
		return nil, err
	}
	logger.Infow("transfer_request_created",
		"transfer_request_id", request.ID,
		"fan_pf_creator_id", creatorID,
		"work_year", workYear,
		"work_month", workMonth,
	)
	return request, nil
}

// WorkMonthOf 入金年月から作業年月を求める（年をまたぐ）
func WorkMonthOf(depositYear, depositMonth int) (int, int) {
	t := time.Date(depositYear, time.Month(depositMonth), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -constants.WorkMonthOffset, 0)
	return t.Year(), int(t.Month())
}

func validMonth(month int) bool {
	return month >= 1 && month <= 12
}

// Delete 振込申請のみ削除できる。照合済みは削除しない
func (s *PaymentService) Delete(kind, id string) error {
	kind, err := NormalizePaymentKind(kind)
	if err != nil {
		return err
	}
	if kind != constants.PaymentKindTransferRequest {
		return ErrInvalidPaymentType
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrIDRequired
	}
	request, err := s.transferRepo.GetByID(id)
	if err != nil {
		return err
	}
	if request == nil {
		return ErrPaymentNotFound
	}
	if request.Reconciled() {
		return ErrAlreadyReconciled
	}
	return s.transferRepo.Delete(id)
}

// UpdateTransferStatus 承認待ちの申請を承認または却下する。支払済は照合でのみ遷移する
func (s *PaymentService) UpdateTransferStatus(id, status, approverID string) (*models.TransferRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrIDRequired
	}
	status = strings.TrimSpace(status)
	if status != constants.TransferStatusApproved && status != constants.TransferStatusRejected {
		return nil, ErrTransferStatusInvalid
	}
	request, err := s.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrPaymentNotFound
	}

	now := s.now()
	var approvedBy *string
	if approverID = strings.TrimSpace(approverID); approverID != "" {
		approvedBy = &approverID
	}
	ok, err := s.transferRepo.UpdateStatus(id, constants.TransferStatusPending, status, approvedBy, &now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTransferStatusInvalid
	}
	request.Status = status
	request.ApprovedBy = approvedBy
	request.ApprovedAt = &now
	logger.Infow("transfer_request_status_changed", "transfer_request_id", id, "status", status, "approved_by", approverID)
	return request, nil
}

// Candidates 記録の金額と完全一致する照合口座の明細
func (s *PaymentService) Candidates(kind, id string) (*PaymentCandidates, error) {
	kind, err := NormalizePaymentKind(kind)
	if err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrIDRequired
	}

	result := &PaymentCandidates{Type: kind, RecordID: id, BankAccount: s.bankAccount}
	switch kind {
	case constants.PaymentKindTransferRequest:
		request, err := s.transferRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if request == nil {
			return nil, ErrPaymentNotFound
		}
		split, err := splitForRequest(request)
		if err != nil {
			return nil, err
		}
		result.TargetAmount = split.CreatorPayment
		result.TransactionType = constants.BankTransactionTypeWithdrawal
	default:
		deposit, err := s.depositRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if deposit == nil {
			return nil, ErrPaymentNotFound
		}
		result.TargetAmount = deposit.PaymentAmountWithTax
		result.TransactionType = constants.BankTransactionTypeDeposit
		if kind == constants.PaymentKindWithdrawal {
			result.TransactionType = constants.BankTransactionTypeWithdrawal
		}
	}

	target := result.TargetAmount
	txs, _, err := s.bankRepo.List(repository.BankTransactionListFilter{
		BankAccount:     s.bankAccount,
		TransactionType: result.TransactionType,
		Amount:          &target,
	})
	if err != nil {
		return nil, err
	}
	result.Candidates = FindCandidates(txs, target, s.bankAccount, result.TransactionType)
	return result, nil
}

func splitForRequest(request *models.TransferRequest) (Split, error) {
	if request.PfCreator == nil {
		return ComputeSplit(request.DepositAmount, models.Rate{}, models.Rate{}, models.DistributionUnset)
	}
	creator := request.PfCreator
	return ComputeSplit(request.DepositAmount, creator.CreatorRate, creator.AgencyRate, creator.DistributionMethod)
}

// Match 照合を確定する
func (s *PaymentService) Match(ctx context.Context, kind, recordID, bankTransactionID string) error {
	return s.reconciliation.ConfirmMatch(ctx, kind, recordID, bankTransactionID)
}
