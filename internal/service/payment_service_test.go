package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/repository"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func newPaymentServiceForTest(db *gorm.DB) *PaymentService {
	bankRepo := repository.NewBankTransactionRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	transferRepo := repository.NewTransferRequestRepository(db)
	pfCreatorRepo := repository.NewPfCreatorRepository(db)
	creators := NewCreatorService(repository.NewCreatorRepository(db), pfCreatorRepo, repository.NewAgencyRepository(db))
	reconciliation := NewReconciliationService(db, bankRepo, depositRepo, transferRepo)
	return NewPaymentService(depositRepo, transferRepo, pfCreatorRepo, bankRepo, creators, reconciliation, "")
}

func TestWorkMonthOf(t *testing.T) {
	cases := []struct {
		year, month         int
		wantYear, wantMonth int
	}{
		{2024, 5, 2024, 3},
		{2024, 2, 2023, 12},
		{2024, 1, 2023, 11},
		{2024, 12, 2024, 10},
	}
	for _, tc := range cases {
		y, m := WorkMonthOf(tc.year, tc.month)
		if y != tc.wantYear || m != tc.wantMonth {
			t.Fatalf("WorkMonthOf(%d,%d) = %d/%d want %d/%d", tc.year, tc.month, y, m, tc.wantYear, tc.wantMonth)
		}
	}
}

// staleExistsRepo 事前の重複確認が同時作成に追い越された状態を再現する
type staleExistsRepo struct {
	repository.TransferRequestRepository
}

func (staleExistsRepo) ExistsForWorkMonth(string, int, int) (bool, error) {
	return false, nil
}

func TestCreateTransferRequestConcurrentDuplicate(t *testing.T) {
	db := setupServiceTest(t)
	svc := newPaymentServiceForTest(db)
	svc.transferRepo = staleExistsRepo{TransferRequestRepository: svc.transferRepo}
	creator := pfCreator("Carol", "", "0.5", "0", models.DistributionUnset)
	mustCreate(t, db, creator)

	input := TransferRequestInput{
		FanPfCreatorID: creator.ID,
		DepositYear:    2024,
		DepositMonth:   6,
		DepositAmount:  yen(12000),
	}
	if _, err := svc.CreateTransferRequest(input, "emp-1"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.CreateTransferRequest(input, "emp-2"); !errors.Is(err, ErrTransferRequestExists) {
		t.Fatalf("unique index violation should map to ErrTransferRequestExists, got %v", err)
	}
}

func TestCreateTransferRequest(t *testing.T) {
	db := setupServiceTest(t)
	svc := newPaymentServiceForTest(db)
	creator := pfCreator("Alice", "", "0.5", "0", models.DistributionUnset)
	mustCreate(t, db, creator)

	req, err := svc.CreateTransferRequest(TransferRequestInput{
		FanPfCreatorID: creator.ID,
		DepositYear:    2024,
		DepositMonth:   1,
		DepositAmount:  yen(30000),
	}, "emp-1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if req.WorkYear != 2023 || req.WorkMonth != 11 {
		t.Fatalf("work month should default to two months before deposit, got %d/%d", req.WorkYear, req.WorkMonth)
	}
	if req.Status != constants.TransferStatusPending {
		t.Fatalf("new request should be pending, got %s", req.Status)
	}
	if req.CreatedBy == nil || *req.CreatedBy != "emp-1" {
		t.Fatalf("created_by not recorded")
	}

	_, err = svc.CreateTransferRequest(TransferRequestInput{
		FanPfCreatorID: creator.ID,
		DepositYear:    2024,
		DepositMonth:   1,
	}, "")
	if !errors.Is(err, ErrTransferRequestExists) {
		t.Fatalf("duplicate work month should conflict, got %v", err)
	}
}

func TestCreateTransferRequestValidation(t *testing.T) {
	db := setupServiceTest(t)
	svc := newPaymentServiceForTest(db)
	creator := pfCreator("Bob", "", "0.5", "0", models.DistributionUnset)
	mustCreate(t, db, creator)

	cases := []struct {
		name  string
		input TransferRequestInput
		want  error
	}{
		{"missing creator id", TransferRequestInput{DepositYear: 2024, DepositMonth: 5}, ErrTransferRequestInvalid},
		{"month out of range", TransferRequestInput{FanPfCreatorID: creator.ID, DepositYear: 2024, DepositMonth: 13}, ErrTransferRequestInvalid},
		{"work month out of range", TransferRequestInput{FanPfCreatorID: creator.ID, DepositYear: 2024, DepositMonth: 5, WorkYear: 2024, WorkMonth: 0}, ErrTransferRequestInvalid},
		{"negative amount", TransferRequestInput{FanPfCreatorID: creator.ID, DepositYear: 2024, DepositMonth: 5, DepositAmount: yen(-1)}, ErrTransferRequestInvalid},
		{"unknown creator", TransferRequestInput{FanPfCreatorID: "missing", DepositYear: 2024, DepositMonth: 5}, ErrCreatorNotFound},
	}
	for _, tc := range cases {
		if _, err := svc.CreateTransferRequest(tc.input, ""); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}
}

func TestUpdateTransferStatus(t *testing.T) {
	db := setupServiceTest(t)
	svc := newPaymentServiceForTest(db)
	creator := pfCreator("Carol", "", "0.5", "0", models.DistributionUnset)
	mustCreate(t, db, creator)
	approver := &models.Employee{EmployeeNumber: "E001", DisplayName: "山田", PasswordHash: "x"}
	mustCreate(t, db, approver)
	req := &models.TransferRequest{FanPfCreatorID: creator.ID, WorkYear: 2024, WorkMonth: 3, DepositYear: 2024, DepositMonth: 5, Status: constants.TransferStatusPending}
	mustCreate(t, db, req)

	if _, err := svc.UpdateTransferStatus(req.ID, constants.TransferStatusPaid, approver.ID); !errors.Is(err, ErrTransferStatusInvalid) {
		t.Fatalf("paid must only be reachable through matching, got %v", err)
	}
	updated, err := svc.UpdateTransferStatus(req.ID, constants.TransferStatusApproved, approver.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if updated.ApprovedBy == nil || *updated.ApprovedBy != approver.ID || updated.ApprovedAt == nil {
		t.Fatalf("approver not recorded")
	}
	if _, err := svc.UpdateTransferStatus(req.ID, constants.TransferStatusRejected, approver.ID); !errors.Is(err, ErrTransferStatusInvalid) {
		t.Fatalf("approved request cannot be rejected, got %v", err)
	}

	list, err := svc.List(constants.PaymentKindTransferRequest, repository.TransferRequestListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list.TransferRequests) != 1 || list.TransferRequests[0].ApproverName != "山田" {
		t.Fatalf("approver name should be joined, got %+v", list.TransferRequests)
	}
}

func TestPaymentListByType(t *testing.T) {
	db := setupServiceTest(t)
	svc := newPaymentServiceForTest(db)
	mustCreate(t, db, &models.Agency{AgencyID: 7, AgencyName: "Seven"})
	creator := pfCreator("Dave", "7", "0.5", "0.2", models.DistributionCrBased)
	mustCreate(t, db, creator)
	mustCreate(t, db, &models.PlatformDeposit{Platform: models.PlatformFantia, Year: 2023, Month: 12})
	mustCreate(t, db, &models.PlatformDeposit{Platform: models.PlatformFantia, Year: 2024, Month: 2})
	mustCreate(t, db, &models.TransferRequest{FanPfCreatorID: creator.ID, WorkYear: 2024, WorkMonth: 1, DepositYear: 2024, DepositMonth: 3, DepositAmount: yen(100000), Status: constants.TransferStatusPending})

	deposits, err := svc.List(constants.PaymentKindDeposit, repository.TransferRequestListFilter{})
	if err != nil {
		t.Fatalf("deposit list failed: %v", err)
	}
	if len(deposits.Deposits) != 2 || deposits.Deposits[0].Year != 2024 {
		t.Fatalf("deposits should be newest month first, got %+v", deposits.Deposits)
	}
	if deposits.Summary != nil {
		t.Fatalf("deposit list carries no summary")
	}

	transfers, err := svc.List(constants.PaymentKindTransferRequest, repository.TransferRequestListFilter{})
	if err != nil {
		t.Fatalf("transfer list failed: %v", err)
	}
	if transfers.Summary == nil || transfers.Summary.Caveat == "" {
		t.Fatalf("transfer list should include the summary with caveat")
	}
	row := transfers.TransferRequests[0]
	if row.AgencyName != "Seven" || !row.CreatorPayment.Equal(yen(50000).Decimal) || !row.AgencyPayment.Equal(yen(10000).Decimal) {
		t.Fatalf("unexpected row %+v", row)
	}

	if _, err := svc.List("", repository.TransferRequestListFilter{}); !errors.Is(err, ErrPaymentTypeRequired) {
		t.Fatalf("missing type should be rejected, got %v", err)
	}
}

func TestPaymentCandidates(t *testing.T) {
	db := setupServiceTest(t)
	svc := newPaymentServiceForTest(db)
	creator := pfCreator("Eve", "", "0.5", "0", models.DistributionUnset)
	mustCreate(t, db, creator)
	req := &models.TransferRequest{FanPfCreatorID: creator.ID, WorkYear: 2024, WorkMonth: 1, DepositYear: 2024, DepositMonth: 3, DepositAmount: yen(100000), Status: constants.TransferStatusApproved}
	mustCreate(t, db, req)
	deposit := &models.PlatformDeposit{Platform: models.PlatformMyfans, Year: 2024, Month: 3, PaymentAmountWithTax: yen(12000)}
	mustCreate(t, db, deposit)

	now := time.Now()
	match := &models.BankTransaction{TransactionDate: now, TransactionType: constants.BankTransactionTypeWithdrawal, BankAccount: "MAIN002", Amount: yen(50000)}
	mustCreate(t, db, match)
	mustCreate(t, db, &models.BankTransaction{TransactionDate: now, TransactionType: constants.BankTransactionTypeDeposit, BankAccount: "MAIN002", Amount: yen(50000)})
	mustCreate(t, db, &models.BankTransaction{TransactionDate: now, TransactionType: constants.BankTransactionTypeWithdrawal, BankAccount: "SUB001", Amount: yen(50000)})
	depositMatch := &models.BankTransaction{TransactionDate: now, TransactionType: constants.BankTransactionTypeDeposit, BankAccount: "MAIN002", Amount: yen(12000)}
	mustCreate(t, db, depositMatch)

	got, err := svc.Candidates(constants.PaymentKindTransferRequest, req.ID)
	if err != nil {
		t.Fatalf("candidates failed: %v", err)
	}
	if !got.TargetAmount.Equal(yen(50000).Decimal) {
		t.Fatalf("transfer target should be the creator payment, got %s", got.TargetAmount)
	}
	if len(got.Candidates) != 1 || got.Candidates[0].ID != match.ID {
		t.Fatalf("want only the MAIN002 withdrawal, got %+v", got.Candidates)
	}

	got, err = svc.Candidates(constants.PaymentKindDeposit, deposit.ID)
	if err != nil {
		t.Fatalf("deposit candidates failed: %v", err)
	}
	if len(got.Candidates) != 1 || got.Candidates[0].ID != depositMatch.ID {
		t.Fatalf("want the deposit row, got %+v", got.Candidates)
	}

	if err := svc.Match(context.Background(), constants.PaymentKindTransferRequest, req.ID, match.ID); err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if err := svc.Delete(constants.PaymentKindTransferRequest, req.ID); !errors.Is(err, ErrAlreadyReconciled) {
		t.Fatalf("reconciled request must not be deleted, got %v", err)
	}
}

func TestPaymentDelete(t *testing.T) {
	db := setupServiceTest(t)
	svc := newPaymentServiceForTest(db)
	creator := pfCreator("Frank", "", "0.5", "0", models.DistributionUnset)
	mustCreate(t, db, creator)
	req := &models.TransferRequest{FanPfCreatorID: creator.ID, WorkYear: 2024, WorkMonth: 1, DepositYear: 2024, DepositMonth: 3, Status: constants.TransferStatusPending}
	mustCreate(t, db, req)

	if err := svc.Delete("", req.ID); !errors.Is(err, ErrPaymentTypeRequired) {
		t.Fatalf("missing type should be rejected, got %v", err)
	}
	if err := svc.Delete(constants.PaymentKindDeposit, req.ID); !errors.Is(err, ErrInvalidPaymentType) {
		t.Fatalf("deposit delete should be rejected, got %v", err)
	}
	if err := svc.Delete(constants.PaymentKindTransferRequest, req.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(constants.PaymentKindTransferRequest, req.ID); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("second delete should report not found, got %v", err)
	}
}

func TestExportSettlementWorkbook(t *testing.T) {
	db := setupServiceTest(t)
	svc := newPaymentServiceForTest(db)
	creator := pfCreator("Grace", "", "0.5", "0.1", models.DistributionDepositBased)
	mustCreate(t, db, creator)
	mustCreate(t, db, &models.TransferRequest{FanPfCreatorID: creator.ID, WorkYear: 2024, WorkMonth: 1, DepositYear: 2024, DepositMonth: 3, DepositAmount: yen(20000), Status: constants.TransferStatusPending})

	buf, err := svc.ExportSettlement(repository.TransferRequestListFilter{})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook failed: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue(settlementSheet, "A1")
	if err != nil || header != "作業年" {
		t.Fatalf("unexpected header %q (%v)", header, err)
	}
	name, _ := f.GetCellValue(settlementSheet, "E2")
	if name != "Grace" {
		t.Fatalf("want creator name in row 2, got %q", name)
	}
	creatorPay, _ := f.GetCellValue(settlementSheet, "L2")
	if creatorPay != "10000" {
		t.Fatalf("want creator payment 10000, got %q", creatorPay)
	}
	total, _ := f.GetCellValue(settlementSheet, "A4")
	if total != "合計" {
		t.Fatalf("want totals row, got %q", total)
	}
}
