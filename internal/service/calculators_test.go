package service

import (
	"errors"
	"testing"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/models"
)

func yen(v int64) models.Money { return models.NewMoney(v) }

func TestComputeSplitMethods(t *testing.T) {
	cases := []struct {
		name    string
		deposit int64
		cr      string
		ar      string
		method  models.DistributionMethod
		creator int64
		agency  int64
	}{
		{name: "cr based", deposit: 100000, cr: "0.5", ar: "0.2", method: models.DistributionCrBased, creator: 50000, agency: 10000},
		{name: "deposit based", deposit: 100000, cr: "0.5", ar: "0.2", method: models.DistributionDepositBased, creator: 50000, agency: 20000},
		{name: "deposit minus cr", deposit: 100000, cr: "0.5", ar: "0.2", method: models.DistributionDepositMinusCr, creator: 50000, agency: 10000},
		{name: "unset", deposit: 100000, cr: "0.5", ar: "0.2", method: models.DistributionUnset, creator: 50000, agency: 0},
		{name: "floors creator", deposit: 999, cr: "0.333", ar: "0", method: models.DistributionUnset, creator: 332, agency: 0},
		{name: "floors agency", deposit: 10001, cr: "0.7", ar: "0.15", method: models.DistributionCrBased, creator: 7000, agency: 1050},
		{name: "zero deposit", deposit: 0, cr: "0.5", ar: "0.2", method: models.DistributionDepositBased, creator: 0, agency: 0},
		{name: "missing rates", deposit: 5000, cr: "0", ar: "0", method: models.DistributionDepositBased, creator: 0, agency: 0},
	}
	for _, tc := range cases {
		split, err := ComputeSplit(yen(tc.deposit), models.NewRate(tc.cr), models.NewRate(tc.ar), tc.method)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !split.CreatorPayment.Equal(yen(tc.creator).Decimal) {
			t.Fatalf("%s: creator want %d got %s", tc.name, tc.creator, split.CreatorPayment.String())
		}
		if !split.AgencyPayment.Equal(yen(tc.agency).Decimal) {
			t.Fatalf("%s: agency want %d got %s", tc.name, tc.agency, split.AgencyPayment.String())
		}
	}
}

func TestComputeSplitUnknownMethod(t *testing.T) {
	_, err := ComputeSplit(yen(1000), models.NewRate("0.5"), models.NewRate("0.1"), models.DistributionMethod("折半"))
	if !errors.Is(err, ErrUnknownDistributionMethod) {
		t.Fatalf("want ErrUnknownDistributionMethod got %v", err)
	}
}

func TestComputeSplitNeverExceedsDeposit(t *testing.T) {
	deposits := []int64{1, 7, 99, 1234, 100000, 987654}
	rates := []string{"0", "0.1", "0.35", "0.5", "0.99", "1"}
	methods := []models.DistributionMethod{
		models.DistributionCrBased,
		models.DistributionDepositMinusCr,
		models.DistributionUnset,
	}
	for _, d := range deposits {
		for _, cr := range rates {
			for _, ar := range rates {
				for _, m := range methods {
					split, err := ComputeSplit(yen(d), models.NewRate(cr), models.NewRate(ar), m)
					if err != nil {
						t.Fatalf("split failed: %v", err)
					}
					sum := split.CreatorPayment.Add(split.AgencyPayment.Decimal)
					if sum.GreaterThan(yen(d).Decimal) {
						t.Fatalf("d=%d cr=%s ar=%s m=%q: payments %s exceed deposit", d, cr, ar, m, sum)
					}
					if split.CreatorPayment.IsNegative() || split.AgencyPayment.IsNegative() {
						t.Fatalf("negative payment for d=%d", d)
					}
				}
			}
		}
	}
}

func pfCreator(name, agencyID, cr, ar string, method models.DistributionMethod) *models.PfCreator {
	pf := &models.PfCreator{
		ID:                 name + "-id",
		CreatorName:        name,
		Platform:           models.PlatformFantia,
		CreatorRate:        models.NewRate(cr),
		AgencyRate:         models.NewRate(ar),
		DistributionMethod: method,
	}
	if agencyID != "" {
		pf.AgencyID = &agencyID
	}
	return pf
}

func TestSummarizeTransferRequests(t *testing.T) {
	linked := "bt-1"
	requests := []models.TransferRequest{
		{ID: "r1", DepositAmount: yen(100000), Status: constants.TransferStatusPaid, BankTransactionID: &linked,
			PfCreator: pfCreator("さくら", "3", "0.5", "0.2", models.DistributionCrBased)},
		{ID: "r2", DepositAmount: yen(50000), Status: constants.TransferStatusPending,
			PfCreator: pfCreator("もみじ", "9", "0.6", "0.1", models.DistributionDepositBased),
			Approver:  &models.Employee{DisplayName: "経理 太郎"}},
		{ID: "r3", DepositAmount: yen(10000), Status: constants.TransferStatusPending},
	}
	summary, rows, err := SummarizeTransferRequests(requests, map[int]string{3: "スター企画"})
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if len(rows) != 3 || summary.Count != 3 {
		t.Fatalf("want 3 rows got %d", len(rows))
	}
	// r1: 50000 / 10000, r2: 30000 / 5000, r3: creator missing so 0 / 0
	if !summary.TotalDeposit.Equal(yen(160000).Decimal) {
		t.Fatalf("total deposit got %s", summary.TotalDeposit)
	}
	if !summary.TotalCreatorPayment.Equal(yen(80000).Decimal) {
		t.Fatalf("total creator got %s", summary.TotalCreatorPayment)
	}
	if !summary.TotalAgencyPayment.Equal(yen(15000).Decimal) {
		t.Fatalf("total agency got %s", summary.TotalAgencyPayment)
	}
	if !summary.GrossProfit.Equal(yen(65000).Decimal) {
		t.Fatalf("gross profit got %s", summary.GrossProfit)
	}
	if summary.CreatorPercent != "50.0" || summary.AgencyPercent != "9.4" || summary.GrossProfitPercent != "40.6" {
		t.Fatalf("percent mismatch: %s %s %s", summary.CreatorPercent, summary.AgencyPercent, summary.GrossProfitPercent)
	}
	if summary.Caveat != constants.SettlementCaveat {
		t.Fatalf("caveat should always be present")
	}

	if rows[0].AgencyName != "スター企画" || rows[1].AgencyName != "Agency 9" || rows[2].AgencyName != "" {
		t.Fatalf("agency names: %q %q %q", rows[0].AgencyName, rows[1].AgencyName, rows[2].AgencyName)
	}
	if rows[0].StatusLabel != constants.DepositStatusLabel || rows[1].StatusLabel != constants.TransferStatusPending {
		t.Fatalf("status labels: %q %q", rows[0].StatusLabel, rows[1].StatusLabel)
	}
	if rows[0].CreatorRatePercent != "50" || rows[0].AgencyRatePercent != "20" {
		t.Fatalf("rate percents: %s %s", rows[0].CreatorRatePercent, rows[0].AgencyRatePercent)
	}
	if !rows[1].GrossProfit.Equal(yen(15000).Decimal) {
		t.Fatalf("row gross profit got %s", rows[1].GrossProfit)
	}
	if rows[1].ApproverName != "経理 太郎" {
		t.Fatalf("approver name got %q", rows[1].ApproverName)
	}
}

func TestSummarizeTransferRequestsEmpty(t *testing.T) {
	summary, rows, err := SummarizeTransferRequests(nil, nil)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("want no rows")
	}
	if summary.CreatorPercent != "0.0" || summary.AgencyPercent != "0.0" || summary.GrossProfitPercent != "0.0" {
		t.Fatalf("zero deposit should yield 0.0 percents: %+v", summary)
	}
	if summary.Caveat == "" {
		t.Fatalf("caveat missing")
	}
}

func TestSummarizeTransferRequestsRejectsUnknownMethod(t *testing.T) {
	requests := []models.TransferRequest{
		{ID: "bad", DepositAmount: yen(1000), PfCreator: pfCreator("x", "", "0.5", "0.5", "謎")},
	}
	if _, _, err := SummarizeTransferRequests(requests, nil); !errors.Is(err, ErrUnknownDistributionMethod) {
		t.Fatalf("want ErrUnknownDistributionMethod got %v", err)
	}
}

func TestAgencyIDsOf(t *testing.T) {
	requests := []models.TransferRequest{
		{PfCreator: pfCreator("a", "3", "0", "0", "")},
		{PfCreator: pfCreator("b", "3", "0", "0", "")},
		{PfCreator: pfCreator("c", "abc", "0", "0", "")},
		{PfCreator: pfCreator("d", "12", "0", "0", "")},
		{},
	}
	ids := AgencyIDsOf(requests)
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 12 {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestFindCandidates(t *testing.T) {
	txs := []models.BankTransaction{
		{ID: "a", Amount: yen(5000), BankAccount: "MAIN002", TransactionType: constants.BankTransactionTypeWithdrawal},
		{ID: "b", Amount: yen(5000), BankAccount: "SUB001", TransactionType: constants.BankTransactionTypeWithdrawal},
		{ID: "c", Amount: yen(5001), BankAccount: "MAIN002", TransactionType: constants.BankTransactionTypeWithdrawal},
		{ID: "d", Amount: yen(5000), BankAccount: "MAIN002", TransactionType: constants.BankTransactionTypeDeposit},
	}

	all := FindCandidates(txs, yen(5000), "", "")
	if len(all) != 3 || all[0].ID != "a" || all[1].ID != "b" || all[2].ID != "d" {
		t.Fatalf("amount-only match should keep order: %+v", all)
	}
	scoped := FindCandidates(txs, yen(5000), "MAIN002", constants.BankTransactionTypeWithdrawal)
	if len(scoped) != 1 || scoped[0].ID != "a" {
		t.Fatalf("scoped match got %+v", scoped)
	}
	none := FindCandidates(txs, yen(1), "", "")
	if none == nil || len(none) != 0 {
		t.Fatalf("no match should be an empty non-nil slice")
	}

	pair := []models.BankTransaction{
		{ID: "first", Amount: yen(1000)},
		{ID: "second", Amount: yen(2000)},
	}
	exact := FindCandidates(pair, yen(1000), "", "")
	if len(exact) != 1 || exact[0].ID != "first" {
		t.Fatalf("target 1000 should match only the first row: %+v", exact)
	}
	if between := FindCandidates(pair, yen(1500), "", ""); len(between) != 0 {
		t.Fatalf("target 1500 should match nothing: %+v", between)
	}
}

func TestComputeInvoiceTotals(t *testing.T) {
	totals := ComputeInvoiceTotals([]InvoiceLine{
		{Quantity: models.NewQuantity(3), UnitPrice: yen(333)},
		{Quantity: models.NewQuantity(1), UnitPrice: yen(1000)},
	})
	if !totals.Subtotal.Equal(yen(1999).Decimal) {
		t.Fatalf("subtotal got %s", totals.Subtotal)
	}
	if !totals.TaxAmount.Equal(yen(199).Decimal) {
		t.Fatalf("tax should be floored, got %s", totals.TaxAmount)
	}
	if !totals.TotalAmount.Equal(yen(2198).Decimal) {
		t.Fatalf("total got %s", totals.TotalAmount)
	}

	empty := ComputeInvoiceTotals(nil)
	if !empty.Subtotal.IsZero() || !empty.TaxAmount.IsZero() || !empty.TotalAmount.IsZero() {
		t.Fatalf("empty invoice should be zero: %+v", empty)
	}

	lines := []InvoiceLine{
		{Quantity: models.NewQuantity(2), UnitPrice: yen(1000)},
		{Quantity: models.NewQuantity(1), UnitPrice: yen(500)},
	}
	first := ComputeInvoiceTotals(lines)
	if !first.Subtotal.Equal(yen(2500).Decimal) || !first.TaxAmount.Equal(yen(250).Decimal) || !first.TotalAmount.Equal(yen(2750).Decimal) {
		t.Fatalf("want 2500/250/2750 got %s/%s/%s", first.Subtotal, first.TaxAmount, first.TotalAmount)
	}
	second := ComputeInvoiceTotals(lines)
	if !second.Subtotal.Equal(first.Subtotal.Decimal) || !second.TaxAmount.Equal(first.TaxAmount.Decimal) || !second.TotalAmount.Equal(first.TotalAmount.Decimal) {
		t.Fatalf("recomputing the same items changed totals: %+v vs %+v", first, second)
	}
}

func TestPrepareInvoiceItems(t *testing.T) {
	items, totals := PrepareInvoiceItems([]models.InvoiceItem{
		{ID: "stale", Description: "撮影費", Quantity: models.NewQuantity(2), UnitPrice: yen(15005)},
		{Description: "編集費", Quantity: models.NewQuantity(1), UnitPrice: yen(9999)},
	})
	if items[0].ID != "" {
		t.Fatalf("item ids should be reset so new rows are inserted")
	}
	if items[0].ItemOrder != 1 || items[1].ItemOrder != 2 {
		t.Fatalf("item order: %d %d", items[0].ItemOrder, items[1].ItemOrder)
	}
	if !items[0].Amount.Equal(yen(30010).Decimal) || !items[0].TaxAmount.Equal(yen(3001).Decimal) {
		t.Fatalf("item 0 amount/tax: %s %s", items[0].Amount, items[0].TaxAmount)
	}
	if !items[1].TaxAmount.Equal(yen(999).Decimal) {
		t.Fatalf("item 1 tax got %s", items[1].TaxAmount)
	}
	if !totals.Subtotal.Equal(yen(40009).Decimal) || !totals.TaxAmount.Equal(yen(4000).Decimal) {
		t.Fatalf("totals: %+v", totals)
	}
}

func TestNormalizePaymentKind(t *testing.T) {
	if _, err := NormalizePaymentKind(""); !errors.Is(err, ErrPaymentTypeRequired) {
		t.Fatalf("empty type should be required error, got %v", err)
	}
	if _, err := NormalizePaymentKind("refund"); !errors.Is(err, ErrInvalidPaymentType) {
		t.Fatalf("unknown type should be invalid, got %v", err)
	}
	kind, err := NormalizePaymentKind(" Transfer-Request ")
	if err != nil || kind != constants.PaymentKindTransferRequest {
		t.Fatalf("normalize failed: %q %v", kind, err)
	}
}
