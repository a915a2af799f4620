package service

import (
	"bytes"
	"fmt"

	"github.com/maekabu-office/internal/repository"

	"github.com/xuri/excelize/v2"
)

const settlementSheet = "振込申請"

var settlementHeader = []interface{}{
	"作業年", "作業月", "入金年", "入金月", "クリエイター", "プラットフォーム",
	"入金額", "CR料率(%)", "AG料率(%)", "分配方法", "代理店",
	"CR支払額", "AG支払額", "粗利", "ステータス", "承認者", "備考",
}

// ExportSettlement 振込申請の一覧と集計を xlsx で出力する
func (s *PaymentService) ExportSettlement(filter repository.TransferRequestListFilter) (*bytes.Buffer, error) {
	summary, rows, err := s.Settlement(filter)
	if err != nil {
		return nil, err
	}
	return WriteSettlementWorkbook(summary, rows)
}

// WriteSettlementWorkbook 1 行目が見出し、末尾に合計と注意書き
func WriteSettlementWorkbook(summary SettlementSummary, rows []SettlementRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", settlementSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(settlementSheet, "A1", &settlementHeader); err != nil {
		return nil, err
	}
	for i, row := range rows {
		values := []interface{}{
			row.WorkYear, row.WorkMonth, row.DepositYear, row.DepositMonth,
			row.CreatorName, row.Platform,
			row.DepositAmount.InexactFloat64(), row.CreatorRatePercent, row.AgencyRatePercent,
			string(row.DistributionMethod), row.AgencyName,
			row.CreatorPayment.InexactFloat64(), row.AgencyPayment.InexactFloat64(), row.GrossProfit.InexactFloat64(),
			row.StatusLabel, row.ApproverName, row.Note,
		}
		if err := f.SetSheetRow(settlementSheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return nil, err
		}
	}

	next := len(rows) + 3
	totals := []interface{}{
		"合計", summary.Count, "", "", "", "",
		summary.TotalDeposit.InexactFloat64(), "", "", "", "",
		summary.TotalCreatorPayment.InexactFloat64(), summary.TotalAgencyPayment.InexactFloat64(), summary.GrossProfit.InexactFloat64(),
	}
	if err := f.SetSheetRow(settlementSheet, fmt.Sprintf("A%d", next), &totals); err != nil {
		return nil, err
	}
	ratios := []interface{}{
		"割合(%)", "", "", "", "", "", "", "", "", "", "",
		summary.CreatorPercent, summary.AgencyPercent, summary.GrossProfitPercent,
	}
	if err := f.SetSheetRow(settlementSheet, fmt.Sprintf("A%d", next+1), &ratios); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(settlementSheet, fmt.Sprintf("A%d", next+3), summary.Caveat); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}
