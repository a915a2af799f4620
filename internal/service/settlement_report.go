package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/models"

	"github.com/shopspring/decimal"
)

// SettlementSummary 振込申請の集計
type SettlementSummary struct {
	Count               int          `json:"count"`
	TotalDeposit        models.Money `json:"total_deposit"`
	TotalCreatorPayment models.Money `json:"total_creator_payment"`
	TotalAgencyPayment  models.Money `json:"total_agency_payment"`
	GrossProfit         models.Money `json:"gross_profit"`
	CreatorPercent      string       `json:"creator_percent"`
	AgencyPercent       string       `json:"agency_percent"`
	GrossProfitPercent  string       `json:"gross_profit_percent"`
	Caveat              string       `json:"caveat"`
}

// SettlementRow 一覧表示用の 1 行
type SettlementRow struct {
	ID                 string                    `json:"id"`
	FanPfCreatorID     string                    `json:"fan_pf_creator_id"`
	CreatorName        string                    `json:"creator_name"`
	Platform           string                    `json:"platform"`
	WorkYear           int                       `json:"work_year"`
	WorkMonth          int                       `json:"work_month"`
	DepositYear        int                       `json:"deposit_year"`
	DepositMonth       int                       `json:"deposit_month"`
	DepositAmount      models.Money              `json:"deposit_amount"`
	CreatorRatePercent string                    `json:"creator_rate_percent"`
	AgencyRatePercent  string                    `json:"agency_rate_percent"`
	DistributionMethod models.DistributionMethod `json:"distribution_method"`
	AgencyID           string                    `json:"agency_id"`
	AgencyName         string                    `json:"agency_name"`
	CreatorPayment     models.Money              `json:"creator_payment"`
	AgencyPayment      models.Money              `json:"agency_payment"`
	GrossProfit        models.Money              `json:"gross_profit"`
	Status             string                    `json:"status"`
	StatusLabel        string                    `json:"status_label"`
	ApproverName       string                    `json:"approver_name"`
	BankTransactionID  *string                   `json:"bank_transaction_id"`
	Note               string                    `json:"note"`
}

// SummarizeTransferRequests 振込申請を現在の料率で再計算して集計する
// agencyNames は agency_id → 代理店名。未解決の ID は "Agency {id}" と表示する
func SummarizeTransferRequests(requests []models.TransferRequest, agencyNames map[int]string) (SettlementSummary, []SettlementRow, error) {
	rows := make([]SettlementRow, 0, len(requests))
	totalDeposit := decimal.Zero
	totalCreator := decimal.Zero
	totalAgency := decimal.Zero

	for i := range requests {
		req := &requests[i]
		row := SettlementRow{
			ID:                req.ID,
			FanPfCreatorID:    req.FanPfCreatorID,
			WorkYear:          req.WorkYear,
			WorkMonth:         req.WorkMonth,
			DepositYear:       req.DepositYear,
			DepositMonth:      req.DepositMonth,
			DepositAmount:     req.DepositAmount,
			Status:            req.Status,
			StatusLabel:       req.Status,
			BankTransactionID: req.BankTransactionID,
			Note:              req.Note,
		}
		if req.Reconciled() {
			row.StatusLabel = constants.DepositStatusLabel
		}
		if req.Approver != nil {
			row.ApproverName = req.Approver.Name()
		}

		creatorRate := models.Rate{}
		agencyRate := models.Rate{}
		method := models.DistributionUnset
		if pf := req.PfCreator; pf != nil {
			row.CreatorName = pf.CreatorName
			row.Platform = pf.Platform
			creatorRate = pf.CreatorRate
			agencyRate = pf.AgencyRate
			method = pf.DistributionMethod
			if pf.AgencyID != nil {
				row.AgencyID = strings.TrimSpace(*pf.AgencyID)
				row.AgencyName = resolveAgencyName(row.AgencyID, agencyNames)
			}
		}
		row.CreatorRatePercent = creatorRate.Percent()
		row.AgencyRatePercent = agencyRate.Percent()
		row.DistributionMethod = method

		split, err := ComputeSplit(req.DepositAmount, creatorRate, agencyRate, method)
		if err != nil {
			return SettlementSummary{}, nil, fmt.Errorf("transfer request %s: %w", req.ID, err)
		}
		row.CreatorPayment = split.CreatorPayment
		row.AgencyPayment = split.AgencyPayment
		row.GrossProfit = split.GrossProfit(req.DepositAmount)

		totalDeposit = totalDeposit.Add(req.DepositAmount.Decimal)
		totalCreator = totalCreator.Add(split.CreatorPayment.Decimal)
		totalAgency = totalAgency.Add(split.AgencyPayment.Decimal)
		rows = append(rows, row)
	}

	gross := totalDeposit.Sub(totalCreator).Sub(totalAgency)
	summary := SettlementSummary{
		Count:               len(rows),
		TotalDeposit:        models.NewMoneyFromDecimal(totalDeposit),
		TotalCreatorPayment: models.NewMoneyFromDecimal(totalCreator),
		TotalAgencyPayment:  models.NewMoneyFromDecimal(totalAgency),
		GrossProfit:         models.NewMoneyFromDecimal(gross),
		CreatorPercent:      percentOf(totalCreator, totalDeposit),
		AgencyPercent:       percentOf(totalAgency, totalDeposit),
		GrossProfitPercent:  percentOf(gross, totalDeposit),
		Caveat:              constants.SettlementCaveat,
	}
	return summary, rows, nil
}

// percentOf 小数 1 桁の百分率。分母 0 は "0.0"
func percentOf(part, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.0"
	}
	return part.Mul(decimal.NewFromInt(100)).Div(total).StringFixed(1)
}

func resolveAgencyName(agencyID string, names map[int]string) string {
	if agencyID == "" {
		return ""
	}
	if id, err := strconv.Atoi(agencyID); err == nil {
		if name, ok := names[id]; ok && strings.TrimSpace(name) != "" {
			return name
		}
	}
	return fmt.Sprintf(constants.AgencyNameFallbackFormat, agencyID)
}

// AgencyIDsOf 振込申請に紐づく代理店 ID（数値化できるもののみ）
func AgencyIDsOf(requests []models.TransferRequest) []int {
	seen := make(map[int]struct{})
	ids := make([]int, 0)
	for i := range requests {
		pf := requests[i].PfCreator
		if pf == nil || pf.AgencyID == nil {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(*pf.AgencyID))
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
