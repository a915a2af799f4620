package service

import (
	"fmt"

	"github.com/maekabu-office/internal/models"

	"github.com/shopspring/decimal"
)

// Split 入金額の分配結果
type Split struct {
	CreatorPayment models.Money `json:"creator_payment"`
	AgencyPayment  models.Money `json:"agency_payment"`
}

// GrossProfit 入金額から両報酬を差し引いた粗利
func (s Split) GrossProfit(deposit models.Money) models.Money {
	return models.NewMoneyFromDecimal(deposit.Decimal.Sub(s.CreatorPayment.Decimal).Sub(s.AgencyPayment.Decimal))
}

// ComputeSplit 入金額をクリエイター報酬と代理店報酬に分配する。端数は切り捨て
func ComputeSplit(deposit models.Money, creatorRate, agencyRate models.Rate, method models.DistributionMethod) (Split, error) {
	amount := deposit.Decimal
	creator := amount.Mul(creatorRate.Decimal).Floor()

	var base decimal.Decimal
	switch method {
	case models.DistributionCrBased:
		base = creator
	case models.DistributionDepositBased:
		base = amount
	case models.DistributionDepositMinusCr:
		base = amount.Sub(creator)
	case models.DistributionUnset:
		return Split{
			CreatorPayment: models.NewMoneyFromDecimal(creator),
			AgencyPayment:  models.NewMoney(0),
		}, nil
	default:
		return Split{}, fmt.Errorf("%w: %q", ErrUnknownDistributionMethod, string(method))
	}

	return Split{
		CreatorPayment: models.NewMoneyFromDecimal(creator),
		AgencyPayment:  models.NewMoneyFromDecimal(base.Mul(agencyRate.Decimal).Floor()),
	}, nil
}
