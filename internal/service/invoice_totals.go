package service

import (
	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/models"

	"github.com/shopspring/decimal"
)

// InvoiceLine 計算対象の明細行
type InvoiceLine struct {
	Quantity  models.Quantity
	UnitPrice models.Money
}

// Amount 数量 × 単価
func (l InvoiceLine) Amount() models.Money {
	return models.NewMoneyFromDecimal(l.Quantity.Decimal.Mul(l.UnitPrice.Decimal))
}

// InvoiceTotals 請求書の合計
type InvoiceTotals struct {
	Subtotal    models.Money `json:"subtotal"`
	TaxAmount   models.Money `json:"tax_amount"`
	TotalAmount models.Money `json:"total_amount"`
}

var invoiceTaxRate = decimal.NewFromInt(constants.InvoiceTaxRatePercent).Div(decimal.NewFromInt(100))

// ConsumptionTax 消費税（10%、切り捨て）
func ConsumptionTax(amount models.Money) models.Money {
	return models.NewMoneyFromDecimal(amount.Decimal.Mul(invoiceTaxRate).Floor())
}

// ComputeInvoiceTotals 小計・消費税・合計を算出する
func ComputeInvoiceTotals(lines []InvoiceLine) InvoiceTotals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amount().Decimal)
	}
	sub := models.NewMoneyFromDecimal(subtotal)
	tax := ConsumptionTax(sub)
	return InvoiceTotals{
		Subtotal:    sub,
		TaxAmount:   tax,
		TotalAmount: models.NewMoneyFromDecimal(sub.Decimal.Add(tax.Decimal)),
	}
}

// PrepareInvoiceItems 明細の金額・税額・表示順を埋め、合計を返す
func PrepareInvoiceItems(items []models.InvoiceItem) ([]models.InvoiceItem, InvoiceTotals) {
	prepared := make([]models.InvoiceItem, len(items))
	lines := make([]InvoiceLine, len(items))
	for i, item := range items {
		line := InvoiceLine{Quantity: item.Quantity, UnitPrice: item.UnitPrice}
		item.ID = ""
		item.ItemOrder = i + 1
		item.Amount = line.Amount()
		item.TaxAmount = ConsumptionTax(item.Amount)
		prepared[i] = item
		lines[i] = line
	}
	return prepared, ComputeInvoiceTotals(lines)
}
