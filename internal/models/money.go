package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money 円金額（小数 2 桁で保持、JSON は数値で出力）
type Money struct {
	decimal.Decimal
}

// NewMoney 整数円から生成する
func NewMoney(yen int64) Money {
	return Money{Decimal: decimal.NewFromInt(yen)}
}

// NewMoneyFromDecimal decimal から生成する
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// MarshalJSON 数値として出力する
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.Round(2).String()), nil
}

// UnmarshalJSON 文字列・数値どちらも受け付ける
func (m *Money) UnmarshalJSON(b []byte) error {
	d, err := parseJSONDecimal(b)
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

// Value DB 書き込み
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan DB 読み込み
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		m.Decimal = decimal.Zero
		return nil
	}
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// Rate 料率（0〜1 の小数。画面では ×100 で表示する）
type Rate struct {
	decimal.Decimal
}

// NewRate 文字列から料率を生成する（テスト・シード用）
func NewRate(value string) Rate {
	return Rate{Decimal: decimal.RequireFromString(value)}
}

// Percent 表示用の百分率（整数丸め）
func (r Rate) Percent() string {
	return r.Decimal.Mul(decimal.NewFromInt(100)).StringFixed(0)
}

// Valid 0 以上 1 以下か
func (r Rate) Valid() bool {
	return !r.Decimal.IsNegative() && r.Decimal.LessThanOrEqual(decimal.NewFromInt(1))
}

func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(r.Decimal.String()), nil
}

func (r *Rate) UnmarshalJSON(b []byte) error {
	d, err := parseJSONDecimal(b)
	if err != nil {
		return err
	}
	r.Decimal = d
	return nil
}

func (r Rate) Value() (driver.Value, error) {
	return r.Decimal.Value()
}

func (r *Rate) Scan(value interface{}) error {
	if value == nil {
		r.Decimal = decimal.Zero
		return nil
	}
	return r.Decimal.Scan(value)
}

// Quantity 明細数量
type Quantity struct {
	decimal.Decimal
}

// NewQuantity 整数数量を生成する
func NewQuantity(n int64) Quantity {
	return Quantity{Decimal: decimal.NewFromInt(n)}
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.Decimal.String()), nil
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	d, err := parseJSONDecimal(b)
	if err != nil {
		return err
	}
	q.Decimal = d
	return nil
}

func (q Quantity) Value() (driver.Value, error) {
	return q.Decimal.Value()
}

func (q *Quantity) Scan(value interface{}) error {
	if value == nil {
		q.Decimal = decimal.Zero
		return nil
	}
	return q.Decimal.Scan(value)
}

func parseJSONDecimal(b []byte) (decimal.Decimal, error) {
	if len(b) == 0 || string(b) == "null" {
		return decimal.Zero, nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return decimal.Zero, err
		}
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid decimal %q: %w", s, err)
		}
		return d, nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %s: %w", string(b), err)
	}
	return d, nil
}
