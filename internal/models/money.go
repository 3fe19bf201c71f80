package models

import (
	"database/sql/driver"

	"github.com/localnerve/shopdb/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func init() {
	// Prices are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// Prices are stored as DECIMAL(12,2).
const (
	MoneyScale  = 2
	moneyDigits = 12
)

var moneyLimit = decimal.New(1, moneyDigits-MoneyScale)

// Money is a wrapper around shopspring/decimal to allow for custom data type mapping
type Money struct {
	decimal.Decimal
}

// NewMoney builds Money from a float, mostly for seeds and tests.
func NewMoney(v float64) Money {
	return Money{decimal.NewFromFloat(v)}
}

// ParseMoney builds Money from its decimal string form.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// checkPrice rejects amounts the price column would round or overflow.
func checkPrice(m Money) error {
	if !m.Equal(m.Round(MoneyScale)) {
		return types.Validation("Field 'price' must have at most %d decimal places", MoneyScale)
	}
	if m.Abs().GreaterThanOrEqual(moneyLimit) {
		return types.Validation("Field 'price' must be less than %s", moneyLimit.String())
	}
	return nil
}

// Value promotes the embedded decimal's Value method
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Value()
}

// Scan promotes the embedded decimal's Scan method
func (m *Money) Scan(value interface{}) error {
	return m.Decimal.Scan(value)
}

// GormDBDataType ensures an exact numeric column on every driver.
func (Money) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql", "postgres":
		return "DECIMAL(12,2)"
	case "sqlserver", "mssql":
		return "DECIMAL(12,2)"
	case "sqlite":
		return "NUMERIC"
	}
	return "DECIMAL(12,2)"
}
