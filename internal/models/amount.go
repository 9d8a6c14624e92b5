// internal/models/amount.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Amount is a 256-bit unsigned fixed-point currency amount in the
// protocol's smallest unit. It serializes as a decimal string both in
// JSON and in the database.
type Amount struct {
	uint256.Int
}

func NewAmount(v uint64) Amount {
	var a Amount
	a.SetUint64(v)
	return a
}

func AmountFromDecimal(s string) (Amount, error) {
	var a Amount
	if s == "" {
		return a, nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return a, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	a.Set(v)
	return a, nil
}

// MustAmount parses a decimal amount and panics on malformed input.
// Intended for constants and tests only.
func MustAmount(s string) Amount {
	a, err := AmountFromDecimal(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Decimal() string {
	return a.Dec()
}

// FeeSplit computes the platform fee and remainder for the given
// percentage in the 8-decimal scale. Division floors; fee + net always
// equals the original amount.
func (a Amount) FeeSplit(percent uint32) (fee Amount, net Amount, err error) {
	p := uint256.NewInt(uint64(percent))
	product, overflow := new(uint256.Int).MulOverflow(&a.Int, p)
	if overflow {
		return fee, net, fmt.Errorf("amount %s overflows fee computation", a.Dec())
	}
	fee.Div(product, uint256.NewInt(uint64(PercentScale)))
	net.Sub(&a.Int, &fee.Int)
	return fee, net, nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Dec())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Tolerate bare JSON numbers from older clients.
		s = strings.TrimSpace(string(data))
	}
	parsed, err := AmountFromDecimal(s)
	if err != nil {
		return err
	}
	a.Set(&parsed.Int)
	return nil
}

func (a Amount) Value() (driver.Value, error) {
	return a.Dec(), nil
}

func (a *Amount) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		a.Clear()
		return nil
	case []byte:
		return a.scanString(string(v))
	case string:
		return a.scanString(v)
	case int64:
		a.SetUint64(uint64(v))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Amount", value)
	}
}

func (a *Amount) scanString(s string) error {
	parsed, err := AmountFromDecimal(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	a.Set(&parsed.Int)
	return nil
}
