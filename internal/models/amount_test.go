// internal/models/amount_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeSplitBasic(t *testing.T) {
	// 100 tokens at 1% yields a 1 token fee and 99 net.
	amount := MustAmount("100000000000000000000")
	fee, net, err := amount.FeeSplit(1_000_000)
	require.NoError(t, err)

	assert.Equal(t, "1000000000000000000", fee.Decimal())
	assert.Equal(t, "99000000000000000000", net.Decimal())
}

func TestFeeSplitFloorsAndConserves(t *testing.T) {
	cases := []struct {
		amount  string
		percent uint32
	}{
		{"1", 1_000_000},
		{"3", 33_333_333},
		{"99999999", 1},
		{"1000000000000000000", 2_500_000},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639935", 0},
	}

	for _, tc := range cases {
		amount := MustAmount(tc.amount)
		fee, net, err := amount.FeeSplit(tc.percent)
		require.NoError(t, err, tc.amount)

		var sum Amount
		sum.Add(&fee.Int, &net.Int)
		assert.Equal(t, amount.Decimal(), sum.Decimal(), "fee + net must equal the amount")
	}
}

func TestFeeSplitZeroPercent(t *testing.T) {
	amount := MustAmount("500")
	fee, net, err := amount.FeeSplit(0)
	require.NoError(t, err)
	assert.True(t, fee.IsZero())
	assert.Equal(t, "500", net.Decimal())
}

func TestFeeSplitFullPercent(t *testing.T) {
	amount := MustAmount("500")
	fee, net, err := amount.FeeSplit(PercentScale)
	require.NoError(t, err)
	assert.Equal(t, "500", fee.Decimal())
	assert.True(t, net.IsZero())
}

func TestFeeSplitTinyAmountFloorsToZeroFee(t *testing.T) {
	// 1% of 50 base units floors to 0; the recipient gets everything.
	amount := MustAmount("50")
	fee, net, err := amount.FeeSplit(1_000_000)
	require.NoError(t, err)
	assert.True(t, fee.IsZero())
	assert.Equal(t, "50", net.Decimal())
}

func TestFeeSplitOverflow(t *testing.T) {
	max := MustAmount("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	_, _, err := max.FeeSplit(1_000_000)
	assert.Error(t, err)
}

func TestAmountFromDecimal(t *testing.T) {
	a, err := AmountFromDecimal("123456789")
	require.NoError(t, err)
	assert.Equal(t, "123456789", a.Decimal())

	_, err = AmountFromDecimal("not-a-number")
	assert.Error(t, err)

	empty, err := AmountFromDecimal("")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestAmountJSONRoundTrip(t *testing.T) {
	a := MustAmount("10000000000000000000")
	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"10000000000000000000"`, string(data))

	var back Amount
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, a.Decimal(), back.Decimal())
}

func TestAmountJSONBareNumber(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`42`), &a))
	assert.Equal(t, "42", a.Decimal())
}

func TestAmountScan(t *testing.T) {
	var a Amount
	require.NoError(t, a.Scan("777"))
	assert.Equal(t, "777", a.Decimal())

	require.NoError(t, a.Scan([]byte("888")))
	assert.Equal(t, "888", a.Decimal())

	require.NoError(t, a.Scan(nil))
	assert.True(t, a.IsZero())
}
