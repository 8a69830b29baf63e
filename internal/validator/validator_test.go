package validator_test

import (
	"errors"
	"math"
	"testing"

	"makeupsales/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.NoError(t, validator.Email("staff@example.com"))
	assert.NoError(t, validator.Email("  staff@example.com "))

	for _, bad := range []string{"", "   ", "staff", "staff@", "staff@example", "a b@example.com"} {
		assert.ErrorIs(t, validator.Email(bad), validator.ErrInvalidInput, bad)
	}
}

func TestPassword(t *testing.T) {
	assert.NoError(t, validator.Password("correct horse battery"))

	err := validator.Password("short")
	var ve *validator.Error
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "password too short", ve.Reason)

	assert.EqualError(t, validator.Password("Password12"), "password too short")
	//大文字小文字と前後の空白は無視して弱いリストと比べる
	assert.EqualError(t, validator.Password("Password123 "), "weak password")
	assert.EqualError(t, validator.Password("123456789012"), "weak password")
}

func TestProduct(t *testing.T) {
	assert.NoError(t, validator.Product("Lipstick", decimal.Zero, 0))
	assert.EqualError(t, validator.Product(" ", decimal.NewFromInt(1), 1), "name required")
	assert.EqualError(t, validator.Product("x", decimal.NewFromFloat(-0.5), 1), "price must be >= 0")
	assert.EqualError(t, validator.Product("x", decimal.NewFromInt(1), -1), "stock must be >= 0")
	assert.EqualError(t, validator.Product("x", decimal.NewFromInt(1), validator.MaxStock+1), "stock too large")
	assert.EqualError(t, validator.Product("x", decimal.RequireFromString("1.999"), 1), "price must have at most 2 decimal places")
}

func TestAmount(t *testing.T) {
	for _, ok := range []string{"0", "1.5", "1.50", "1.500", "9999999999.99"} {
		assert.NoError(t, validator.Amount("price", decimal.RequireFromString(ok)), ok)
	}

	cases := map[string]string{
		"-0.01":       "price must be >= 0",
		"0.005":       "price must have at most 2 decimal places",
		"10000000000": "price too large",
		"1e12":        "price too large",
		"12.345":      "price must have at most 2 decimal places",
	}
	for in, want := range cases {
		assert.EqualError(t, validator.Amount("price", decimal.RequireFromString(in)), want, in)
	}
}

func TestOrderLine(t *testing.T) {
	assert.NoError(t, validator.OrderLine(1, 1, decimal.NewFromInt(0)))
	assert.EqualError(t, validator.OrderLine(0, 1, decimal.NewFromInt(1)), "invalid product_id")
	assert.EqualError(t, validator.OrderLine(1, 0, decimal.NewFromInt(1)), "quantity must be > 0")
	assert.EqualError(t, validator.OrderLine(1, 1, decimal.NewFromInt(-1)), "unit_price must be >= 0")
	assert.NoError(t, validator.OrderLine(1, validator.MaxOrderQuantity, decimal.NewFromInt(1)))
	assert.EqualError(t, validator.OrderLine(1, validator.MaxOrderQuantity+1, decimal.NewFromInt(1)), "quantity too large")
	assert.EqualError(t, validator.OrderLine(1, math.MaxInt64, decimal.NewFromInt(1)), "quantity too large")
	assert.EqualError(t, validator.OrderLine(1, 1, decimal.RequireFromString("0.005")), "unit_price must have at most 2 decimal places")
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, validator.OptionalString(nil))

	empty := "  "
	assert.Nil(t, validator.OptionalString(&empty))

	v := " lips "
	got := validator.OptionalString(&v)
	if assert.NotNil(t, got) {
		assert.Equal(t, "lips", *got)
	}
}
