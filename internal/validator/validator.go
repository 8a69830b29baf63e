package validator

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

// Error は不正の理由を持つ。errors.Is(err, ErrInvalidInput) で判定できる
type Error struct {
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func (e *Error) Is(target error) bool { return target == ErrInvalidInput }

func invalid(reason string) error {
	return &Error{Reason: reason}
}

var emailLike = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// よくある弱いパスワード
var weakPasswords = map[string]struct{}{
	"password":     {},
	"password123":  {},
	"123456789012": {},
	"qwertyuiop12": {},
	"letmein12345": {},
	"admin1234567": {},
}

const minPasswordLen = 12

const (
	// 1明細あたりの数量の上限
	MaxOrderQuantity int64 = 100_000
	// 在庫の上限
	MaxStock int64 = 1_000_000_000
)

// 金額は numeric(12,2) に入る範囲（小数2桁、10^10未満）
var maxAmount = decimal.New(1, 10)

func Email(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return invalid("email required")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil || !emailLike.MatchString(trimmed) {
		return invalid("invalid email format")
	}
	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLen {
		return invalid("password too short")
	}
	if _, ok := weakPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
		return invalid("weak password")
	}
	return nil
}

func Product(name string, price decimal.Decimal, stock int64) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name required")
	}
	if err := Amount("price", price); err != nil {
		return err
	}
	return Stock(stock)
}

func Stock(stock int64) error {
	if stock < 0 {
		return invalid("stock must be >= 0")
	}
	if stock > MaxStock {
		return invalid("stock too large")
	}
	return nil
}

// Amount は保存できる金額か確かめる
func Amount(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return invalid(field + " must be >= 0")
	}
	if !v.Equal(v.Round(2)) {
		return invalid(field + " must have at most 2 decimal places")
	}
	if v.GreaterThanOrEqual(maxAmount) {
		return invalid(field + " too large")
	}
	return nil
}

func CustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name required")
	}
	return nil
}

// 注文明細1行
func OrderLine(productID int64, quantity int64, unitPrice decimal.Decimal) error {
	if productID <= 0 {
		return invalid("invalid product_id")
	}
	if quantity <= 0 {
		return invalid("quantity must be > 0")
	}
	if quantity > MaxOrderQuantity {
		return invalid("quantity too large")
	}
	return Amount("unit_price", unitPrice)
}

// 空文字はnilにそろえる
func OptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
