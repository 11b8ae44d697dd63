package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Date is a calendar date (UTC midnight). Time-of-day never carries
	// meaning in this domain.
	Date struct {
		time.Time
	}

	// Card is a registered credit card. ClosingDay is the statement cutoff:
	// purchases on or after it bill in the following month.
	Card struct {
		ID         string          `json:"id"`
		Name       string          `json:"name"`
		TotalLimit decimal.Decimal `json:"totalLimit"`
		ClosingDay int             `json:"closingDay"`
		DueDay     int             `json:"dueDay"`
		Color      string          `json:"color"`
	}

	// Transaction is a purchase on a card. Value is the total amount before
	// any installment split. When IsRecurring is set, Installments is
	// ignored: the full value bills every eligible month indefinitely.
	Transaction struct {
		ID           string          `json:"id"`
		Description  string          `json:"description"`
		Value        decimal.Decimal `json:"value"`
		Date         Date            `json:"date"`
		CardID       string          `json:"cardId"`
		Installments int             `json:"installments"`
		IsRecurring  bool            `json:"isRecurring"`
	}
)

var (
	ErrInvalidDay          = errors.New("invalid day of month")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidInstallments = errors.New("installments must be at least 1")
	ErrEmptyName           = errors.New("empty card name")
	ErrEmptyDescription    = errors.New("empty description")
	ErrEmptyCardRef        = errors.New("empty card reference")
	ErrNotFound            = errors.New("not found")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to a calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return errors.New("card name too long (max 100 characters)")
	}
	if !c.TotalLimit.IsPositive() {
		return ErrInvalidAmount
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return ErrInvalidDay
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDay
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !t.Value.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.CardID) == "" {
		return ErrEmptyCardRef
	}
	if !t.IsRecurring && t.Installments < 1 {
		return ErrInvalidInstallments
	}
	return nil
}

// EffectiveInstallments normalizes the installment count: recurring charges
// are never amortized, so they count as a single installment.
func (t Transaction) EffectiveInstallments() int {
	if t.IsRecurring || t.Installments < 1 {
		return 1
	}
	return t.Installments
}
