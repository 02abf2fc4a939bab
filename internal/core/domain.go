package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

type (
	// TransactionType tags an entry as money going out or coming in.
	TransactionType string

	// Transaction is a dated, categorized amount recorded by the user.
	// Replaced only via explicit update by id; never mutated in place.
	Transaction struct {
		ID            string          `json:"id"`
		Type          TransactionType `json:"type"`
		Category      string          `json:"category"`
		CategoryColor string          `json:"categoryColor"`
		Amount        Money           `json:"amountCents"`
		Description   string          `json:"description,omitempty"`
		Date          time.Time       `json:"date"`
	}

	// LegacyExpense is the pre-transaction data shape kept for backward
	// compatibility with already stored data. It carries no type and no
	// guaranteed color; aggregation always treats it as expense-like.
	LegacyExpense struct {
		ID          string    `json:"id"`
		Category    string    `json:"category"`
		Amount      Money     `json:"amountCents"`
		Description string    `json:"description,omitempty"`
		Date        time.Time `json:"date"`
	}

	// PlannedBudget is a budgeted target for one category in one period.
	// Unique per (category, type, month, year).
	PlannedBudget struct {
		ID            string          `json:"id"`
		Category      string          `json:"category"`
		Type          TransactionType `json:"type"`
		PlannedAmount Money           `json:"plannedAmountCents"`
		Month         string          `json:"month"`
		Year          int             `json:"year"`
	}

	// BudgetData anchors every "current" query to one month and year.
	// Savings, Paycheck and Bonus survive from older stored data and are
	// never consulted by the calculators.
	BudgetData struct {
		Month    string `json:"month"`
		Year     int    `json:"year"`
		Savings  Money  `json:"savingsCents,omitempty"`
		Paycheck Money  `json:"paycheckCents,omitempty"`
		Bonus    Money  `json:"bonusCents,omitempty"`
	}

	// Category maps a name+type pair to a display color. The name+type
	// pair is the effective identity for lookups, case-insensitive.
	Category struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Type        TransactionType `json:"type"`
		Color       string          `json:"color"`
		IsDefault   bool            `json:"isDefault"`
		IsUserAdded bool            `json:"isUserAdded,omitempty"`
	}
)

var (
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrMissingDate   = errors.New("missing date")
	ErrInvalidMonth  = errors.New("invalid month name")
	ErrInvalidYear   = errors.New("invalid year")
)

func (t TransactionType) Validate() error {
	switch t {
	case TypeExpense, TypeIncome:
		return nil
	}
	return ErrInvalidType
}

func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

func (e LegacyExpense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

func (p PlannedBudget) Validate() error {
	if err := p.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Category) == "" {
		return ErrEmptyCategory
	}
	if p.PlannedAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if _, ok := MonthIndex(p.Month); !ok {
		return ErrInvalidMonth
	}
	if p.Year < 1000 || p.Year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

func (b BudgetData) Validate() error {
	if _, ok := MonthIndex(b.Month); !ok {
		return ErrInvalidMonth
	}
	if b.Year < 1000 || b.Year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

func (c Category) Validate() error {
	if err := c.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// SameName reports whether the category matches the given name and type.
// Name comparison is case-insensitive.
func (c Category) SameName(name string, t TransactionType) bool {
	return c.Type == t && strings.EqualFold(c.Name, name)
}

// InMonth reports whether the date falls in the named month and year.
func InMonth(date time.Time, month string, year int) bool {
	return date.Month().String() == month && date.Year() == year
}
