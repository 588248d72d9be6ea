package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountInvestment AccountType = "investment"
	AccountCash       AccountType = "cash"
	AccountOther      AccountType = "other"
)

const (
	CardCredit CardType = "credit"
	CardDebit  CardType = "debit"
)

type (
	TransactionType string

	AccountType string

	CardType string

	// Category is a classification label with display metadata. It is
	// snapshotted by value into each transaction at creation time, so
	// later catalog changes never rewrite history.
	Category struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Icon  string          `json:"icon"`
		Color string          `json:"color"`
		Type  TransactionType `json:"type"`
	}

	// Transaction is a single dated money movement. The sign is carried
	// by Type; Amount is always positive. Date is an ISO YYYY-MM-DD
	// string so month bucketing stays a pure prefix operation.
	Transaction struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    Category        `json:"category"`
		Date        string          `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	Account struct {
		ID        string      `json:"id"`
		Name      string      `json:"name"`
		Type      AccountType `json:"type"`
		Balance   Money       `json:"balance"` // signed, may be negative
		Icon      string      `json:"icon"`
		Color     string      `json:"color"`
		CreatedAt time.Time   `json:"createdAt"`
	}

	// Card models a credit or debit card. Limit, UsedLimit, ClosingDay
	// and DueDay only apply to credit cards; AccountID is a weak
	// reference that may dangle after the account is deleted.
	Card struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Type       CardType  `json:"type"`
		LastDigits string    `json:"lastDigits"`
		Limit      Money     `json:"limit"`
		UsedLimit  Money     `json:"usedLimit"`
		ClosingDay int       `json:"closingDay,omitempty"`
		DueDay     int       `json:"dueDay,omitempty"`
		AccountID  string    `json:"accountId,omitempty"`
		Color      string    `json:"color"`
		CreatedAt  time.Time `json:"createdAt"`
	}

	// Goal is a savings target. CurrentAmount may exceed TargetAmount
	// (over-achieved goals are valid).
	Goal struct {
		ID                  string    `json:"id"`
		Name                string    `json:"name"`
		TargetAmount        Money     `json:"targetAmount"`
		CurrentAmount       Money     `json:"currentAmount"`
		Deadline            string    `json:"deadline"` // ISO YYYY-MM-DD
		Icon                string    `json:"icon"`
		Color               string    `json:"color"`
		AccountID           string    `json:"accountId,omitempty"`
		MonthlyContribution Money     `json:"monthlyContribution"`
		CreatedAt           time.Time `json:"createdAt"`
	}

	// Budget caps a category's spending for one month. There is at most
	// one budget per (CategoryID, Month) pair.
	Budget struct {
		ID         string `json:"id"`
		CategoryID string `json:"categoryId"`
		Amount     Money  `json:"amount"`
		Month      string `json:"month"` // YYYY-MM
	}

	// SurveyAnswers holds the optional onboarding questionnaire.
	SurveyAnswers struct {
		TracksExpenses        bool   `json:"tracksExpenses"`
		MainGoal              string `json:"mainGoal"`
		BiggestExpenseArea    string `json:"biggestExpenseArea"`
		TrackingFrequency     string `json:"trackingFrequency"`
		WantsPersonalizedTips bool   `json:"wantsPersonalizedTips"`
	}

	// UserProfile is the singleton user record.
	UserProfile struct {
		Name                string         `json:"name"`
		Age                 int            `json:"age"`
		MonthlySalary       Money          `json:"monthlySalary"`
		OnboardingCompleted bool           `json:"onboardingCompleted"`
		Survey              *SurveyAnswers `json:"survey,omitempty"`
		CreatedAt           time.Time      `json:"createdAt"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonthKey  = errors.New("invalid month key")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidType      = errors.New("invalid type")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrInvalidDay       = errors.New("invalid day of month")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountInvestment, AccountCash, AccountOther:
		return true
	}
	return false
}

func (t CardType) Valid() bool {
	return t == CardCredit || t == CardDebit
}

// ValidDate reports whether s is a well-formed ISO calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Category.ID == "" || t.Category.Type != t.Type {
		return ErrUnknownCategory
	}
	if !ValidDate(t.Date) {
		return ErrInvalidDate
	}
	return nil
}

func (a Account) Validate() error {
	if len(strings.TrimSpace(a.Name)) == 0 {
		return ErrEmptyName
	}
	if !a.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (c Card) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	if c.Limit.Cents < 0 || c.UsedLimit.Cents < 0 {
		return ErrInvalidAmount
	}
	if c.Type == CardCredit {
		if c.ClosingDay != 0 && (c.ClosingDay < 1 || c.ClosingDay > 31) {
			return ErrInvalidDay
		}
		if c.DueDay != 0 && (c.DueDay < 1 || c.DueDay > 31) {
			return ErrInvalidDay
		}
	}
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if g.TargetAmount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if !ValidDate(g.Deadline) {
		return ErrInvalidDate
	}
	return nil
}

func (b Budget) Validate() error {
	if b.CategoryID == "" {
		return ErrUnknownCategory
	}
	if b.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if !ValidMonthKey(MonthKey(b.Month)) {
		return ErrInvalidMonthKey
	}
	return nil
}

func (p UserProfile) Validate() error {
	if len(strings.TrimSpace(p.Name)) == 0 {
		return ErrEmptyName
	}
	if p.Age < 0 {
		return errors.New("negative age")
	}
	if p.MonthlySalary.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
