package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeStatus says whether this year's annual fee has been dealt with.
type FeeStatus struct {
	ActionTaken bool      `json:"action_taken"`
	Action      FeeAction `json:"action,omitempty"`
}

// FeeLine is one card in a fee report.
type FeeLine struct {
	Card   CreditCard `json:"card"`
	Status FeeStatus  `json:"status"`
}

// FeeReport lists active cards whose annual fee falls this month or next.
type FeeReport struct {
	ThisMonth    string    `json:"this_month"`
	NextMonth    string    `json:"next_month"`
	DueThisMonth []FeeLine `json:"due_this_month"`
	DueNextMonth []FeeLine `json:"due_next_month"`
}

// BonusProgress is how far current spend has come toward the minimum spend.
type BonusProgress struct {
	Remaining decimal.Decimal `json:"remaining"`
	Percent   decimal.Decimal `json:"percent"`
}

// BonusLine is one pending welcome bonus with its deadline pressure.
type BonusLine struct {
	Card     CreditCard    `json:"card"`
	Progress BonusProgress `json:"progress"`
	DaysLeft int           `json:"days_left"`
}

// ReapplyLine is a cancelled card that can be applied for again soon.
type ReapplyLine struct {
	Card        CreditCard `json:"card"`
	EligibleNow bool       `json:"eligible_now"`
	DaysUntil   int        `json:"days_until"`
}

// PortfolioStats summarises the whole portfolio.
type PortfolioStats struct {
	ActiveCards     int             `json:"active_cards"`
	AnnualLiability decimal.Decimal `json:"annual_liability"`
	FeesWaived      int             `json:"fees_waived"`
	FeesPaid        int             `json:"fees_paid"`
}

// Dashboard is everything the front page shows for a given day.
type Dashboard struct {
	Today   time.Time      `json:"today"`
	Fees    FeeReport      `json:"fees"`
	Bonuses []BonusLine    `json:"bonuses"`
	Reapply []ReapplyLine  `json:"reapply"`
	Stats   PortfolioStats `json:"stats"`
	Cards   []CreditCard   `json:"cards"`
}
