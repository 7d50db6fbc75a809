package models

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImage is used when a card has no resolvable card art.
const DefaultImage = "default.png"

// CreditCard is one tracked card: a single row of the data file.
type CreditCard struct {
	ID            string          `json:"id"`
	Bank          string          `json:"bank"`
	CardName      string          `json:"card_name"`
	AnnualFee     decimal.Decimal `json:"annual_fee"`
	Expiry        Expiry          `json:"-"`
	FeeDueMonth   time.Month      `json:"-"`
	ImageFilename string          `json:"image_filename"`
	SortOrder     int             `json:"sort_order"`
	Notes         string          `json:"notes"`
	Tags          []string        `json:"tags"`
	Last4         string          `json:"last4,omitempty"`

	DateApplied   *time.Time `json:"date_applied,omitempty"`
	DateApproved  *time.Time `json:"date_approved,omitempty"`
	DateReceived  *time.Time `json:"date_received,omitempty"`
	DateActivated *time.Time `json:"date_activated,omitempty"`
	FirstCharge   *time.Time `json:"first_charge,omitempty"`

	CancellationDate *time.Time `json:"cancellation_date,omitempty"`
	ReapplyDate      *time.Time `json:"reapply_date,omitempty"`

	BonusOffer       string          `json:"bonus_offer"`
	MinSpend         decimal.Decimal `json:"min_spend"`
	MinSpendDeadline *time.Time      `json:"min_spend_deadline,omitempty"`
	BonusStatus      BonusStatus     `json:"bonus_status"`
	CurrentSpend     decimal.Decimal `json:"current_spend"`

	FeeWaivedCount    int       `json:"fee_waived_count"`
	FeePaidCount      int       `json:"fee_paid_count"`
	LastFeeActionYear int       `json:"last_fee_action_year"`
	LastFeeAction     FeeAction `json:"last_fee_action"`
}

// Active reports whether the card has not been cancelled.
func (c *CreditCard) Active() bool {
	return c.CancellationDate == nil
}

// DisplayName is "Bank CardName".
func (c *CreditCard) DisplayName() string {
	return strings.TrimSpace(c.Bank + " " + c.CardName)
}

// SetExpiry updates the expiry and keeps the fee due month in step with it.
func (c *CreditCard) SetExpiry(e Expiry) {
	c.Expiry = e
	c.FeeDueMonth = e.Month
}

// HasTag reports whether tag is attached to the card.
func (c *CreditCard) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NormalizeTags trims, drops empties, dedupes and sorts a tag list.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Date truncates t to a UTC calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatePtr returns a pointer to the calendar date of t.
func DatePtr(t time.Time) *time.Time {
	d := Date(t)
	return &d
}

type creditCardJSON CreditCard

// MarshalJSON renders expiry and fee due month in their stored text form.
func (c CreditCard) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		creditCardJSON
		Expiry      string `json:"expiry"`
		FeeDueMonth string `json:"fee_due_month"`
		Active      bool   `json:"active"`
	}{
		creditCardJSON: creditCardJSON(c),
		Expiry:         c.Expiry.String(),
		FeeDueMonth:    MonthName(c.FeeDueMonth),
		Active:         c.Active(),
	})
}
