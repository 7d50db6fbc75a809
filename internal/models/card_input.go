package models

import (
	"github.com/shopspring/decimal"
)

// CardInput carries the user-editable fields of a card for Add and Edit.
// Dates are "2006-01-02" strings; empty means unset. A nil amount leaves
// the stored value alone on Edit and is zero on Add.
type CardInput struct {
	// CatalogKey picks bank, card name and image from the card-art catalog.
	// Add only; when empty Bank and CardName are required.
	CatalogKey string `json:"catalog_key" validate:"omitempty,max=200"`

	Bank          string           `json:"bank" validate:"omitempty,max=100"`
	CardName      string           `json:"card_name" validate:"omitempty,max=100"`
	AnnualFee     *decimal.Decimal `json:"annual_fee"`
	Expiry        string           `json:"expiry" validate:"required,mmyy"`
	Last4         string           `json:"last4" validate:"omitempty,last4"`
	Notes         string           `json:"notes" validate:"max=2000"`
	Tags          []string         `json:"tags" validate:"omitempty,dive,max=50"`
	ImageFilename string           `json:"image_filename" validate:"omitempty,max=200"`

	DateApplied   string `json:"date_applied" validate:"omitempty,datetime=2006-01-02"`
	DateApproved  string `json:"date_approved" validate:"omitempty,datetime=2006-01-02"`
	DateReceived  string `json:"date_received" validate:"omitempty,datetime=2006-01-02"`
	DateActivated string `json:"date_activated" validate:"omitempty,datetime=2006-01-02"`
	FirstCharge   string `json:"first_charge" validate:"omitempty,datetime=2006-01-02"`

	BonusOffer       string           `json:"bonus_offer" validate:"max=200"`
	MinSpend         *decimal.Decimal `json:"min_spend"`
	MinSpendDeadline string           `json:"min_spend_deadline" validate:"omitempty,datetime=2006-01-02"`
	BonusStatus      string           `json:"bonus_status" validate:"omitempty,bonus_status"`
	CurrentSpend     *decimal.Decimal `json:"current_spend"`
}

// FeeActionInput records a waived or paid annual fee.
type FeeActionInput struct {
	Action string `json:"action" validate:"required,oneof=Waived Paid"`
}

// SpendInput sets current spend to Total, or adds Add to it.
type SpendInput struct {
	Total *decimal.Decimal `json:"total" validate:"required_without=Add"`
	Add   *decimal.Decimal `json:"add" validate:"required_without=Total"`
}

// ReorderInput maps every active card id to its new position.
type ReorderInput struct {
	Orders map[string]int `json:"orders" validate:"required,min=1,dive,keys,required,endkeys,min=1"`
}

// TagsInput names the tags to create or delete.
type TagsInput struct {
	Tags []string `json:"tags" validate:"required,min=1,dive,required,max=50"`
}
