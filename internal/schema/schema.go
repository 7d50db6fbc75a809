// Package schema is the canonical list of data file columns: their order,
// their semantic kind, the value a column gets when an older file lacks it,
// and the value a cell falls back to when it cannot be read.
package schema

import (
	"strconv"

	"cardfolio/internal/models"
)

// Kind is the semantic type of a column.
type Kind int

const (
	KindID Kind = iota
	KindString
	KindMoney
	KindExpiry
	KindMonth
	KindDate
	KindInt
	KindTags
	KindBonusStatus
	KindLast4
	KindCount
	KindFeeAction

	numKinds
)

func (k Kind) String() string {
	return [...]string{
		"id", "string", "money", "expiry", "month", "date",
		"int", "tags", "bonus_status", "last4", "count", "fee_action",
	}[k]
}

// Field describes one column. Default is the raw text decoded for every row
// when the column is missing from the file; Fallback is decoded when a present
// cell cannot be read. Derived columns are computed by the store when missing
// (ids, sort order, fee month, last fee action) and ignore Default.
//
// Ref returns a pointer to the card field the column is stored in; its type
// must match what the Kind's codec reads and writes.
type Field struct {
	Name     string
	Kind     Kind
	Default  string
	Fallback string
	Derived  bool
	Ref      func(c *models.CreditCard) interface{}
}

// Decode reads raw into the card. It reports false, leaving the card
// untouched, when raw cannot be coerced to the column's kind.
func (f Field) Decode(c *models.CreditCard, raw string) bool {
	return codecs[f.Kind].decode(raw, f.Ref(c))
}

// Encode renders the card's value for the column as stored text.
func (f Field) Encode(c *models.CreditCard) string {
	return codecs[f.Kind].encode(f.Ref(c))
}

// Column names as they appear in the header row.
const (
	ID                = "ID"
	Bank              = "Bank"
	CardName          = "Card Name"
	AnnualFee         = "Annual Fee"
	Expiry            = "Card Expiry (MM/YY)"
	FeeDueMonth       = "Month of Annual Fee"
	DateApplied       = "Date Applied"
	DateApproved      = "Date Approved"
	DateReceived      = "Date Received Card"
	DateActivated     = "Date Activated Card"
	FirstCharge       = "First Charge Date"
	ImageFilename     = "Image Filename"
	SortOrder         = "Sort Order"
	Notes             = "Notes"
	CancellationDate  = "Cancellation Date"
	ReapplyDate       = "Re-apply Date"
	Tags              = "Tags"
	BonusOffer        = "Bonus Offer"
	MinSpend          = "Min Spend"
	MinSpendDeadline  = "Min Spend Deadline"
	BonusStatus       = "Bonus Status"
	Last4             = "Last 4 Digits"
	CurrentSpend      = "Current Spend"
	FeeWaivedCount    = "FeeWaivedCount"
	FeePaidCount      = "FeePaidCount"
	LastFeeActionYear = "LastFeeActionYear"
	LastFeeAction     = "LastFeeAction"
)

// SortOrderFallback is the sort order given to a row whose value is unreadable.
const SortOrderFallback = 99

var fields = []Field{
	{Name: ID, Kind: KindID, Derived: true,
		Ref: func(c *models.CreditCard) interface{} { return &c.ID }},
	{Name: Bank, Kind: KindString,
		Ref: func(c *models.CreditCard) interface{} { return &c.Bank }},
	{Name: CardName, Kind: KindString,
		Ref: func(c *models.CreditCard) interface{} { return &c.CardName }},
	{Name: AnnualFee, Kind: KindMoney, Default: "0", Fallback: "0",
		Ref: func(c *models.CreditCard) interface{} { return &c.AnnualFee }},
	{Name: Expiry, Kind: KindExpiry,
		Ref: func(c *models.CreditCard) interface{} { return &c.Expiry }},
	{Name: FeeDueMonth, Kind: KindMonth, Derived: true,
		Ref: func(c *models.CreditCard) interface{} { return &c.FeeDueMonth }},
	{Name: DateApplied, Kind: KindDate,
		Ref: func(c *models.CreditCard) interface{} { return &c.DateApplied }},
	{Name: DateApproved, Kind: KindDate,
		Ref: func(c *models.CreditCard) interface{} { return &c.DateApproved }},
	{Name: DateReceived, Kind: KindDate,
		Ref: func(c *models.CreditCard) interface{} { return &c.DateReceived }},
	{Name: DateActivated, Kind: KindDate,
		Ref: func(c *models.CreditCard) interface{} { return &c.DateActivated }},
	{Name: FirstCharge, Kind: KindDate,
		Ref: func(c *models.CreditCard) interface{} { return &c.FirstCharge }},
	{Name: ImageFilename, Kind: KindString, Default: models.DefaultImage,
		Ref: func(c *models.CreditCard) interface{} { return &c.ImageFilename }},
	{Name: SortOrder, Kind: KindInt, Fallback: strconv.Itoa(SortOrderFallback), Derived: true,
		Ref: func(c *models.CreditCard) interface{} { return &c.SortOrder }},
	{Name: Notes, Kind: KindString,
		Ref: func(c *models.CreditCard) interface{} { return &c.Notes }},
	{Name: CancellationDate, Kind: KindDate,
		Ref: func(c *models.CreditCard) interface{} { return &c.CancellationDate }},
	{Name: ReapplyDate, Kind: KindDate,
		Ref: func(c *models.CreditCard) interface{} { return &c.ReapplyDate }},
	{Name: Tags, Kind: KindTags,
		Ref: func(c *models.CreditCard) interface{} { return &c.Tags }},
	{Name: BonusOffer, Kind: KindString,
		Ref: func(c *models.CreditCard) interface{} { return &c.BonusOffer }},
	{Name: MinSpend, Kind: KindMoney, Default: "0", Fallback: "0",
		Ref: func(c *models.CreditCard) interface{} { return &c.MinSpend }},
	{Name: MinSpendDeadline, Kind: KindDate,
		Ref: func(c *models.CreditCard) interface{} { return &c.MinSpendDeadline }},
	{Name: BonusStatus, Kind: KindBonusStatus, Default: string(models.BonusNotStarted), Fallback: string(models.BonusNotStarted),
		Ref: func(c *models.CreditCard) interface{} { return &c.BonusStatus }},
	{Name: Last4, Kind: KindLast4,
		Ref: func(c *models.CreditCard) interface{} { return &c.Last4 }},
	{Name: CurrentSpend, Kind: KindMoney, Default: "0", Fallback: "0",
		Ref: func(c *models.CreditCard) interface{} { return &c.CurrentSpend }},
	{Name: FeeWaivedCount, Kind: KindCount, Default: "0", Fallback: "0",
		Ref: func(c *models.CreditCard) interface{} { return &c.FeeWaivedCount }},
	{Name: FeePaidCount, Kind: KindCount, Default: "0", Fallback: "0",
		Ref: func(c *models.CreditCard) interface{} { return &c.FeePaidCount }},
	{Name: LastFeeActionYear, Kind: KindCount, Default: "0", Fallback: "0",
		Ref: func(c *models.CreditCard) interface{} { return &c.LastFeeActionYear }},
	{Name: LastFeeAction, Kind: KindFeeAction, Derived: true,
		Ref: func(c *models.CreditCard) interface{} { return &c.LastFeeAction }},
}

var byName = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}()

// Aliases maps column names used by older revisions of the data file onto
// current column names.
var Aliases = map[string]string{
	"Expiry":       Expiry,
	"First Charge": FirstCharge,
	"Use Case":     Notes,
}

// Fields returns the registry in on-disk column order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Columns returns the header row.
func Columns() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

// Lookup returns the field for a column name.
func Lookup(name string) (Field, bool) {
	f, ok := byName[name]
	return f, ok
}
