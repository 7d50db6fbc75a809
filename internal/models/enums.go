package models

import (
	"strings"
	"time"
)

// BonusStatus tracks a welcome bonus from offer to payout.
type BonusStatus string

const (
	BonusNotStarted BonusStatus = "Not Started"
	BonusInProgress BonusStatus = "In Progress"
	BonusMet        BonusStatus = "Met"
	BonusReceived   BonusStatus = "Received"
)

// ParseBonusStatus resolves a stored label. Matching ignores case, spaces and
// underscores so NOT_STARTED and "not started" both resolve.
func ParseBonusStatus(s string) (BonusStatus, bool) {
	switch normalizeLabel(s) {
	case "notstarted":
		return BonusNotStarted, true
	case "inprogress":
		return BonusInProgress, true
	case "met":
		return BonusMet, true
	case "received":
		return BonusReceived, true
	}
	return BonusNotStarted, false
}

// Pending reports whether the bonus still needs spend.
func (s BonusStatus) Pending() bool {
	return s == BonusNotStarted || s == BonusInProgress
}

func (s BonusStatus) rank() int {
	switch s {
	case BonusInProgress:
		return 1
	case BonusMet:
		return 2
	case BonusReceived:
		return 3
	}
	return 0
}

// Before reports whether s is earlier in the bonus lifecycle than other.
func (s BonusStatus) Before(other BonusStatus) bool {
	return s.rank() < other.rank()
}

// FeeAction is the last thing done about an annual fee.
type FeeAction string

const (
	FeeActionNone   FeeAction = ""
	FeeActionWaived FeeAction = "Waived"
	FeeActionPaid   FeeAction = "Paid"
)

// ParseFeeAction resolves a stored fee action label.
func ParseFeeAction(s string) (FeeAction, bool) {
	switch normalizeLabel(s) {
	case "":
		return FeeActionNone, true
	case "waived":
		return FeeActionWaived, true
	case "paid":
		return FeeActionPaid, true
	}
	return FeeActionNone, false
}

// ParseMonth resolves a full or three-letter English month name.
// Unknown names return 0.
func ParseMonth(s string) time.Month {
	name := strings.ToLower(strings.TrimSpace(s))
	if len(name) < 3 {
		return 0
	}
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] {
			return m
		}
	}
	return 0
}

// MonthName is the stored form of a fee due month; 0 becomes "".
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return m.String()
}

func normalizeLabel(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}
