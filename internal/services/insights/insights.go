// Package insights derives dashboard and reminder views from a card snapshot.
// Every function is pure: it takes the cards and a reference day and never
// touches storage.
package insights

import (
	"sort"
	"time"

	"cardfolio/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultReapplyWindowDays is how far ahead UpcomingReapply looks by default.
const DefaultReapplyWindowDays = 60

// DueClass places a card's fee month relative to today.
type DueClass string

const (
	DueThisMonth DueClass = "DUE_THIS_MONTH"
	DueNextMonth DueClass = "DUE_NEXT_MONTH"
	DueLater     DueClass = "DUE_LATER"
	DueUnknown   DueClass = "UNKNOWN"
)

// ClassifyDueMonth compares the card's fee due month with today's month.
func ClassifyDueMonth(c *models.CreditCard, today time.Time) DueClass {
	m := c.FeeDueMonth
	if m < time.January || m > time.December {
		return DueUnknown
	}
	switch m {
	case today.Month():
		return DueThisMonth
	case nextMonth(today.Month()):
		return DueNextMonth
	}
	return DueLater
}

// FeeActionStatus reports whether the fee was waived or paid this calendar year.
func FeeActionStatus(c *models.CreditCard, today time.Time) models.FeeStatus {
	if c.LastFeeActionYear != today.Year() {
		return models.FeeStatus{}
	}
	return models.FeeStatus{ActionTaken: true, Action: c.LastFeeAction}
}

// BonusProgress measures current spend against the minimum spend.
func BonusProgress(c *models.CreditCard) models.BonusProgress {
	remaining := c.MinSpend.Sub(c.CurrentSpend)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	percent := decimal.Zero
	if c.MinSpend.IsPositive() {
		percent = c.CurrentSpend.Div(c.MinSpend)
		if percent.IsNegative() {
			percent = decimal.Zero
		}
		if percent.GreaterThan(decimal.NewFromInt(1)) {
			percent = decimal.NewFromInt(1)
		}
		percent = percent.Round(4)
	}
	return models.BonusProgress{Remaining: remaining, Percent: percent}
}

// BonusUrgency returns the days left until the minimum spend deadline. ok is
// false when the bonus no longer needs spend or has no deadline.
func BonusUrgency(c *models.CreditCard, today time.Time) (daysLeft int, ok bool) {
	if !c.BonusStatus.Pending() || c.MinSpendDeadline == nil {
		return 0, false
	}
	return daysBetween(today, *c.MinSpendDeadline), true
}

// ReapplyEligibility reports when a cancelled card can be applied for again.
// ok is false when no re-apply date is recorded.
func ReapplyEligibility(c *models.CreditCard, today time.Time) (eligibleNow bool, daysUntil int, ok bool) {
	if c.ReapplyDate == nil {
		return false, 0, false
	}
	days := daysBetween(today, *c.ReapplyDate)
	if days <= 0 {
		return true, 0, true
	}
	return false, days, true
}

// DueSortKey orders fee months starting from today's month, so December and
// January stay adjacent. Unknown months sort last.
func DueSortKey(c *models.CreditCard, today time.Time) int {
	m := c.FeeDueMonth
	if m < time.January || m > time.December {
		return 12
	}
	return (int(m) - int(today.Month()) + 12) % 12
}

// FeeReport lists active cards due this month, with their fee status, and
// those due next month.
func FeeReport(cards []models.CreditCard, today time.Time) models.FeeReport {
	report := models.FeeReport{
		ThisMonth:    today.Month().String(),
		NextMonth:    nextMonth(today.Month()).String(),
		DueThisMonth: []models.FeeLine{},
		DueNextMonth: []models.FeeLine{},
	}
	for _, c := range ActiveBySortOrder(cards) {
		switch ClassifyDueMonth(&c, today) {
		case DueThisMonth:
			report.DueThisMonth = append(report.DueThisMonth, models.FeeLine{Card: c, Status: FeeActionStatus(&c, today)})
		case DueNextMonth:
			report.DueNextMonth = append(report.DueNextMonth, models.FeeLine{Card: c, Status: FeeActionStatus(&c, today)})
		}
	}
	return report
}

// WeeklyReminders selects the active cards due this month whose fee has not
// been dealt with this year.
func WeeklyReminders(cards []models.CreditCard, today time.Time) []models.CreditCard {
	out := []models.CreditCard{}
	for _, c := range ActiveBySortOrder(cards) {
		if ClassifyDueMonth(&c, today) != DueThisMonth {
			continue
		}
		if FeeActionStatus(&c, today).ActionTaken {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ActiveBonuses lists pending bonuses on active cards, most urgent first.
// Expired deadlines are left out.
func ActiveBonuses(cards []models.CreditCard, today time.Time) []models.BonusLine {
	out := []models.BonusLine{}
	for _, c := range ActiveBySortOrder(cards) {
		days, ok := BonusUrgency(&c, today)
		if !ok || days < 0 {
			continue
		}
		out = append(out, models.BonusLine{Card: c, Progress: BonusProgress(&c), DaysLeft: days})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysLeft < out[j].DaysLeft
	})
	return out
}

// UpcomingReapply lists cancelled cards that are eligible now or become
// eligible within windowDays, soonest first.
func UpcomingReapply(cards []models.CreditCard, today time.Time, windowDays int) []models.ReapplyLine {
	if windowDays <= 0 {
		windowDays = DefaultReapplyWindowDays
	}
	out := []models.ReapplyLine{}
	for _, c := range cards {
		if c.Active() {
			continue
		}
		now, days, ok := ReapplyEligibility(&c, today)
		if !ok || days > windowDays {
			continue
		}
		out = append(out, models.ReapplyLine{Card: c, EligibleNow: now, DaysUntil: days})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Card.ReapplyDate.Before(*out[j].Card.ReapplyDate)
	})
	return out
}

// PortfolioStats totals the fee liability of active cards. Fee counters
// include cancelled cards.
func PortfolioStats(cards []models.CreditCard) models.PortfolioStats {
	stats := models.PortfolioStats{AnnualLiability: decimal.Zero}
	for _, c := range cards {
		stats.FeesWaived += c.FeeWaivedCount
		stats.FeesPaid += c.FeePaidCount
		if !c.Active() {
			continue
		}
		stats.ActiveCards++
		stats.AnnualLiability = stats.AnnualLiability.Add(c.AnnualFee)
	}
	return stats
}

// ActiveBySortOrder returns copies of the active cards in manual order.
func ActiveBySortOrder(cards []models.CreditCard) []models.CreditCard {
	out := make([]models.CreditCard, 0, len(cards))
	for _, c := range cards {
		if c.Active() {
			out = append(out, c)
		}
	}
	SortByOrder(out)
	return out
}

// ByDueOrder returns the active cards ordered by how soon their fee falls due,
// manual order breaking ties.
func ByDueOrder(cards []models.CreditCard, today time.Time) []models.CreditCard {
	out := ActiveBySortOrder(cards)
	SortByDue(out, today)
	return out
}

// SortByOrder sorts cards in place by their manual sort order.
func SortByOrder(cards []models.CreditCard) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].SortOrder < cards[j].SortOrder
	})
}

// SortByDue sorts cards in place by how soon their fee falls due after
// today. Unknown months go last; equal keys keep their current order.
func SortByDue(cards []models.CreditCard, today time.Time) {
	sort.SliceStable(cards, func(i, j int) bool {
		return DueSortKey(&cards[i], today) < DueSortKey(&cards[j], today)
	})
}

// BuildDashboard assembles every view the front page shows.
func BuildDashboard(cards []models.CreditCard, today time.Time, reapplyWindowDays int) models.Dashboard {
	return models.Dashboard{
		Today:   models.Date(today),
		Fees:    FeeReport(cards, today),
		Bonuses: ActiveBonuses(cards, today),
		Reapply: UpcomingReapply(cards, today, reapplyWindowDays),
		Stats:   PortfolioStats(cards),
		Cards:   ActiveBySortOrder(cards),
	}
}

func nextMonth(m time.Month) time.Month {
	return m%12 + 1
}

func daysBetween(from, to time.Time) int {
	return int(models.Date(to).Sub(models.Date(from)).Hours() / 24)
}
