package portfolio

import (
	"context"
	"sort"
	"strings"
	"time"

	domainerrors "cardfolio/internal/errors"
	"cardfolio/internal/models"
	"cardfolio/internal/repositories"

	"github.com/shopspring/decimal"
)

// Cancel marks the card cancelled today and sets its re-apply date
// ReapplyAfterMonths calendar months later.
func (s *service) Cancel(ctx context.Context, id string) (card *models.CreditCard, err error) {
	defer s.track("cancel", time.Now(), &err)
	today := s.today()
	return s.mutate(ctx, id, func(_ *repositories.RecordSet, c *models.CreditCard) error {
		reapply := AddMonthsClamped(today, ReapplyAfterMonths)
		c.CancellationDate = models.DatePtr(today)
		c.ReapplyDate = &reapply
		return nil
	})
}

// Reactivate clears both cancellation dates and the fee action for the year,
// so the card shows as needing action again.
func (s *service) Reactivate(ctx context.Context, id string) (card *models.CreditCard, err error) {
	defer s.track("reactivate", time.Now(), &err)
	return s.mutate(ctx, id, func(_ *repositories.RecordSet, c *models.CreditCard) error {
		c.CancellationDate = nil
		c.ReapplyDate = nil
		c.LastFeeActionYear = 0
		c.LastFeeAction = models.FeeActionNone
		return nil
	})
}

// RecordFeeAction counts a waived or paid fee. Counters are lifetime totals,
// so repeating the action in the same year counts it again.
func (s *service) RecordFeeAction(ctx context.Context, id string, action models.FeeAction) (card *models.CreditCard, err error) {
	defer s.track("fee_action", time.Now(), &err)
	if action != models.FeeActionWaived && action != models.FeeActionPaid {
		return nil, domainerrors.Validation(map[string]string{"action": "must be Waived or Paid"})
	}
	year := s.today().Year()
	return s.mutate(ctx, id, func(_ *repositories.RecordSet, c *models.CreditCard) error {
		if action == models.FeeActionWaived {
			c.FeeWaivedCount++
		} else {
			c.FeePaidCount++
		}
		c.LastFeeActionYear = year
		c.LastFeeAction = action
		return nil
	})
}

// UpdateSpend sets current spend to an absolute total.
func (s *service) UpdateSpend(ctx context.Context, id string, total decimal.Decimal) (card *models.CreditCard, err error) {
	defer s.track("update_spend", time.Now(), &err)
	if total.IsNegative() {
		return nil, domainerrors.Validation(map[string]string{"total": "must not be negative"})
	}
	return s.mutate(ctx, id, func(_ *repositories.RecordSet, c *models.CreditCard) error {
		setSpend(c, total)
		return nil
	})
}

// AddSpend adds delta to the current spend and stores the new total.
func (s *service) AddSpend(ctx context.Context, id string, delta decimal.Decimal) (card *models.CreditCard, err error) {
	defer s.track("add_spend", time.Now(), &err)
	return s.mutate(ctx, id, func(_ *repositories.RecordSet, c *models.CreditCard) error {
		total := c.CurrentSpend.Add(delta)
		if total.IsNegative() {
			return domainerrors.Validation(map[string]string{"add": "would make current spend negative"})
		}
		setSpend(c, total)
		return nil
	})
}

// Reorder assigns new positions to every active card at once. Positions must
// be unique; cancelled cards keep whatever value they had.
func (s *service) Reorder(ctx context.Context, orders map[string]int) (err error) {
	defer s.track("reorder", time.Now(), &err)
	return s.apply(ctx, func(set *repositories.RecordSet) error {
		active := set.Active()
		fields := make(map[string]string)

		activeIDs := make(map[string]bool, len(active))
		var missing []string
		for _, c := range active {
			activeIDs[c.ID] = true
			if _, ok := orders[c.ID]; !ok {
				missing = append(missing, c.ID)
			}
		}
		var unknown []string
		byOrder := make(map[int][]string)
		for id, n := range orders {
			if !activeIDs[id] {
				unknown = append(unknown, id)
				continue
			}
			if n < 1 {
				fields["orders."+id] = "must be at least 1"
			}
			byOrder[n] = append(byOrder[n], id)
		}

		var duplicates []string
		for _, ids := range byOrder {
			if len(ids) > 1 {
				duplicates = append(duplicates, ids...)
			}
		}
		if len(duplicates) > 0 {
			sort.Strings(duplicates)
			fields["duplicates"] = strings.Join(duplicates, ", ")
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			fields["missing"] = strings.Join(missing, ", ")
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			fields["unknown"] = strings.Join(unknown, ", ")
		}
		if len(fields) > 0 {
			return domainerrors.Validation(fields)
		}

		for _, c := range active {
			c.SortOrder = orders[c.ID]
		}
		return nil
	})
}

// setSpend stores total and moves the bonus status forward when the spend
// warrants it. The status never moves back.
func setSpend(c *models.CreditCard, total decimal.Decimal) {
	c.CurrentSpend = total
	advanceBonus(c)
}

func advanceBonus(c *models.CreditCard) {
	if c.BonusStatus == models.BonusNotStarted && c.CurrentSpend.IsPositive() {
		c.BonusStatus = models.BonusInProgress
	}
	if c.BonusStatus.Pending() && c.MinSpend.IsPositive() && c.CurrentSpend.GreaterThanOrEqual(c.MinSpend) {
		c.BonusStatus = models.BonusMet
	}
}

// AddMonthsClamped adds calendar months to a date, clamping the day to the
// end of the target month (Jan 31 + 1 month is Feb 28 or 29).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}
