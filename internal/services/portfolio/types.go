package portfolio

import (
	"time"

	domainerrors "cardfolio/internal/errors"
	"cardfolio/internal/services/insights"
)

// Operation results reported to the MetricsCollector.
const (
	ResultOK          = "ok"
	ResultInvalid     = "invalid"
	ResultNotFound    = "not_found"
	ResultIOError     = "io_error"
	ResultLockTimeout = "lock_timeout"
)

// ReapplyAfterMonths is how long after cancelling a card its bonus can be
// earned again.
const ReapplyAfterMonths = 13

// Config holds configuration for portfolio operations
type Config struct {
	ReapplyWindowDays int
	Transactional     bool
	// Now is the clock used for "today". Defaults to time.Now.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.ReapplyWindowDays <= 0 {
		c.ReapplyWindowDays = insights.DefaultReapplyWindowDays
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// CardStatus selects which cards List returns.
type CardStatus string

const (
	StatusAll       CardStatus = "all"
	StatusActive    CardStatus = "active"
	StatusCancelled CardStatus = "cancelled"
)

// CardOrder is the ordering List applies.
type CardOrder string

const (
	// OrderManual is the user's drag-and-drop sort order.
	OrderManual CardOrder = "order"
	// OrderDue puts the soonest annual fee first, manual order breaking ties.
	OrderDue CardOrder = "due"
)

// ListOptions filters and orders the card list.
type ListOptions struct {
	Status CardStatus
	Order  CardOrder
}

// ParseListOptions reads the query form of ListOptions. Empty values take
// the defaults: every card, manual order.
func ParseListOptions(status, order string) (ListOptions, error) {
	opts := ListOptions{Status: StatusAll, Order: OrderManual}
	fields := make(map[string]string)
	switch CardStatus(status) {
	case "":
	case StatusAll, StatusActive, StatusCancelled:
		opts.Status = CardStatus(status)
	default:
		fields["status"] = "must be active, cancelled or all"
	}
	switch CardOrder(order) {
	case "":
	case OrderManual, OrderDue:
		opts.Order = CardOrder(order)
	default:
		fields["sort"] = "must be order or due"
	}
	if len(fields) > 0 {
		return opts, domainerrors.Validation(fields)
	}
	return opts, nil
}
