package schema

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cardfolio/internal/models"

	"github.com/shopspring/decimal"
)

// DateLayout is how dates are written to the data file.
const DateLayout = "2006-01-02"

var readDateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
}

var (
	looseExpiry = regexp.MustCompile(`^([0-9]{1,2})/([0-9]{2}|[0-9]{4})$`)
	last4Digits = regexp.MustCompile(`^[0-9]{1,4}$`)
	moneyNoise  = strings.NewReplacer("$", "", ",", "")
)

// codec reads a raw cell into dst, a pointer to the card field, and writes
// src back out. decode leaves dst alone when it returns false.
type codec struct {
	decode func(raw string, dst interface{}) bool
	encode func(src interface{}) string
}

var codecs = map[Kind]codec{
	KindID: {
		decode: func(raw string, dst interface{}) bool {
			*dst.(*string) = strings.TrimSpace(raw)
			return true
		},
		encode: encodeString,
	},
	KindString: {
		decode: func(raw string, dst interface{}) bool {
			*dst.(*string) = raw
			return true
		},
		encode: encodeString,
	},
	KindMoney: {
		decode: func(raw string, dst interface{}) bool {
			s := moneyNoise.Replace(strings.TrimSpace(raw))
			if blank(s) {
				*dst.(*decimal.Decimal) = decimal.Zero
				return true
			}
			d, err := decimal.NewFromString(s)
			if err != nil || d.IsNegative() {
				return false
			}
			*dst.(*decimal.Decimal) = d
			return true
		},
		encode: func(src interface{}) string { return src.(*decimal.Decimal).String() },
	},
	KindExpiry: {
		decode: func(raw string, dst interface{}) bool {
			e, ok := parseExpiry(raw)
			if ok {
				*dst.(*models.Expiry) = e
			}
			return ok
		},
		encode: func(src interface{}) string { return src.(*models.Expiry).String() },
	},
	KindMonth: {
		decode: func(raw string, dst interface{}) bool {
			m := models.ParseMonth(raw)
			if m == 0 && strings.TrimSpace(raw) != "" {
				return false
			}
			*dst.(*time.Month) = m
			return true
		},
		encode: func(src interface{}) string { return models.MonthName(*src.(*time.Month)) },
	},
	KindDate: {
		decode: func(raw string, dst interface{}) bool {
			s := strings.TrimSpace(raw)
			if blank(s) {
				*dst.(**time.Time) = nil
				return true
			}
			t, ok := ParseDate(s)
			if ok {
				*dst.(**time.Time) = t
			}
			return ok
		},
		encode: func(src interface{}) string {
			t := *src.(**time.Time)
			if t == nil {
				return ""
			}
			return t.Format(DateLayout)
		},
	},
	KindInt: {
		decode: func(raw string, dst interface{}) bool {
			n, ok := parseWhole(raw)
			if !ok || n < 1 {
				return false
			}
			*dst.(*int) = n
			return true
		},
		encode: encodeInt,
	},
	KindTags: {
		decode: func(raw string, dst interface{}) bool {
			if blank(strings.TrimSpace(raw)) {
				*dst.(*[]string) = []string{}
				return true
			}
			*dst.(*[]string) = models.NormalizeTags(strings.Split(raw, ","))
			return true
		},
		encode: func(src interface{}) string {
			return strings.Join(models.NormalizeTags(*src.(*[]string)), ",")
		},
	},
	KindBonusStatus: {
		decode: func(raw string, dst interface{}) bool {
			if strings.TrimSpace(raw) == "" {
				*dst.(*models.BonusStatus) = models.BonusNotStarted
				return true
			}
			s, ok := models.ParseBonusStatus(raw)
			if ok {
				*dst.(*models.BonusStatus) = s
			}
			return ok
		},
		encode: func(src interface{}) string { return string(*src.(*models.BonusStatus)) },
	},
	KindLast4: {
		decode: func(raw string, dst interface{}) bool {
			s := strings.TrimSpace(raw)
			if blank(s) {
				*dst.(*string) = ""
				return true
			}
			// Numeric round trips through spreadsheets turn 0123 into 123.0.
			s = strings.TrimSuffix(s, ".0")
			if !last4Digits.MatchString(s) {
				return false
			}
			*dst.(*string) = strings.Repeat("0", 4-len(s)) + s
			return true
		},
		encode: encodeString,
	},
	KindCount: {
		decode: func(raw string, dst interface{}) bool {
			if strings.TrimSpace(raw) == "" {
				*dst.(*int) = 0
				return true
			}
			n, ok := parseWhole(raw)
			if !ok || n < 0 {
				return false
			}
			*dst.(*int) = n
			return true
		},
		encode: encodeInt,
	},
	KindFeeAction: {
		decode: func(raw string, dst interface{}) bool {
			a, ok := models.ParseFeeAction(raw)
			if ok {
				*dst.(*models.FeeAction) = a
			}
			return ok
		},
		encode: func(src interface{}) string { return string(*src.(*models.FeeAction)) },
	},
}

func encodeString(src interface{}) string { return *src.(*string) }

func encodeInt(src interface{}) string { return strconv.Itoa(*src.(*int)) }

// blank reports an empty cell or one of the null tokens spreadsheet and
// dataframe tools leave behind.
func blank(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "nat", "none", "null":
		return true
	}
	return false
}

// ParseDate accepts the stored layout plus the timestamp forms older files
// carry, and truncates to the calendar date.
func ParseDate(raw string) (*time.Time, bool) {
	s := strings.TrimSpace(raw)
	if blank(s) {
		return nil, false
	}
	for _, layout := range readDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.DatePtr(t), true
		}
	}
	return nil, false
}

// parseExpiry accepts "MM/YY", a loose "M/YYYY", or the full date the first
// revision stored. Blank means unset.
func parseExpiry(raw string) (models.Expiry, bool) {
	s := strings.TrimSpace(raw)
	if blank(s) {
		return models.Expiry{}, true
	}
	if e, err := models.ParseExpiry(s); err == nil {
		return e, true
	}
	if m := looseExpiry.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return models.Expiry{Month: time.Month(month), Year: year % 100}, true
		}
	}
	if t, ok := ParseDate(s); ok {
		return models.Expiry{Month: t.Month(), Year: t.Year() % 100}, true
	}
	return models.Expiry{}, false
}

// parseWhole accepts "3" as well as the "3.0" that spreadsheet tools write.
func parseWhole(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int(f), true
}
