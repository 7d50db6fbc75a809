package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)

// Expiry is a card expiry stored as "MM/YY". The zero value means unset.
type Expiry struct {
	Month time.Month
	Year  int // two digits
}

// ParseExpiry parses a strict "MM/YY" token.
func ParseExpiry(s string) (Expiry, error) {
	m := expiryPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Expiry{}, fmt.Errorf("expiry %q is not MM/YY", s)
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	return Expiry{Month: time.Month(month), Year: year}, nil
}

// ValidExpiry reports whether s is a well-formed "MM/YY" token.
func ValidExpiry(s string) bool {
	return expiryPattern.MatchString(strings.TrimSpace(s))
}

// IsZero reports whether the expiry is unset.
func (e Expiry) IsZero() bool { return e.Month == 0 }

func (e Expiry) String() string {
	if e.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d", int(e.Month), e.Year)
}
