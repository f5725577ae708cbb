package domain

import (
	"fmt"
	"strings"
)

// FundCategory identifies the fund type an account is invested in.
type FundCategory int

const (
	// Equity is the default category (Aktienfonds).
	Equity FundCategory = iota
	// Mixed is a balanced fund (Mischfonds).
	Mixed
	// Bond is a fixed income fund (Rentenfonds).
	Bond
)

var fundCategoryNames = map[FundCategory]string{
	Equity: "equity",
	Mixed:  "mixed",
	Bond:   "bond",
}

var fundCategoryAliases = map[string]FundCategory{
	"equity":      Equity,
	"aktienfonds": Equity,
	"mixed":       Mixed,
	"mischfonds":  Mixed,
	"bond":        Bond,
	"rentenfonds": Bond,
}

// String returns the canonical lowercase name.
func (c FundCategory) String() string {
	if name, ok := fundCategoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("FundCategory(%d)", int(c))
}

// GermanName returns the label used in bundles and reports.
func (c FundCategory) GermanName() string {
	switch c {
	case Mixed:
		return "Mischfonds"
	case Bond:
		return "Rentenfonds"
	default:
		return "Aktienfonds"
	}
}

// ParseFundCategory accepts english and german names, case-insensitive.
func ParseFundCategory(s string) (FundCategory, error) {
	if c, ok := fundCategoryAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return Equity, fmt.Errorf("unknown fund category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c FundCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *FundCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseFundCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
