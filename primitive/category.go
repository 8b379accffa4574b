package primitive

import (
	"fmt"
	"strings"
)

type CategoryEnum int

const (
	CategoryTextualBool CategoryEnum = 1 << iota // string <-> bool: yes, no, on, off, true, false
	CategoryNumericBool                          // string <-> bool: 1, 0
	CategoryDatetime                             // string <-> time.Time: RFC 3339, calendar dates and RFC 822 dates
	CategoryTimestamp                            // string(Unix seconds) <-> time.Time
	CategoryDuration                             // string(2h45m) <-> time.Duration
	CategoryNanoseconds                          // string(integer nanoseconds) <-> time.Duration
	CategorySeconds                              // string(floating-point seconds) <-> time.Duration

	CategoryAll  CategoryEnum = (1 << iota) - 1 // all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected
)

var categoryNames = []struct {
	category CategoryEnum
	name     string
}{
	{CategoryTextualBool, "textual_bool"},
	{CategoryNumericBool, "numeric_bool"},
	{CategoryDatetime, "datetime"},
	{CategoryTimestamp, "timestamp"},
	{CategoryDuration, "duration"},
	{CategoryNanoseconds, "nanoseconds"},
	{CategorySeconds, "seconds"},
}

// Has reports whether every category of other is selected in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}

func (c CategoryEnum) String() string {
	if c == CategoryNone {
		return "none"
	}

	var parts []string

	for _, cn := range categoryNames {
		if c&cn.category != 0 {
			parts = append(parts, cn.name)
		}
	}

	if rest := c &^ CategoryAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("CategoryEnum(%d)", int(rest)))
	}

	return strings.Join(parts, "|")
}

// ParseCategories combines categories given by name. "all" selects every category.
func ParseCategories(names []string) (CategoryEnum, error) {
	var (
		c       CategoryEnum
		unknown []string
	)

next:
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "all" {
			c |= CategoryAll
			continue
		}

		for _, cn := range categoryNames {
			if cn.name == name {
				c |= cn.category
				continue next
			}
		}

		unknown = append(unknown, name)
	}

	if len(unknown) > 0 {
		return CategoryNone, fmt.Errorf("unknown converter categories: %s", strings.Join(unknown, ", "))
	}

	return c, nil
}
