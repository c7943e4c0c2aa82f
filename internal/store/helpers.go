// Package store implements sqlite-backed repositories for catalogue,
// customer, needs, recommendation, report and market data records. Money
// columns are stored as exact decimal strings.
package store

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// dec parses a stored decimal string; malformed values read as zero rather
// than failing the whole row.
func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func marshalStrings(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalStrings(s string) []string {
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return []string{}
	}
	return items
}

func marshalInts(items []int) string {
	if items == nil {
		items = []int{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalInts(s string) []int {
	var items []int
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil
	}
	return items
}
