// Package shoppinglist aggregates the ingredient lines of every recipe
// in a user's shopping cart into a rendered plain-text report.
package shoppinglist

import (
	"fmt"
	"sort"
	"strings"
)

// Filename is the suggested download name for the rendered report.
const Filename = "shopping_list.txt"

// Line is a single recipe-ingredient row. Amount is positive by schema
// constraint.
type Line struct {
	Name   string
	Unit   string
	Amount int32
}

// Total is the summed amount for one (name, unit) group.
type Total struct {
	Name   string
	Unit   string
	Amount int64
}

type groupKey struct {
	name string
	unit string
}

// Aggregate merges lines that share an exact (name, unit) pair, summing
// their amounts. Names and units are compared byte-for-byte: "g" and
// "gram" stay separate groups, as do differing cases. The result is
// ordered by name ascending (ties broken by unit) so identical cart
// contents always render identically regardless of insertion order.
func Aggregate(lines []Line) []Total {
	totals := make(map[groupKey]int64, len(lines))
	for _, l := range lines {
		totals[groupKey{name: l.Name, unit: l.Unit}] += int64(l.Amount)
	}

	out := make([]Total, 0, len(totals))
	for k, amount := range totals {
		out = append(out, Total{Name: k.name, Unit: k.unit, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Unit < out[j].Unit
	})
	return out
}

// Render formats totals one per line as "{name} ({unit}) - {total}",
// joined with newlines and no trailing newline. An empty aggregate
// renders as the empty string.
func Render(totals []Total) string {
	lines := make([]string, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, fmt.Sprintf("%s (%s) - %d", t.Name, t.Unit, t.Amount))
	}
	return strings.Join(lines, "\n")
}
