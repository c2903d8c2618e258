package shopping

import (
	"fmt"
	"strings"
)

// ListHeader opens every rendered shopping list, items or not.
const ListHeader = "Ваш список покупок:\n\n"

// IngredientLine is one raw (recipe, ingredient, amount) row pulled from
// the recipes in a user's cart.
type IngredientLine struct {
	Name   string
	Unit   string
	Amount int
}

// LineItem is an aggregated shopping-list entry: the summed amount of
// one (name, unit) group.
type LineItem struct {
	Name   string `json:"name"`
	Unit   string `json:"measurement_unit"`
	Amount int    `json:"amount"`
}

// Aggregate merges ingredient lines by (name, unit), summing amounts.
// Output order is the order each group was first encountered, so the
// result is deterministic for a given input order.
func Aggregate(lines []IngredientLine) []LineItem {
	type key struct{ name, unit string }

	index := make(map[key]int, len(lines))
	items := make([]LineItem, 0, len(lines))
	for _, line := range lines {
		k := key{line.Name, line.Unit}
		if i, ok := index[k]; ok {
			items[i].Amount += line.Amount
			continue
		}
		index[k] = len(items)
		items = append(items, LineItem{Name: line.Name, Unit: line.Unit, Amount: line.Amount})
	}
	return items
}

// Render formats aggregated items as the plain-text attachment body:
// the fixed header followed by one "<name>, <unit> -- <amount>" line per
// item. An empty list renders as the header alone.
func Render(items []LineItem) string {
	var b strings.Builder
	b.WriteString(ListHeader)
	for _, item := range items {
		fmt.Fprintf(&b, "%s, %s -- %d\n", item.Name, item.Unit, item.Amount)
	}
	return b.String()
}
