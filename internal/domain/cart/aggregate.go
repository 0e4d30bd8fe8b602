package cart

import (
	"fmt"
	"strings"
)

// Line is one composition edge of a recipe in the cart.
type Line struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// Item is a consolidated shopping list entry.
type Item struct {
	Name            string
	MeasurementUnit string
	Total           int
}

func (i Item) String() string {
	return fmt.Sprintf("%s - %d, %s", i.Name, i.Total, i.MeasurementUnit)
}

// Aggregate groups lines by ingredient name, summing amounts. The unit of the
// first line seen for a name is kept; items appear in first-seen order.
func Aggregate(lines []Line) []Item {
	index := make(map[string]int, len(lines))
	items := make([]Item, 0, len(lines))

	for _, l := range lines {
		if pos, ok := index[l.Name]; ok {
			items[pos].Total += l.Amount
			continue
		}
		index[l.Name] = len(items)
		items = append(items, Item{Name: l.Name, MeasurementUnit: l.MeasurementUnit, Total: l.Amount})
	}
	return items
}

// Format renders items as newline separated text without a trailing newline.
func Format(items []Item) string {
	rendered := make([]string, len(items))
	for i, item := range items {
		rendered[i] = item.String()
	}
	return strings.Join(rendered, "\n")
}
