package actions

import (
	"fmt"
	"strings"

	"github.com/delivio/actionserver/commerce"
)

// productLine renders one numbered catalog line:
// "3. Milk 1L ($2.50) [10% off | 7 available]".
func productLine(idx int, p commerce.Record) string {
	line := fmt.Sprintf("%d. %s (%s)", idx, p.Title(), p.DisplayPrice())

	var extras []string
	if discount, ok := p.Discount(); ok {
		extras = append(extras, fmt.Sprintf("%g%% off", discount))
	}
	if available, ok := p.Available(); ok {
		extras = append(extras, fmt.Sprintf("%d available", available))
	}
	if len(extras) > 0 {
		line += " [" + strings.Join(extras, " | ") + "]"
	}
	return line
}

// shorten truncates text to max runes with an ellipsis.
func shorten(text string, max int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
