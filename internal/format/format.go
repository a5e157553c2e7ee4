package format

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer    = message.NewPrinter(language.English)
	titleCaser = cases.Title(language.English)
)

// Currency formats a euro amount with thousands grouping and no decimal
// places, rounding to the nearest integer: 1234.6 → "€1,235".
func Currency(v float64) string {
	return printer.Sprintf("€%d", int64(math.Round(v)))
}

// Percent formats a ratio already expressed in percent points: 7.25 → "7.3%".
func Percent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}

// Area formats a size in square meters.
func Area(v float64) string {
	return printer.Sprintf("%.0f m²", v)
}

// Label converts an underscore-delimited token into a title-cased
// phrase: "living_room" → "Living Room". Shared by room-type and
// cost-category labels.
func Label(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	return titleCaser.String(strings.Join(words, " "))
}

// Tier is the display treatment of a 0–4 condition rating.
type Tier struct {
	Label string
	Color string
}

// ConditionTier maps a condition rating onto a display tier. A nil or
// zero rating means the rating does not apply to the room, which is
// distinct from a merely low rating. Fair and Poor share the low color.
func ConditionTier(v *float64) Tier {
	switch {
	case v == nil || *v == 0:
		return Tier{Label: "N/A", Color: "gray"}
	case *v >= 3.5:
		return Tier{Label: "Excellent", Color: "green"}
	case *v >= 2.5:
		return Tier{Label: "Good", Color: "yellow"}
	case *v >= 1.5:
		return Tier{Label: "Fair", Color: "red"}
	default:
		return Tier{Label: "Poor", Color: "red"}
	}
}
