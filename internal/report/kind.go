// AngelaMos | 2026
// kind.go

package report

import (
	"fmt"

	"github.com/carterperez-dev/asset-portal/internal/asset"
	"github.com/carterperez-dev/asset-portal/internal/core"
)

type Kind int

const (
	AllAssets Kind = iota
	ActiveAssets
	AddedThisMonth
	UpdatedThisMonth
	RemovedThisMonth
)

var kindSlugs = map[Kind]string{
	AllAssets:        "all",
	ActiveAssets:     "active",
	AddedThisMonth:   "added-this-month",
	UpdatedThisMonth: "updated-this-month",
	RemovedThisMonth: "removed-this-month",
}

var kindTitles = map[Kind]string{
	AllAssets:        "All Assets",
	ActiveAssets:     "Active Assets",
	AddedThisMonth:   "Assets Added This Month",
	UpdatedThisMonth: "Assets Updated This Month",
	RemovedThisMonth: "Assets Removed This Month",
}

func ParseKind(s string) (Kind, error) {
	for k, slug := range kindSlugs {
		if slug == s {
			return k, nil
		}
	}
	return 0, core.NewValidationError("kind", fmt.Sprintf("unknown report kind %q", s))
}

func (k Kind) String() string {
	if slug, ok := kindSlugs[k]; ok {
		return slug
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) Title() string {
	return kindTitles[k]
}

// dateColumn is the column a monthly kind is windowed over.
func (k Kind) dateColumn() string {
	switch k {
	case AddedThisMonth:
		return "asset_entry_date"
	case UpdatedThisMonth:
		return "update_date"
	case RemovedThisMonth:
		return "remove_date"
	}
	return ""
}

func (k Kind) monthly() bool {
	return k.dateColumn() != ""
}

// predicate returns the WHERE clause selecting this kind's rows and the
// arguments it binds.
func (k Kind) predicate(w Window) (string, []any) {
	switch {
	case k == ActiveAssets:
		return asset.ActivePredicate, nil
	case k.monthly():
		return windowPredicate(k.dateColumn()), []any{w.Start, w.End}
	}
	return "TRUE", nil
}

// Window is the half-open month [Start, End).
type Window struct {
	Start core.Date
	End   core.Date
}

func MonthWindow(today core.Date) Window {
	start := today.FirstOfMonth()
	return Window{Start: start, End: start.AddMonths(1)}
}

func (w Window) Contains(d core.Date) bool {
	if d.IsZero() {
		return false
	}
	return !d.Before(w.Start) && d.Before(w.End)
}

// windowPredicate compares stored text dates as real dates. Empty strings
// count as missing so they never fall inside a window.
func windowPredicate(column string) string {
	expr := fmt.Sprintf("TO_DATE(NULLIF(%s, ''), 'YYYY-MM-DD')", column)
	return fmt.Sprintf("%s >= $1::date AND %s < $2::date", expr, expr)
}
