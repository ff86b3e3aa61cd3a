// AngelaMos | 2026
// query.go

package asset

import (
	"fmt"
	"strings"
)

// SearchCriteria holds the optional substring filters of an asset lookup.
// Blank criteria are unconstrained.
type SearchCriteria struct {
	EmployeeName string
	EmployeeID   string
	Location     string
}

func (c SearchCriteria) normalized() SearchCriteria {
	return SearchCriteria{
		EmployeeName: strings.TrimSpace(c.EmployeeName),
		EmployeeID:   strings.TrimSpace(c.EmployeeID),
		Location:     strings.TrimSpace(c.Location),
	}
}

func (c SearchCriteria) IsEmpty() bool {
	n := c.normalized()
	return n.EmployeeName == "" && n.EmployeeID == "" && n.Location == ""
}

// buildSearch returns a WHERE clause and its arguments. Only active assets
// match, and each criterion is a case-insensitive substring test.
func buildSearch(c SearchCriteria) (string, []any) {
	c = c.normalized()

	conditions := []string{ActivePredicate}
	var args []any
	argIdx := 1

	for _, f := range []struct {
		column string
		value  string
	}{
		{"employee_name", c.EmployeeName},
		{"employee_id", c.EmployeeID},
		{"location", c.Location},
	} {
		if f.value == "" {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", f.column, argIdx))
		args = append(args, "%"+escapeLike(f.value)+"%")
		argIdx++
	}

	return strings.Join(conditions, " AND "), args
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
