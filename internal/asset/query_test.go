// AngelaMos | 2026
// query_test.go

package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearch(t *testing.T) {
	tests := []struct {
		name     string
		criteria SearchCriteria
		where    string
		args     []any
	}{
		{
			name:  "no criteria matches all active",
			where: "remove_date IS NULL",
		},
		{
			name:     "name only",
			criteria: SearchCriteria{EmployeeName: " jan "},
			where:    "remove_date IS NULL AND employee_name ILIKE $1",
			args:     []any{"%jan%"},
		},
		{
			name: "all three in order",
			criteria: SearchCriteria{
				EmployeeName: "jan",
				EmployeeID:   "E1",
				Location:     "Pune",
			},
			where: "remove_date IS NULL AND employee_name ILIKE $1 AND employee_id ILIKE $2 AND location ILIKE $3",
			args:  []any{"%jan%", "%E1%", "%Pune%"},
		},
		{
			name:     "blank criterion skipped",
			criteria: SearchCriteria{EmployeeID: "  ", Location: "floor"},
			where:    "remove_date IS NULL AND location ILIKE $1",
			args:     []any{"%floor%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildSearch(tt.criteria)
			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\temp`, escapeLike(`c:\temp`))
}

func TestSearchCriteriaIsEmpty(t *testing.T) {
	assert.True(t, SearchCriteria{}.IsEmpty())
	assert.True(t, SearchCriteria{EmployeeName: "   "}.IsEmpty())
	assert.False(t, SearchCriteria{Location: "x"}.IsEmpty())
}
