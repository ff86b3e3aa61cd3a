// AngelaMos | 2026
// entity.go

package asset

import (
	"github.com/carterperez-dev/asset-portal/internal/core"
)

// Asset is one row of the ledger. A non-zero RemoveDate marks the asset as
// decommissioned; the row itself is never deleted.
type Asset struct {
	ID               int64     `db:"id"`
	EmployeeName     string    `db:"employee_name"`
	EmployeeID       string    `db:"employee_id"`
	Email            string    `db:"email_id"`
	Location         string    `db:"location"`
	Hostname         string    `db:"hostname"`
	Processor        string    `db:"processor"`
	RAM              string    `db:"ram"`
	HDSize           string    `db:"hd_size"`
	Mouse            string    `db:"mouse"`
	Adaptor          string    `db:"adaptor"`
	Headset          string    `db:"headset"`
	Monitor          string    `db:"monitor"`
	ITOthers         string    `db:"it_others"`
	SoftwareLicenses string    `db:"software_licenses"`
	EntryDate        core.Date `db:"asset_entry_date"`
	EnteredBy        string    `db:"entered_by"`
	UpdatedBy        string    `db:"updated_by"`
	UpdateDate       core.Date `db:"update_date"`
	RemoveDate       core.Date `db:"remove_date"`
}

func (a *Asset) IsActive() bool {
	return a.RemoveDate.IsZero()
}

// Columns selects every asset attribute in ledger order. Nullable audit
// names come back as empty strings.
const Columns = `id, employee_name, employee_id, email_id, location, hostname,
	processor, ram, hd_size, mouse, adaptor, headset, monitor, it_others,
	software_licenses, asset_entry_date,
	COALESCE(entered_by, '') AS entered_by,
	COALESCE(updated_by, '') AS updated_by,
	update_date, remove_date`

// ActivePredicate matches assets that have not been removed.
const ActivePredicate = `remove_date IS NULL`
