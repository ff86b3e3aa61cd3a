// AngelaMos | 2026
// entity.go

package user

import (
	"github.com/carterperez-dev/asset-portal/internal/core"
)

type User struct {
	ID           int64  `db:"id"`
	Email        string `db:"email_id"`
	Name         string `db:"employee_name"`
	EmployeeID   string `db:"employee_id"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
}

func (u *User) Identity() core.Identity {
	return core.Identity{
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		EmployeeID: u.EmployeeID,
		Role:       u.Role,
	}
}

const RoleUser = "user"
