// AngelaMos | 2026
// repository.go

package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/asset-portal/internal/core"
)

type Repository interface {
	Insert(ctx context.Context, a *Asset) error
	Update(
		ctx context.Context,
		employeeID string,
		fields Fields,
		updatedBy string,
		updateDate core.Date,
	) (*Asset, error)
	SoftDelete(
		ctx context.Context,
		employeeID string,
		removeDate core.Date,
	) (*Asset, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*Asset, error)
	ListActive(ctx context.Context) ([]Asset, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]Asset, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Insert relies on the employee_id unique constraint; a clash surfaces as
// core.ErrDuplicateKey whether the existing row is active or removed.
func (r *repository) Insert(ctx context.Context, a *Asset) error {
	query := `
		INSERT INTO assets (
			employee_name, employee_id, email_id, location, hostname,
			processor, ram, hd_size, mouse, adaptor, headset, monitor,
			it_others, software_licenses, asset_entry_date, entered_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`

	err := r.db.GetContext(ctx, &a.ID, query,
		a.EmployeeName,
		a.EmployeeID,
		a.Email,
		a.Location,
		a.Hostname,
		a.Processor,
		a.RAM,
		a.HDSize,
		a.Mouse,
		a.Adaptor,
		a.Headset,
		a.Monitor,
		a.ITOthers,
		a.SoftwareLicenses,
		a.EntryDate,
		a.EnteredBy,
	)
	if err != nil {
		return fmt.Errorf("insert asset: %w", core.TranslateDBError(err))
	}

	return nil
}

// Update rewrites the descriptive columns in one statement. employee_id,
// asset_entry_date, entered_by and remove_date are left alone.
func (r *repository) Update(
	ctx context.Context,
	employeeID string,
	f Fields,
	updatedBy string,
	updateDate core.Date,
) (*Asset, error) {
	query := `
		UPDATE assets
		SET employee_name = $2, email_id = $3, location = $4, hostname = $5,
		    processor = $6, ram = $7, hd_size = $8, mouse = $9, adaptor = $10,
		    headset = $11, monitor = $12, it_others = $13,
		    software_licenses = $14, updated_by = $15, update_date = $16
		WHERE employee_id = $1
		RETURNING ` + Columns

	var a Asset
	err := r.db.GetContext(ctx, &a, query,
		employeeID,
		f.EmployeeName,
		f.Email,
		f.Location,
		f.Hostname,
		f.Processor,
		f.RAM,
		f.HDSize,
		f.Mouse,
		f.Adaptor,
		f.Headset,
		f.Monitor,
		f.ITOthers,
		f.SoftwareLicenses,
		updatedBy,
		updateDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update asset: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update asset: %w", core.TranslateDBError(err))
	}

	return &a, nil
}

func (r *repository) SoftDelete(
	ctx context.Context,
	employeeID string,
	removeDate core.Date,
) (*Asset, error) {
	query := `
		UPDATE assets
		SET remove_date = $2
		WHERE employee_id = $1
		RETURNING ` + Columns

	var a Asset
	err := r.db.GetContext(ctx, &a, query, employeeID, removeDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("remove asset: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("remove asset: %w", core.TranslateDBError(err))
	}

	return &a, nil
}

func (r *repository) GetByEmployeeID(
	ctx context.Context,
	employeeID string,
) (*Asset, error) {
	query := `SELECT ` + Columns + ` FROM assets WHERE employee_id = $1`

	var a Asset
	err := r.db.GetContext(ctx, &a, query, employeeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get asset: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", core.TranslateDBError(err))
	}

	return &a, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Asset, error) {
	query := `SELECT ` + Columns + ` FROM assets WHERE ` + ActivePredicate + ` ORDER BY id`

	assets := []Asset{}
	if err := r.db.SelectContext(ctx, &assets, query); err != nil {
		return nil, fmt.Errorf("list active assets: %w", core.TranslateDBError(err))
	}

	return assets, nil
}

func (r *repository) Search(
	ctx context.Context,
	criteria SearchCriteria,
) ([]Asset, error) {
	where, args := buildSearch(criteria)
	query := fmt.Sprintf(
		"SELECT %s FROM assets WHERE %s ORDER BY id",
		Columns,
		where,
	)

	assets := []Asset{}
	if err := r.db.SelectContext(ctx, &assets, query, args...); err != nil {
		return nil, fmt.Errorf("search assets: %w", core.TranslateDBError(err))
	}

	return assets, nil
}
