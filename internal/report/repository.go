// AngelaMos | 2026
// repository.go

package report

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/asset-portal/internal/asset"
	"github.com/carterperez-dev/asset-portal/internal/core"
)

type Repository interface {
	Count(ctx context.Context, kind Kind, window Window) (int, error)
	Rows(ctx context.Context, kind Kind, window Window) ([]asset.Asset, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Count(
	ctx context.Context,
	kind Kind,
	window Window,
) (int, error) {
	where, args := kind.predicate(window)
	query := "SELECT COUNT(*) FROM assets WHERE " + where

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, core.TranslateDBError(err))
	}

	return total, nil
}

func (r *repository) Rows(
	ctx context.Context,
	kind Kind,
	window Window,
) ([]asset.Asset, error) {
	where, args := kind.predicate(window)
	query := fmt.Sprintf(
		"SELECT %s FROM assets WHERE %s ORDER BY id",
		asset.Columns,
		where,
	)

	rows := []asset.Asset{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", kind, core.TranslateDBError(err))
	}

	return rows, nil
}
