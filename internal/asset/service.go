// AngelaMos | 2026
// service.go

package asset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/asset-portal/internal/core"
)

// Service owns the ledger rules: validation before any write, audit
// stamping from an explicit actor, and soft removal.
type Service struct {
	repo      Repository
	validator *validator.Validate
	now       func() time.Time
}

func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      repo,
		validator: core.NewValidator(),
		now:       now,
	}
}

func (s *Service) Add(
	ctx context.Context,
	actor core.Identity,
	req CreateAssetRequest,
) (*Asset, error) {
	enteredBy, err := actor.Actor()
	if err != nil {
		return nil, fmt.Errorf("add asset: %w", err)
	}

	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.EntryDate = strings.TrimSpace(req.EntryDate)
	req.trim()

	if err := s.validate(req); err != nil {
		return nil, fmt.Errorf("add asset: %w", err)
	}

	entryDate, err := core.ParseDate(req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf(
			"add asset: %w",
			core.NewValidationError("asset_entry_date", "must be a valid date in YYYY-MM-DD format"),
		)
	}

	a := newAsset(req, entryDate, enteredBy)
	if err := s.repo.Insert(ctx, a); err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("add asset: %w", err)
	}

	slog.InfoContext(ctx, "asset added",
		"employee_id", a.EmployeeID,
		"entered_by", enteredBy,
	)
	core.AddSpanEvent(ctx, "asset.added",
		attribute.String("employee_id", a.EmployeeID),
		attribute.String("actor", enteredBy),
	)

	return a, nil
}

// Update rewrites the descriptive fields of an asset in any state. A removed
// asset stays removed.
func (s *Service) Update(
	ctx context.Context,
	actor core.Identity,
	employeeID string,
	fields Fields,
) (*Asset, error) {
	updatedBy, err := actor.Actor()
	if err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}

	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf(
			"update asset: %w",
			core.NewValidationError("employee_id", "is required"),
		)
	}

	fields.trim()
	if err := s.validate(fields); err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}

	a, err := s.repo.Update(ctx, employeeID, fields, updatedBy, core.Today(s.now))
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("update asset: %w", err)
	}

	slog.InfoContext(ctx, "asset updated",
		"employee_id", employeeID,
		"updated_by", updatedBy,
		"active", a.IsActive(),
	)
	core.AddSpanEvent(ctx, "asset.updated",
		attribute.String("employee_id", employeeID),
		attribute.String("actor", updatedBy),
	)

	return a, nil
}

// Remove stamps today's date as the remove date. Removing twice moves the
// date forward and is not an error.
func (s *Service) Remove(
	ctx context.Context,
	actor core.Identity,
	employeeID string,
) (*Asset, error) {
	removedBy, err := actor.Actor()
	if err != nil {
		return nil, fmt.Errorf("remove asset: %w", err)
	}

	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf(
			"remove asset: %w",
			core.NewValidationError("employee_id", "is required"),
		)
	}

	a, err := s.repo.SoftDelete(ctx, employeeID, core.Today(s.now))
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("remove asset: %w", err)
	}

	slog.InfoContext(ctx, "asset removed",
		"employee_id", employeeID,
		"removed_by", removedBy,
		"remove_date", a.RemoveDate.String(),
	)
	core.AddSpanEvent(ctx, "asset.removed",
		attribute.String("employee_id", employeeID),
		attribute.String("actor", removedBy),
	)

	return a, nil
}

func (s *Service) Get(ctx context.Context, employeeID string) (*Asset, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, core.NewValidationError("employee_id", "is required")
	}
	return s.repo.GetByEmployeeID(ctx, employeeID)
}

func (s *Service) ListActive(ctx context.Context) ([]Asset, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Search(
	ctx context.Context,
	criteria SearchCriteria,
) ([]Asset, error) {
	return s.repo.Search(ctx, criteria.normalized())
}

func (s *Service) validate(v any) error {
	if err := s.validator.Struct(v); err != nil {
		return core.NewValidationError("", core.FormatValidationError(err))
	}
	return nil
}

func newAsset(req CreateAssetRequest, entryDate core.Date, enteredBy string) *Asset {
	return &Asset{
		EmployeeName:     req.EmployeeName,
		EmployeeID:       req.EmployeeID,
		Email:            req.Email,
		Location:         req.Location,
		Hostname:         req.Hostname,
		Processor:        req.Processor,
		RAM:              req.RAM,
		HDSize:           req.HDSize,
		Mouse:            req.Mouse,
		Adaptor:          req.Adaptor,
		Headset:          req.Headset,
		Monitor:          req.Monitor,
		ITOthers:         req.ITOthers,
		SoftwareLicenses: req.SoftwareLicenses,
		EntryDate:        entryDate,
		EnteredBy:        enteredBy,
	}
}
