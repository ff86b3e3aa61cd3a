// AngelaMos | 2026
// service.go

package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/asset-portal/internal/asset"
	"github.com/carterperez-dev/asset-portal/internal/core"
)

// Header is the column row of every export, in asset attribute order.
var Header = []string{
	"ID",
	"Employee Name",
	"Employee ID",
	"Email ID",
	"Location",
	"Hostname",
	"Processor",
	"RAM",
	"HDD Size",
	"Mouse",
	"Adaptor",
	"Headset",
	"Monitor",
	"IT Others",
	"Software Licenses",
	"Asset Entry Date",
	"Asset Entered By",
	"Asset Updated By",
	"Asset Updated Date",
	"Asset Remove Date",
}

type Report struct {
	Kind        Kind
	GeneratedAt time.Time
	Window      Window
	Header      []string
	Rows        [][]string
}

type Dashboard struct {
	Active           int `json:"active"`
	AddedThisMonth   int `json:"added_this_month"`
	UpdatedThisMonth int `json:"updated_this_month"`
	RemovedThisMonth int `json:"removed_this_month"`
}

type Service struct {
	repo     Repository
	archiver Archiver
	now      func() time.Time
}

// NewService wires the metrics engine. archiver may be nil when archiving is
// disabled.
func NewService(
	repo Repository,
	archiver Archiver,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, archiver: archiver, now: now}
}

func (s *Service) window() Window {
	return MonthWindow(core.Today(s.now))
}

func (s *Service) CountActive(ctx context.Context) (int, error) {
	return s.repo.Count(ctx, ActiveAssets, s.window())
}

func (s *Service) CountAddedThisMonth(ctx context.Context) (int, error) {
	return s.repo.Count(ctx, AddedThisMonth, s.window())
}

func (s *Service) CountUpdatedThisMonth(ctx context.Context) (int, error) {
	return s.repo.Count(ctx, UpdatedThisMonth, s.window())
}

func (s *Service) CountRemovedThisMonth(ctx context.Context) (int, error) {
	return s.repo.Count(ctx, RemovedThisMonth, s.window())
}

// Dashboard evaluates the four tile counters against a single month window.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	w := s.window()

	var d Dashboard
	for _, c := range []struct {
		kind Kind
		dst  *int
	}{
		{ActiveAssets, &d.Active},
		{AddedThisMonth, &d.AddedThisMonth},
		{UpdatedThisMonth, &d.UpdatedThisMonth},
		{RemovedThisMonth, &d.RemovedThisMonth},
	} {
		n, err := s.repo.Count(ctx, c.kind, w)
		if err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
		*c.dst = n
	}

	return &d, nil
}

// Totals splits the whole ledger into live and soft-deleted records.
type Totals struct {
	All     int `json:"all"`
	Active  int `json:"active"`
	Removed int `json:"removed"`
}

func (s *Service) Totals(ctx context.Context) (*Totals, error) {
	w := s.window()

	active, err := s.repo.Count(ctx, ActiveAssets, w)
	if err != nil {
		return nil, fmt.Errorf("ledger totals: %w", err)
	}

	all, err := s.repo.Count(ctx, AllAssets, w)
	if err != nil {
		return nil, fmt.Errorf("ledger totals: %w", err)
	}

	return &Totals{All: all, Active: active, Removed: max(all-active, 0)}, nil
}

func (s *Service) BuildReport(ctx context.Context, kind Kind) (*Report, error) {
	if _, ok := kindSlugs[kind]; !ok {
		return nil, core.NewValidationError("kind", "unknown report kind")
	}

	now := s.now()
	w := MonthWindow(core.DateOf(now))

	assets, err := s.repo.Rows(ctx, kind, w)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	rows := make([][]string, 0, len(assets))
	for i := range assets {
		rows = append(rows, Row(&assets[i]))
	}

	return &Report{
		Kind:        kind,
		GeneratedAt: now,
		Window:      w,
		Header:      Header,
		Rows:        rows,
	}, nil
}

// Archive renders a report in the given format and uploads it, returning the
// object key.
func (s *Service) Archive(
	ctx context.Context,
	actor core.Identity,
	kind Kind,
	format Format,
) (string, error) {
	if s.archiver == nil {
		return "", fmt.Errorf("archive report: %w", ErrArchiveDisabled)
	}

	requestedBy, err := actor.Actor()
	if err != nil {
		return "", fmt.Errorf("archive report: %w", err)
	}

	enc, err := EncoderFor(format)
	if err != nil {
		return "", fmt.Errorf("archive report: %w", err)
	}

	rep, err := s.BuildReport(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("archive report: %w", err)
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, rep); err != nil {
		return "", fmt.Errorf("archive report: encode: %w", err)
	}

	key := ArchiveKey(kind, rep.GeneratedAt, enc.Extension())
	if err := s.archiver.Put(ctx, key, enc.ContentType(), buf.Bytes()); err != nil {
		return "", fmt.Errorf("archive report: %w", err)
	}

	slog.InfoContext(ctx, "report archived",
		"kind", kind.String(),
		"key", key,
		"rows", len(rep.Rows),
		"requested_by", requestedBy,
	)
	core.AddSpanEvent(ctx, "report.archived",
		attribute.String("kind", kind.String()),
		attribute.String("key", key),
	)

	return key, nil
}

// Row flattens an asset into export columns. Missing dates and editors
// render as empty cells.
func Row(a *asset.Asset) []string {
	return []string{
		strconv.FormatInt(a.ID, 10),
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
		a.EntryDate.String(),
		a.EnteredBy,
		a.UpdatedBy,
		a.UpdateDate.String(),
		a.RemoveDate.String(),
	}
}
