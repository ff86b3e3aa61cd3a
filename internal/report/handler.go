// AngelaMos | 2026
// handler.go

package report

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/asset-portal/internal/core"
	"github.com/carterperez-dev/asset-portal/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/dashboard", h.Dashboard)
		r.Get("/reports/{kind}", h.Export)
		r.Post("/reports/{kind}/archive", h.Archive)
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Dashboard(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, d)
}

// Export streams a report as an attachment. The format query parameter picks
// csv (default), pdf or json.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	enc, err := EncoderFor(Format(r.URL.Query().Get("format")))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	rep, err := h.service.BuildReport(r.Context(), kind)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, rep); err != nil {
		core.InternalServerError(w, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.%s", kind, core.DateOf(rep.GeneratedAt), enc.Extension())

	w.Header().Set("Content-Type", enc.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // best-effort response write
	_, _ = buf.WriteTo(w)
}

type ArchiveResponse struct {
	Key string `json:"key"`
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	kind, err := ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	key, err := h.service.Archive(
		r.Context(),
		identity,
		kind,
		Format(r.URL.Query().Get("format")),
	)
	if err != nil {
		if errors.Is(err, ErrArchiveDisabled) {
			core.JSONError(w, core.NewAppError(
				err,
				"report archiving is not enabled",
				http.StatusNotImplemented,
				"ARCHIVE_DISABLED",
			))
			return
		}
		core.JSONError(w, err)
		return
	}

	core.Created(w, ArchiveResponse{Key: key})
}
