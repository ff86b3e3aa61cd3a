// AngelaMos | 2026
// handler.go

package asset

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/asset-portal/internal/core"
	"github.com/carterperez-dev/asset-portal/internal/middleware"
)

// Handler decodes requests and renders results. Field rules live in the
// service so every caller gets the same validation.
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
	r.Route("/assets", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{employeeID}", h.Get)
		r.Put("/{employeeID}", h.Update)
		r.Delete("/{employeeID}", h.Remove)
	})
}

// List returns active assets, narrowed by the employee_name, employee_id
// and location query parameters when any are given.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := SearchCriteria{
		EmployeeName: q.Get("employee_name"),
		EmployeeID:   q.Get("employee_id"),
		Location:     q.Get("location"),
	}

	var (
		assets []Asset
		err    error
	)
	if criteria.IsEmpty() {
		assets, err = h.service.ListActive(r.Context())
	} else {
		assets, err = h.service.Search(r.Context(), criteria)
	}
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.List(w, ToAssetResponseList(assets), len(assets))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	a, err := h.service.Add(r.Context(), identity, req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("employee id"))
			return
		}
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToAssetResponse(a))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "asset")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToAssetResponse(a))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	a, err := h.service.Update(
		r.Context(),
		identity,
		chi.URLParam(r, "employeeID"),
		req.Fields,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "asset")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToAssetResponse(a))
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	a, err := h.service.Remove(r.Context(), identity, chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "asset")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToAssetResponse(a))
}
