package memory

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/RockeTall/CheckMate-demo/pkg/handlers"
	"github.com/RockeTall/CheckMate-demo/pkg/pagination"
	"github.com/RockeTall/CheckMate-demo/pkg/routes"
)

// Handler provides HTTP endpoints for inspecting and seeding the
// correction store. The grading pipeline writes through System
// directly; these endpoints exist for teachers and tooling.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "memory"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for correction store endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/memory",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{hash}", Handler: h.FindSimilar},
			{Method: "POST", Pattern: "", Handler: h.Create},
		},
	}
}

// List returns a paginated dump of the correction store.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// FindSimilar returns the most recent records for a question hash, newest first.
func (h *Handler) FindSimilar(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")
	if hash == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRecord)
		return
	}

	records, err := h.sys.FindSimilar(r.Context(), hash)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}

// Create appends a manually entered correction record.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRecord)
		return
	}

	if cmd.TeacherRemark == "" && cmd.GradeAwarded == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRecord)
		return
	}

	rec, err := h.sys.SaveRemark(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, rec)
}
