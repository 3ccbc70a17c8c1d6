package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
	"github.com/vgayam/proconnect-backend/internal/core/port"
	"github.com/vgayam/proconnect-backend/internal/core/port/usecases_port"
)

type ProfessionalHandler struct {
	searchUC    usecases_port.SearchProfessionalsUseCase
	getByIDUC   usecases_port.GetProfessionalByIDUseCase
	getBySlugUC usecases_port.GetProfessionalBySlugUseCase
	getCitiesUC usecases_port.GetDistinctCitiesUseCase
	getFacetsUC usecases_port.GetFacetsUseCase
}

func NewProfessionalHandler(searchUC usecases_port.SearchProfessionalsUseCase,
	getByIDUC usecases_port.GetProfessionalByIDUseCase,
	getBySlugUC usecases_port.GetProfessionalBySlugUseCase,
	getCitiesUC usecases_port.GetDistinctCitiesUseCase,
	getFacetsUC usecases_port.GetFacetsUseCase) *ProfessionalHandler {
	return &ProfessionalHandler{
		searchUC:    searchUC,
		getByIDUC:   getByIDUC,
		getBySlugUC: getBySlugUC,
		getCitiesUC: getCitiesUC,
		getFacetsUC: getFacetsUC,
	}
}

// Search обрабатывает GET /api/professionals
func (h *ProfessionalHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	raw := parseSearchParams(r.URL.Query())

	handlerLogger := logger.WithFields(port.Fields{
		"handler":   "Search",
		"page":      raw.Page,
		"page_size": raw.PageSize,
	})
	handlerLogger.Debug("Processing search request", nil)

	result, err := h.searchUC.Execute(r.Context(), raw)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to search professionals")
		return
	}

	RespondWithJSON(w, http.StatusOK, ToSearchResultResponse(result))
}

// GetByID обрабатывает GET /api/professionals/{id}
func (h *ProfessionalHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid professional ID format")
		return
	}

	professional, err := h.getByIDUC.Execute(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, "GetByID", err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toProfessionalDetailResponse(*professional))
}

// GetBySlug обрабатывает GET /api/professionals/slug/{slug}
func (h *ProfessionalHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	professional, err := h.getBySlugUC.Execute(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeLookupError(w, r, "GetBySlug", err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toProfessionalDetailResponse(*professional))
}

// GetDistinctCities обрабатывает GET /api/professionals/cities
func (h *ProfessionalHandler) GetDistinctCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.getCitiesUC.Execute(r.Context())
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Use case failed", err, port.Fields{"handler": "GetDistinctCities"})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve cities")
		return
	}

	RespondWithJSON(w, http.StatusOK, cities)
}

// GetFacets обрабатывает GET /api/professionals/facets
func (h *ProfessionalHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.getFacetsUC.Execute(r.Context())
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Use case failed", err, port.Fields{"handler": "GetFacets"})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve facets")
		return
	}

	RespondWithJSON(w, http.StatusOK, toFacetsResponse(facets))
}

func (h *ProfessionalHandler) writeLookupError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if errors.Is(err, domain.ErrProfessionalNotFound) {
		WriteJSONError(w, http.StatusNotFound, "Professional not found")
		return
	}
	contextkeys.LoggerFromContext(r.Context()).Error("Use case failed", err, port.Fields{"handler": handler})
	WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve professional")
}
