package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/core/port"
	"github.com/vgayam/proconnect-backend/internal/core/port/usecases_port"
)

type DictionaryHandler struct {
	dictionariesUC usecases_port.GetDictionariesUseCase
}

func NewDictionaryHandler(dictionariesUC usecases_port.GetDictionariesUseCase) *DictionaryHandler {
	return &DictionaryHandler{
		dictionariesUC: dictionariesUC,
	}
}

// ListSubcategories обрабатывает GET /api/subcategories
func (h *DictionaryHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.dictionariesUC.ListSubcategories(r.Context())
	if err != nil {
		h.writeError(w, r, "ListSubcategories", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSubcategoryResponses(items))
}

// ListCategories обрабатывает GET /api/subcategories/categories
func (h *DictionaryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.dictionariesUC.ListCategories(r.Context())
	if err != nil {
		h.writeError(w, r, "ListCategories", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, categories)
}

// ListSubcategoriesByCategory обрабатывает GET /api/subcategories/category/{category}
func (h *DictionaryHandler) ListSubcategoriesByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := h.dictionariesUC.ListSubcategoriesByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		h.writeError(w, r, "ListSubcategoriesByCategory", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSubcategoryResponses(items))
}

func (h *DictionaryHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	contextkeys.LoggerFromContext(r.Context()).Error("Use case failed", err, port.Fields{"handler": handler})
	WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve dictionary")
}
