package transport

import (
	"encoding/json"
	"net/http"

	"catalog/pkg/domain/service"
)

type categoryHandlers struct {
	categories service.CategoryService
}

type categoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func (h *categoryHandlers) create(w http.ResponseWriter, r *http.Request) {
	var body categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}
	category, err := h.categories.CreateCategory(body.Name, body.Icon, body.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newCategoryView(category))
}

func (h *categoryHandlers) list(w http.ResponseWriter, _ *http.Request) {
	categories, err := h.categories.ListCategories()
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, newCategoryView(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *categoryHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	category, err := h.categories.GetCategory(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCategoryView(category))
}

func (h *categoryHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}
	category, err := h.categories.UpdateCategory(id, body.Name, body.Icon, body.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCategoryView(category))
}

func (h *categoryHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.categories.DeleteCategory(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "the category is deleted")
}
