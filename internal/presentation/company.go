package presentation

import (
	"net/http"

	"github.com/RaikyD/digital-link/internal/application"
	"github.com/RaikyD/digital-link/internal/presentation/helpers"
	"github.com/go-chi/chi/v5"
)

func (h *ShipmentsHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.svc.Company.Draft())
}

func (h *ShipmentsHandler) PatchDraft(w http.ResponseWriter, r *http.Request) {
	var p application.DraftPatch
	if err := helpers.DecodeJSON(r.Body, &p); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, h.svc.Company.UpdateDraft(p))
}

func (h *ShipmentsHandler) AddDraftItem(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusCreated, h.svc.Company.AddItem())
}

func (h *ShipmentsHandler) PatchDraftItem(w http.ResponseWriter, r *http.Request) {
	var p application.ItemPatch
	if err := helpers.DecodeJSON(r.Body, &p); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	it, err := h.svc.Company.UpdateItem(chi.URLParam(r, "itemID"), p)
	if err != nil {
		helpers.DomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, it)
}

func (h *ShipmentsHandler) DeleteDraftItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Company.RemoveItem(chi.URLParam(r, "itemID")); err != nil {
		helpers.DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShipmentsHandler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	sh, err := h.svc.Company.Submit(r.Context())
	if err != nil {
		helpers.DomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, sh)
}
