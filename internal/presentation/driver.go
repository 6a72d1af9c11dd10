package presentation

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/RaikyD/digital-link/internal/domain"
	"github.com/RaikyD/digital-link/internal/logger"
	"github.com/RaikyD/digital-link/internal/manifest"
	"github.com/RaikyD/digital-link/internal/presentation/helpers"
	"github.com/go-chi/chi/v5"
)

type beginSigningRequest struct {
	ShipmentID string `json:"shipmentId"`
}

type signerNameRequest struct {
	Name string `json:"name"`
}

// Value is the raw text of the quantity field.
type deliveredRequest struct {
	Value string `json:"value"`
}

type signRequest struct {
	SignatureName string `json:"signatureName"`
	Signature     string `json:"signature"`
}

func (h *ShipmentsHandler) GetSigning(w http.ResponseWriter, r *http.Request) {
	s, ok := h.svc.Driver.Session()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"session":   s,
		"delivered": h.svc.Driver.Overrides(s.ShipmentID),
	})
}

// GetOverrides lists every adjusted quantity so cards outside the dialog show them too.
func (h *ShipmentsHandler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.svc.Driver.AllOverrides())
}

func (h *ShipmentsHandler) BeginSigning(w http.ResponseWriter, r *http.Request) {
	var req beginSigningRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	s, err := h.svc.Driver.Begin(req.ShipmentID)
	if err != nil {
		helpers.DomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, s)
}

func (h *ShipmentsHandler) CancelSigning(w http.ResponseWriter, r *http.Request) {
	h.svc.Driver.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShipmentsHandler) SetSignerName(w http.ResponseWriter, r *http.Request) {
	var req signerNameRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	s, err := h.svc.Driver.SetSignerName(req.Name)
	if err != nil {
		helpers.DomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, s)
}

func (h *ShipmentsHandler) SetDelivered(w http.ResponseWriter, r *http.Request) {
	var req deliveredRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	id, itemID := chi.URLParam(r, "id"), chi.URLParam(r, "itemID")

	v, err := h.svc.Driver.SetDeliveredQuantity(id, itemID, domain.ParseQuantity(req.Value))
	if err != nil {
		helpers.DomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"shipmentId": id,
		"itemId":     itemID,
		"delivered":  v,
	})
}

func (h *ShipmentsHandler) Sign(w http.ResponseWriter, r *http.Request) {
	var req signRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	sh, err := h.svc.Driver.Sign(r.Context(), chi.URLParam(r, "id"), req.SignatureName, req.Signature)
	if err != nil {
		helpers.DomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, sh)
}

func (h *ShipmentsHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]any{"selected": h.svc.Manifest.Selected()})
}

func (h *ShipmentsHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.svc.Manifest.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShipmentsHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	on, err := h.svc.Manifest.Toggle(id)
	if err != nil {
		helpers.DomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"shipmentId": id,
		"selected":   on,
		"selection":  h.svc.Manifest.Selected(),
	})
}

func (h *ShipmentsHandler) CreateManifest(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Manifest.CreateManifest()
	if err != nil {
		helpers.DomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{"shipments": entries})
}

func (h *ShipmentsHandler) ManifestPDF(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Manifest.CreateManifest()
	if err != nil {
		helpers.DomainError(w, err)
		return
	}
	now := h.now()
	pdf, err := manifest.RenderPDF(entries, now)
	if err != nil {
		logger.Warn("manifest pdf failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "failed to render manifest")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"manifest_%s.pdf\"", now.Format("20060102_1504")))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}
