package presentation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RaikyD/digital-link/internal/application"
	"github.com/RaikyD/digital-link/internal/domain"
	"github.com/RaikyD/digital-link/internal/logger"
	"github.com/RaikyD/digital-link/internal/manifest"
	"github.com/RaikyD/digital-link/internal/presentation/helpers"
	"github.com/go-chi/chi/v5"
)

type ShipmentsHandler struct {
	svc *application.ShipmentsService
	now func() time.Time
}

func NewShipmentsHandler(svc *application.ShipmentsService) *ShipmentsHandler {
	return &ShipmentsHandler{svc: svc, now: time.Now}
}

func (h *ShipmentsHandler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Get("/reference", h.Reference)

		r.Get("/shipments", h.ListShipments)
		r.Post("/shipments", h.CreateShipment)
		r.Post("/shipments/generate", h.GenerateShipments)
		r.Get("/shipments/{id}", h.GetShipment)
		r.Get("/shipments/{id}/qr.png", h.ShipmentQR)

		r.Route("/company/draft", func(r chi.Router) {
			r.Get("/", h.GetDraft)
			r.Patch("/", h.PatchDraft)
			r.Post("/items", h.AddDraftItem)
			r.Patch("/items/{itemID}", h.PatchDraftItem)
			r.Delete("/items/{itemID}", h.DeleteDraftItem)
			r.Post("/submit", h.SubmitDraft)
		})

		r.Route("/driver", func(r chi.Router) {
			r.Get("/signing", h.GetSigning)
			r.Post("/signing", h.BeginSigning)
			r.Delete("/signing", h.CancelSigning)
			r.Put("/signing/name", h.SetSignerName)
			r.Get("/overrides", h.GetOverrides)
			r.Put("/shipments/{id}/items/{itemID}/delivered", h.SetDelivered)
			r.Post("/shipments/{id}/sign", h.Sign)

			r.Get("/manifest/selection", h.GetSelection)
			r.Delete("/manifest/selection", h.ClearSelection)
			r.Post("/manifest/selection/{id}", h.ToggleSelection)
			r.Post("/manifest", h.CreateManifest)
			r.Get("/manifest.pdf", h.ManifestPDF)
		})

		r.Post("/sync/{system}", h.Sync)
	})
}

func (h *ShipmentsHandler) Reference(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"drivers":            application.Drivers,
		"projects":           application.Projects,
		"transportCompanies": application.TransportCompanies,
	})
}

func (h *ShipmentsHandler) ListShipments(w http.ResponseWriter, r *http.Request) {
	driver := r.URL.Query().Get("driver")
	helpers.WriteJSON(w, http.StatusOK, h.svc.Store.ForDriver(driver))
}

func (h *ShipmentsHandler) GetShipment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		helpers.HttpError(w, http.StatusBadRequest, "id is empty")
		return
	}

	sh, err := h.svc.Store.Get(id)
	if err != nil {
		helpers.DomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, sh)
}

// Черновик принимаем тремя способами: JSON-телом, JSON-строкой в text/plain
// или .json файлом в поле "file" (выгрузка из внешней системы планирования).
func (h *ShipmentsHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	mediatype, params, _ := mime.ParseMediaType(ct)

	var draft domain.Draft
	var readErr error

	switch mediatype {
	case "application/json":
		readErr = helpers.DecodeJSON(r.Body, &draft)

	case "text/plain":
		raw, err := io.ReadAll(io.LimitReader(r.Body, 2<<20))
		if err != nil {
			readErr = err
			break
		}
		readErr = json.Unmarshal(raw, &draft)

	case "multipart/form-data":
		mr := multipart.NewReader(r.Body, params["boundary"])
		found := false
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				readErr = err
				break
			}
			if part.FormName() != "file" {
				continue
			}
			found = true
			bufr := bufio.NewReader(io.LimitReader(part, 2<<20))
			readErr = helpers.DecodeJSON(bufr, &draft)
			_ = part.Close()
			break
		}
		if readErr == nil && !found {
			readErr = fmt.Errorf("form field %q is missing", "file")
		}
	default:
		helpers.HttpError(w, http.StatusUnsupportedMediaType, "unsupported content-type")
		return
	}

	if readErr != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+readErr.Error())
		return
	}
	if strings.TrimSpace(draft.Date) == "" {
		draft.Date = h.now().Format(domain.DateLayout)
	}

	sh, err := h.svc.Company.CreateShipment(r.Context(), draft)
	if err != nil {
		helpers.DomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, sh)
}

func (h *ShipmentsHandler) GenerateShipments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("count")
	n := 1
	if q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 && v <= 100 {
			n = v
		}
	}

	created := make([]string, 0, n)
	for i := 0; i < n; i++ {
		sh, err := h.svc.Company.CreateShipment(r.Context(), genDemoDraft(h.now()))
		if err != nil {
			logger.Warn("generate: create failed", "err", err)
			continue
		}
		created = append(created, sh.ID)
	}

	helpers.WriteJSON(w, http.StatusCreated, map[string]any{
		"status":      "ok",
		"created_ids": created,
	})
}

func (h *ShipmentsHandler) ShipmentQR(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.svc.Store.Get(id); err != nil {
		helpers.DomainError(w, err)
		return
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size > 1024 {
		size = 1024
	}

	png, err := manifest.ShipmentQR(id, size)
	if err != nil {
		logger.Warn("qr encode failed", "id", id, "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "failed to render QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	_, _ = w.Write(png)
}

// Sync is where the external system integrations will go.
func (h *ShipmentsHandler) Sync(w http.ResponseWriter, r *http.Request) {
	system := chi.URLParam(r, "system")
	helpers.WriteJSON(w, http.StatusNotImplemented, helpers.Notice{
		Error:       "Not implemented",
		Description: "sync with " + system + " is not available yet",
	})
}

func genDemoDraft(now time.Time) domain.Draft {
	names := []string{"Electronics Package", "Office Supplies", "Furniture", "Medical Supplies", "Construction Materials"}
	cities := []string{"Oslo", "Bergen", "Trondheim", "Stavanger", "Tromsø"}

	d := domain.NewDraft(now)
	d.DriverName = application.Drivers[rand.IntN(len(application.Drivers))]
	d.Project = application.Projects[rand.IntN(len(application.Projects))]
	d.TransportCompany = application.TransportCompanies[rand.IntN(len(application.TransportCompanies))]
	d.Address = fmt.Sprintf("%d Harbour Rd, %s", 1+rand.IntN(999), cities[rand.IntN(len(cities))])
	d.Items = []domain.ShipmentItem{{
		ID:       "demo-" + strconv.FormatInt(now.UnixNano(), 10),
		Name:     names[rand.IntN(len(names))],
		Quantity: 1 + rand.IntN(9),
		Unit:     domain.DefaultItemUnit,
	}}
	return d
}
