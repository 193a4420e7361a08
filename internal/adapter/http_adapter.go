package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"product-browser/api"
	"product-browser/internal/core/model"
)

type BrowseService interface {
	Query(ctx context.Context, st model.ViewState) (model.Page[model.Product], error)
	CategoryOptions(ctx context.Context) []string
	CatalogStatus() model.CatalogStatus
	CreateSession(ctx context.Context) (model.Session, error)
	GetSession(ctx context.Context, id string) (model.Session, error)
	DeleteSession(ctx context.Context, id string) error
	NextPage(ctx context.Context, id string) (model.Session, error)
	PrevPage(ctx context.Context, id string) (model.Session, error)
	SetCategory(ctx context.Context, id, category string) (model.Session, error)
	SetSort(ctx context.Context, id, sort string) (model.Session, error)
	SessionView(s model.Session) model.Page[model.Product]
}

type Handler struct {
	Svc BrowseService
	log *slog.Logger
}

var _ api.ServerInterface = (*Handler)(nil)

func NewHTTPHandler(svc BrowseService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{Svc: svc, log: logger}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string, details map[string]interface{}) {
	e := api.Error{}
	e.Error.Code = code
	e.Error.Message = msg
	if details != nil {
		e.Error.Details = &details
	}
	writeJSON(w, status, e)
}

// writeServiceError maps core sentinel errors onto HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "session not found", nil)
	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

// ParamErrorHandler reports parameter binding failures from the generated router.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request, params api.ListProductsParams) {
	st := model.DefaultViewState()
	if params.Category != nil {
		st.Category = *params.Category
	}
	if params.Sort != nil {
		mode, err := model.ParseSortMode(string(*params.Sort))
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		st.Sort = mode
	}
	if params.Page != nil {
		st.Page = *params.Page
	}

	page, err := h.Svc.Query(r.Context(), st)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ProductPage{
		Category:   st.Category,
		Data:       toAPIProducts(page.Data),
		Page:       page.Page,
		PageSize:   page.PageSize,
		Sort:       api.SortMode(st.Sort),
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Svc.CategoryOptions(r.Context()))
}

func (h *Handler) GetCatalogStatus(w http.ResponseWriter, _ *http.Request) {
	st := h.Svc.CatalogStatus()
	out := api.CatalogStatus{Loaded: st.Loaded, ProductCount: st.ProductCount}
	if st.Err != nil {
		msg := st.Err.Error()
		out.Error = &msg
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.Svc.CreateSession(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/sessions/"+s.ID)
	writeJSON(w, http.StatusCreated, h.sessionView(r.Context(), s))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request, id api.SessionID) {
	s, err := h.Svc.GetSession(r.Context(), id)
	h.respondSession(w, r, s, err)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request, id api.SessionID) {
	if err := h.Svc.DeleteSession(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) NextPage(w http.ResponseWriter, r *http.Request, id api.SessionID) {
	s, err := h.Svc.NextPage(r.Context(), id)
	h.respondSession(w, r, s, err)
}

func (h *Handler) PrevPage(w http.ResponseWriter, r *http.Request, id api.SessionID) {
	s, err := h.Svc.PrevPage(r.Context(), id)
	h.respondSession(w, r, s, err)
}

func (h *Handler) SetSessionCategory(w http.ResponseWriter, r *http.Request, id api.SessionID) {
	var body api.SetSessionCategoryJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}
	s, err := h.Svc.SetCategory(r.Context(), id, body.Category)
	h.respondSession(w, r, s, err)
}

func (h *Handler) SetSessionSort(w http.ResponseWriter, r *http.Request, id api.SessionID) {
	var body api.SetSessionSortJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}
	s, err := h.Svc.SetSort(r.Context(), id, string(body.Sort))
	h.respondSession(w, r, s, err)
}

func (h *Handler) respondSession(w http.ResponseWriter, r *http.Request, s model.Session, err error) {
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessionView(r.Context(), s))
}

func (h *Handler) sessionView(ctx context.Context, s model.Session) api.SessionView {
	page := h.Svc.SessionView(s)
	return api.SessionView{
		Categories: h.Svc.CategoryOptions(ctx),
		CreatedAt:  s.CreatedAt,
		Data:       toAPIProducts(page.Data),
		Id:         s.ID,
		PageSize:   page.PageSize,
		State: api.ViewState{
			Category: s.State.Category,
			Page:     s.State.Page,
			Sort:     api.SortMode(s.State.Sort),
		},
		Total:      page.Total,
		TotalPages: page.TotalPages,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toAPIProducts(ps []model.Product) []api.Product {
	out := make([]api.Product, 0, len(ps))
	for _, p := range ps {
		ap := api.Product{
			Category: p.Category,
			Id:       p.ID,
			Image:    p.Image,
			Price:    p.Price,
			Rating:   api.Rating{Count: p.Rating.Count, Rate: p.Rating.Rate},
			Title:    p.Title,
		}
		if p.Description != "" {
			d := p.Description
			ap.Description = &d
		}
		out = append(out, ap)
	}
	return out
}
