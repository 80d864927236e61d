package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"lifehub/internal/record/model"
	"lifehub/internal/record/service"
	"lifehub/middleware"
	"lifehub/pkg/apperr"
	"lifehub/pkg/httpx"
)

// Config carries the redirect targets into a handler instead of binding
// them as package constants.
type Config struct {
	ListPath  string
	LoginPath string
}

// Handler is the HTTP surface for one record kind. The per-kind pieces are
// the two decode functions, declared in bindings.go; everything else is the
// same for all four kinds. Mutations answer with a redirect to the list
// view, list and detail answer with JSON for the presentation layer.
type Handler[T any, PT interface {
	*T
	model.Stampable
}] struct {
	Service *service.Service[T, PT]
	Config  Config

	// decodeCreate builds a new record from the request. decodeUpdate
	// returns the function that applies the kind's editable fields onto an
	// existing record. Both also return the parsed form for echoing on
	// validation failure.
	decodeCreate func(r *http.Request) (T, any, error)
	decodeUpdate func(r *http.Request) (func(*T), any, error)
}

func (h *Handler[T, PT]) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search_area")
	page, err := h.Service.ListPage(r.Context(), middleware.UserID(r), search)
	if err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *Handler[T, PT]) Detail(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Service.Get(r.Context(), middleware.UserID(r), r.PathValue("id"))
	if err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

// CreatePage answers the form-rendering GET; the form itself lives in the
// presentation layer.
func (h *Handler[T, PT]) CreatePage(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"page": "create"})
}

func (h *Handler[T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	rec, form, err := h.decodeCreate(r)
	if err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, form)
		return
	}
	if _, err := h.Service.Create(r.Context(), middleware.UserID(r), rec); err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, form)
		return
	}
	http.Redirect(w, r, h.Config.ListPath, http.StatusFound)
}

func (h *Handler[T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	apply, form, err := h.decodeUpdate(r)
	if err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, form)
		return
	}
	if _, err := h.Service.Update(r.Context(), middleware.UserID(r), r.PathValue("id"), apply); err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, form)
		return
	}
	http.Redirect(w, r, h.Config.ListPath, http.StatusFound)
}

func (h *Handler[T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), middleware.UserID(r), r.PathValue("id")); err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, nil)
		return
	}
	http.Redirect(w, r, h.Config.ListPath, http.StatusFound)
}

type formDecoder interface {
	FromValues(url.Values)
}

// decodeBody accepts JSON or a regular form submission.
func decodeBody(r *http.Request, dst formDecoder) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return apperr.NewValidationError("form", "invalid request body")
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return apperr.NewValidationError("form", "invalid form submission")
	}
	dst.FromValues(r.PostForm)
	return nil
}
