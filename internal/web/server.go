package web

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	mw "github.com/rogerio-castellano/product-catalog/internal/http/middleware"
	"github.com/rogerio-castellano/product-catalog/internal/obs"
)

type server struct {
	client *Client
}

// NewRouter serves the client pages backed by client.
func NewRouter(client *Client) http.Handler {
	s := &server{client: client}

	r := chi.NewRouter()
	r.Use(chimw.RealIP, mw.RequestID, mw.AccessLog, chimw.Recoverer)
	r.Get("/", s.homeHandler)
	r.Get("/product/{id}", s.productHandler)
	return r
}

// homeHandler keeps the loading state on a failed fetch, like the list page
// does in the browser.
func (s *server) homeHandler(w http.ResponseWriter, r *http.Request) {
	view := NewHomeView(s.client)
	status := http.StatusOK
	if err := view.Load(r.Context()); err != nil {
		obs.Logger.Error("fetch_products_failed",
			"error", err,
			"request_id", mw.RequestIDFromContext(r.Context()),
		)
		status = http.StatusBadGateway
	}

	var buf bytes.Buffer
	if err := view.Render(&buf); err != nil {
		obs.Logger.Error("render_failed", "page", "home", "error", err)
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (s *server) productHandler(w http.ResponseWriter, r *http.Request) {
	view := NewProductView(s.client, chi.URLParam(r, "id"))
	status := http.StatusOK
	if err := view.Load(r.Context()); err != nil {
		obs.Logger.Error("fetch_product_failed",
			"error", err,
			"request_id", mw.RequestIDFromContext(r.Context()),
		)
		status = http.StatusBadGateway
	} else if view.NotFound() {
		status = http.StatusNotFound
	}

	var buf bytes.Buffer
	if err := view.Render(&buf); err != nil {
		obs.Logger.Error("render_failed", "page", "product", "error", err)
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		obs.Logger.Error("write_response_failed", "error", err)
	}
}
