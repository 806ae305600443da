package providers

import (
	"net/http"
	"surveysync/internal/structures"

	"github.com/go-chi/chi/v5"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
	Handler() http.Handler
}

type RouterProvider struct {
	mux    chi.Router
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.mux.Method(http.MethodGet, url, handler)
	rp.routes = append(rp.routes, structures.Route{Method: http.MethodGet, Url: url, Handler: handler})
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.mux.Method(http.MethodPost, url, handler)
	rp.routes = append(rp.routes, structures.Route{Method: http.MethodPost, Url: url, Handler: handler})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func (rp *RouterProvider) Handler() http.Handler {
	return rp.mux
}

func NewRouterProvider() RouterProviderInterface {
	mux := chi.NewRouter()
	mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
	return &RouterProvider{mux: mux}
}
