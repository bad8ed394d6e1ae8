package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouter adapts *chi.Mux / chi.Router to the platform Router seam
type chiRouter struct{ r chi.Router }

// AdaptChi wraps a chi router in the platform Router interface
func AdaptChi(r chi.Router) Router { return &chiRouter{r: r} }

func (c *chiRouter) Get(path string, h Handler)    { c.r.Get(path, http.HandlerFunc(h)) }
func (c *chiRouter) Post(path string, h Handler)   { c.r.Post(path, http.HandlerFunc(h)) }
func (c *chiRouter) Delete(path string, h Handler) { c.r.Delete(path, http.HandlerFunc(h)) }

func (c *chiRouter) Handle(path string, h http.Handler)            { c.r.Handle(path, h) }
func (c *chiRouter) Use(mw ...func(http.Handler) http.Handler)     { c.r.Use(mw...) }
func (c *chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(AdaptChi(sub)) })
}

func (c *chiRouter) Mux() http.Handler { return c.r }
