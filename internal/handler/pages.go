package handler

import "net/http"

// PageHandler serves the static pages: home, about, contact.
type PageHandler struct {
	render *Renderer
}

func NewPageHandler(render *Renderer) *PageHandler {
	return &PageHandler{render: render}
}

type staticPage struct {
	basePage
}

// HandleHome serves the landing page.
//
// HTTP: GET /
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, "home.html", staticPage{
		basePage: h.render.base(r.Context(), "Campus Community Hub", "home"),
	})
}

// HandleAbout serves the about page.
//
// HTTP: GET /about/
func (h *PageHandler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, "about.html", staticPage{
		basePage: h.render.base(r.Context(), "About", "about"),
	})
}

// HandleContact serves the contact page.
//
// HTTP: GET /contact/
func (h *PageHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, "contact.html", staticPage{
		basePage: h.render.base(r.Context(), "Contact", "contact"),
	})
}
