package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jonwraymond/healthmock/observe"
)

// Route names, used for telemetry and as mux route names.
const (
	RouteHealth          = "health"
	RouteComponentHealth = "health_component"
	RouteHTML            = "html"
	RouteSitemap         = "sitemap"
	RouteToggle          = "toggle"
	RouteNotFound        = "not_found"
)

// route is one entry of the ordered routing table.
type route struct {
	name    string
	path    string
	prefix  bool
	handler http.HandlerFunc
}

// routeTable returns the routes of the configured profile in match order.
func (s *Server) routeTable() []route {
	routes := []route{
		{name: RouteHealth, path: "/health", handler: s.handleHealth},
	}
	if s.cfg.Profile.componentRoutes() {
		routes = append(routes, route{name: RouteComponentHealth, path: "/health/", prefix: true, handler: s.handleComponentHealth})
	}
	if s.cfg.Profile.pageRoutes() {
		routes = append(routes,
			route{name: RouteHTML, path: "/checks/html", handler: s.handleHTML},
			route{name: RouteSitemap, path: "/checks/sitemap.xml", handler: s.handleSitemap},
		)
	}
	return append(routes, route{name: RouteToggle, path: "/toggle", handler: s.handleToggle})
}

// newRouter builds the mock router. Routes are matched in table order;
// paths are never cleaned or redirected.
func (s *Server) newRouter() *mux.Router {
	r := mux.NewRouter()
	r.SkipClean(true)

	fallback := s.telemetry.Wrap(RouteNotFound, http.HandlerFunc(notFound))
	r.NotFoundHandler = fallback
	r.MethodNotAllowedHandler = fallback

	for _, rt := range s.routeTable() {
		var m *mux.Route
		if rt.prefix {
			m = r.PathPrefix(rt.path)
		} else {
			m = r.Path(rt.path)
		}
		m.Methods(http.MethodGet).Name(rt.name).Handler(s.telemetry.Wrap(rt.name, rt.handler))
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeFlag(w, r, healthPage, s.cfg.DefaultComponent)
}

// handleComponentHealth serves /health/<name>. The name is the remainder of
// the decoded path and may be empty or contain slashes, so /health/a%20b and
// a toggle of component "a b" address the same entry. Paths with malformed
// escapes are rejected by net/http with a 400 before they reach the router.
func (s *Server) handleComponentHealth(w http.ResponseWriter, r *http.Request) {
	s.writeFlag(w, r, healthPage, strings.TrimPrefix(r.URL.Path, "/health/"))
}

func (s *Server) handleHTML(w http.ResponseWriter, r *http.Request) {
	s.writeFlag(w, r, htmlPage, s.cfg.HTMLComponent)
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	s.writeFlag(w, r, sitemapPage, s.cfg.SitemapComponent)
}

func (s *Server) writeFlag(w http.ResponseWriter, r *http.Request, p page, component string) {
	observe.SetComponent(r.Context(), component)
	p.write(w, s.table.Healthy(component))
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	q := queryValues(r.URL.RawQuery)

	raw, ok := q["healthy"]
	if !ok {
		writeBody(w, http.StatusBadRequest, ContentTypeText, BodyMissingHealthy)
		return
	}
	healthy := strings.EqualFold(raw, "true")

	component := s.cfg.DefaultComponent
	if s.cfg.Profile != ProfileSingle {
		if c, ok := q["component"]; ok {
			component = c
		}
	}

	s.table.Set(component, healthy)

	ctx := r.Context()
	observe.SetComponent(ctx, component)
	s.telemetry.Metrics().RecordToggle(ctx, component, healthy)
	s.logger.Info(ctx, "component health set",
		observe.F("component", component),
		observe.F("healthy", healthy),
	)

	if s.cfg.Profile == ProfileSingle {
		writeBody(w, http.StatusOK, ContentTypeJSON, singleToggleBody(healthy))
		return
	}
	writeBody(w, http.StatusOK, ContentTypeJSON, toggleBody(component, healthy))
}
