package server

import (
	"net/http"
	"slices"
	"strings"
	"sync"
)

var _ Router = (*BasicRouter)(nil)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Uses [http.ServeMux] internally. Several methods may share a path; other methods get 405
// with an Allow header. HEAD is served by the GET handler.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
	handler     http.Handler // mux wrapped in middlewares, rebuilt by Use

	mu     sync.Mutex
	routes map[string]*methodRoute
}

// methodRoute dispatches one path by method.
type methodRoute struct {
	mu       sync.RWMutex
	handlers map[string]http.Handler
}

func (m *methodRoute) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.Method
	if method == http.MethodHead {
		method = http.MethodGet
	}

	m.mu.RLock()
	h, ok := m.handlers[method]
	allowed := make([]string, 0, len(m.handlers))
	for k := range m.handlers {
		allowed = append(allowed, k)
	}
	m.mu.RUnlock()

	if !ok {
		slices.Sort(allowed)
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.ServeHTTP(w, r)
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	mux := http.NewServeMux()
	return &BasicRouter{
		mux:         mux,
		middlewares: []Middleware{},
		handler:     mux,
		routes:      make(map[string]*methodRoute),
	}
}

// Use adds [Middleware] to the router's stack. It applies to every request, including 404s and 405s.
//
// Call Use before serving; the wrapped handler is rebuilt here, not per request.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
	r.handler = r.Apply(r.mux)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	return Chain(handler, r.middlewares...)
}

// Handle registers a handler for the specified HTTP method and path.
//
// Route-specific middleware in mw runs after the router-wide stack.
func (r *BasicRouter) Handle(method, path string, handler http.Handler, mw ...Middleware) {
	r.mu.Lock()
	route, ok := r.routes[path]
	if !ok {
		route = &methodRoute{handlers: make(map[string]http.Handler)}
		r.routes[path] = route
		r.mux.Handle(exact(path), route)
	}
	r.mu.Unlock()

	route.mu.Lock()
	route.handlers[strings.ToUpper(method)] = Chain(handler, mw...)
	route.mu.Unlock()
}

// HandleFunc is Handle for plain functions.
func (r *BasicRouter) HandleFunc(method, path string, fn http.HandlerFunc, mw ...Middleware) {
	r.Handle(method, path, fn, mw...)
}

// Handler registers a custom Handler implementation for all of its routes and every method.
func (r *BasicRouter) Handler(handler Handler) {
	for _, route := range handler.Routes() {
		r.mux.Handle(route, handler)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// exact turns "/" into "/{$}" so the root does not match every path.
func exact(path string) string {
	if path == "/" {
		return "/{$}"
	}
	return path
}
