// Package httpapi is the HTTP transport layer, external to the
// query-to-execution core: the query endpoint, the IP allowlist gate,
// Accept-header content negotiation, and the error-to-status-code mapping.
// It is built on github.com/gorilla/mux.
package httpapi

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/bas-stringer/scry/config"
	"github.com/bas-stringer/scry/logging"
	"github.com/bas-stringer/scry/query"
	"github.com/bas-stringer/scry/registry"
	"github.com/bas-stringer/scry/scryerr"
)

// Server wires the procedure registry and process configuration into a
// single HTTP handler. One Server is built per process; it handles any
// number of concurrent requests, each served by a fresh *query.Query against
// the shared, read-only registry.
type Server struct {
	reg *registry.Registry
	cfg *config.Config
	log *logging.RequestLogger

	router *mux.Router
}

// New builds a Server over reg and cfg, logging through log.
func New(reg *registry.Registry, cfg *config.Config, log *logging.RequestLogger) *Server {
	s := &Server{reg: reg, cfg: cfg, log: log, router: mux.NewRouter()}
	s.router.HandleFunc("/scry/", s.handleQuery).Methods(http.MethodGet, http.MethodPost)
	s.router.HandleFunc("/scry/orb", s.handleOrb).Methods(http.MethodGet)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleQuery is the query endpoint: allowlist gate, request parsing,
// content negotiation, query resolution, response serialization. Every
// failure surfaces as an HTTP 500 with a human-readable body.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	id := logging.NewRequestID()
	start := time.Now()

	remoteIP := clientIP(r)
	s.log.Request(id, r.Method, remoteIP, r.URL.RawQuery)

	if !s.allowed(remoteIP) {
		err := scryerr.ErrAccessDenied.New(remoteIP)
		s.fail(w, id, "", start, err)
		return
	}

	queryText, err := extractQuery(r)
	if err != nil {
		s.fail(w, id, "", start, err)
		return
	}

	mimeType, ok := negotiate(r.Header["Accept"])
	if !ok {
		s.fail(w, id, "", start, scryerr.ErrResponseUnacceptable.New(strings.Join(r.Header["Accept"], ", ")))
		return
	}

	q := query.New(s.reg).WithLogger(s.log, id)
	result, err := q.Resolve(queryText)
	if err != nil {
		s.fail(w, id, mimeType, start, err)
		return
	}

	body, err := render(mimeType, result)
	if err != nil {
		s.fail(w, id, mimeType, start, err)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	s.log.Response(id, mimeType, len(result.Rows), time.Since(start), nil)
}

// handleOrb is a convenience route that runs the fixed self-description
// query, without requiring the client to write the GRAPH <orb_description>
// query by hand.
func (s *Server) handleOrb(w http.ResponseWriter, r *http.Request) {
	id := logging.NewRequestID()
	start := time.Now()

	remoteIP := clientIP(r)
	if !s.allowed(remoteIP) {
		s.fail(w, id, "", start, scryerr.ErrAccessDenied.New(remoteIP))
		return
	}

	const orbQuery = `SELECT ?p ?a ?d ?prov ?v WHERE {
		GRAPH <http://www.scry.com/orb_description> {
			?p <http://www.scry.com/author> ?a .
			?p <http://www.scry.com/description> ?d .
			?p <http://www.scry.com/provenance> ?prov .
			?p <http://www.scry.com/version> ?v .
		}
	}`

	mimeType, ok := negotiate(r.Header["Accept"])
	if !ok {
		mimeType = mimeSparqlXML
	}

	q := query.New(s.reg).WithLogger(s.log, id)
	result, err := q.Resolve(orbQuery)
	if err != nil {
		s.fail(w, id, mimeType, start, err)
		return
	}
	body, err := render(mimeType, result)
	if err != nil {
		s.fail(w, id, mimeType, start, err)
		return
	}
	w.Header().Set("Content-Type", mimeType)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	s.log.Response(id, mimeType, len(result.Rows), time.Since(start), nil)
}

// fail logs the failed response and writes the error as a 500 with the
// error's message as the body.
func (s *Server) fail(w http.ResponseWriter, id logging.RequestID, mimeType string, start time.Time, err error) {
	s.log.Response(id, mimeType, 0, time.Since(start), err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// allowed reports whether remoteIP is on the configured allowlist. An empty
// allowlist denies every request: fail closed by default.
func (s *Server) allowed(remoteIP string) bool {
	for _, ip := range s.cfg.IPWhitelist {
		if ip == remoteIP {
			return true
		}
	}
	return false
}

// clientIP extracts the request's remote address, stripping the port
// net/http's RemoteAddr always carries.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// extractQuery implements the request parsing rule: GET or POST with
// application/x-www-form-urlencoded both carry the query in the `query`
// form parameter; direct-POST (`application/sparql-query`) is recognized
// but rejected rather than silently accepted.
func extractQuery(r *http.Request) (string, error) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query().Get("query")
		if q == "" {
			return "", scryerr.ErrRequestMalformed.New("missing query parameter")
		}
		return q, nil

	case http.MethodPost:
		contentType := r.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "application/sparql-query"):
			return "", scryerr.ErrRequestMalformed.New("direct POST (application/sparql-query) is not implemented")
		case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
			if err := r.ParseForm(); err != nil {
				return "", scryerr.ErrRequestMalformed.New("could not parse form body: " + err.Error())
			}
			q := r.PostForm.Get("query")
			if q == "" {
				return "", scryerr.ErrRequestMalformed.New("missing query parameter")
			}
			return q, nil
		default:
			return "", scryerr.ErrRequestMalformed.New("unsupported content type " + contentType)
		}

	default:
		return "", scryerr.ErrRequestMalformed.New("unsupported method " + r.Method)
	}
}
