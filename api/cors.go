package api

import (
	"net/http"
	"strings"
)

var (
	corsAllowedMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsAllowedHeaders = "Authorization, Content-Type"
)

// CORS admits browser requests from an explicit origin allow-list.
type CORS struct {
	origins map[string]struct{}
}

func NewCORS(origins []string) *CORS {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		allowed[strings.TrimRight(origin, "/")] = struct{}{}
	}
	return &CORS{origins: allowed}
}

func (c *CORS) allowed(origin string) bool {
	_, ok := c.origins[origin]
	return ok
}

// Wrap answers preflight requests itself and decorates every other response
// from an allowed origin.
func (c *CORS) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, req)
			return
		}

		w.Header().Add("Vary", "Origin")
		isPreflight := req.Method == http.MethodOptions && req.Header.Get("Access-Control-Request-Method") != ""

		if !c.allowed(origin) {
			if isPreflight {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, req)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if isPreflight {
			w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			w.Header().Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, req)
	})
}
