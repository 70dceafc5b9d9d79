package util

import (
	"net/http"
	"strings"
)

// CleanBase returns the base path with a leading slash and without a trailing slash. The root is "".
func CleanBase(base string) string {
	base = strings.Trim(base, "/")
	if base == "" {
		return ""
	}
	return "/" + base
}

// Mux serves handlers below a common base path. A mounted handler sees request paths relative to its mount point,
// and absolute redirects which it sends are made absolute again.
type Mux struct {
	base     string
	serveMux *http.ServeMux
}

func NewMux(base string) *Mux {
	return &Mux{
		base:     CleanBase(base),
		serveMux: http.NewServeMux(),
	}
}

// Mount serves handler at base + prefix. The prefix is "" for the base itself, else it starts with a slash.
func (mux *Mux) Mount(prefix string, handler http.Handler) {
	var mountPoint = mux.base + CleanBase(prefix)
	mux.serveMux.Handle(
		mountPoint+"/", // subtree pattern
		http.StripPrefix(
			mountPoint,
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handler.ServeHTTP(&locationWriter{w, mountPoint}, r)
			}),
		),
	)
}

func (mux *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux.serveMux.ServeHTTP(w, r)
}

type locationWriter struct {
	http.ResponseWriter
	mountPoint string
}

// WriteHeader prepends the mount point to a Location header which contains an absolute path.
// Relative and protocol-relative locations are left alone.
func (w *locationWriter) WriteHeader(statusCode int) {
	if w.mountPoint != "" {
		if location := w.Header().Get("Location"); strings.HasPrefix(location, "/") && !strings.HasPrefix(location, "//") {
			w.Header().Set("Location", w.mountPoint+location)
		}
	}
	w.ResponseWriter.WriteHeader(statusCode)
}
