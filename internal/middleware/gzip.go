package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// Gzip transparently decompresses gzip request bodies and compresses JSON
// responses for clients that accept gzip. Redirect and plain responses pass
// through untouched.
func Gzip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			gzReader, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "Invalid gzip body", http.StatusBadRequest)
				return
			}
			defer gzReader.Close()
			r.Body = gzReader
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		grw := &gzipResponseWriter{ResponseWriter: w}
		defer grw.close()

		next.ServeHTTP(grw, r)
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gz   *gzip.Writer
	skip bool
}

// decide inspects the Content-Type set by the handler. Must run before the
// status line is written because it sets Content-Encoding.
func (g *gzipResponseWriter) decide() {
	if strings.Contains(g.Header().Get("Content-Type"), "application/json") {
		g.Header().Set("Content-Encoding", "gzip")
		g.Header().Del("Content-Length")
		g.gz = gzip.NewWriter(g.ResponseWriter)
	} else {
		g.skip = true
	}
}

func (g *gzipResponseWriter) WriteHeader(statusCode int) {
	if g.gz == nil && !g.skip {
		g.decide()
	}
	g.ResponseWriter.WriteHeader(statusCode)
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
	if g.gz == nil && !g.skip {
		g.decide()
	}
	if g.gz != nil {
		return g.gz.Write(b)
	}
	return g.ResponseWriter.Write(b)
}

func (g *gzipResponseWriter) close() {
	if g.gz != nil {
		g.gz.Close()
	}
}
