package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/darideveloper/cotiza/internal/brand"
)

type contextKey string

const brandKey contextKey = "brand"

// withBrand resolves the tenant for every request and stores it in the
// context.
func withBrand(brands *brand.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := brands.Resolve(r)
			ctx := context.WithValue(r.Context(), brandKey, b)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// brandFrom returns the brand resolved by the middleware.
func brandFrom(ctx context.Context) brand.Brand {
	b, _ := ctx.Value(brandKey).(brand.Brand)
	return b
}

// requestLogger emits one structured line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// localeFor picks the response locale: explicit ?lang=, then the
// Accept-Language primary tag, then the brand default.
func localeFor(r *http.Request, b brand.Brand) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		tag := strings.TrimSpace(strings.SplitN(accept, ",", 2)[0])
		if i := strings.IndexByte(tag, '-'); i > 0 {
			tag = tag[:i]
		}
		if tag != "" {
			return tag
		}
	}
	return b.DefaultLocale
}
