package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// responseWriter wraps http.ResponseWriter to capture status code & size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(data []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(data)
	rw.size += size
	return size, err
}

// requestLoggingMiddleware logs HTTP requests (if enabled) with latency & size.
func (gs *GalleryServer) requestLoggingMiddleware(next http.Handler) http.Handler {
	if !gs.config.Server.RequestLogging {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer that captures status code and size
		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     200, // Default status code
		}

		// Call the next handler
		next.ServeHTTP(rw, r)

		duration := time.Since(start)

		// Skip logging for static assets and health checks to reduce noise
		if gs.shouldLogRequest(r.URL.Path) {
			gs.logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"remote":   r.RemoteAddr,
				"status":   rw.statusCode,
				"size":     formatBytes(rw.size),
				"duration": duration.Round(time.Millisecond).String(),
			}).Info("Request handled")
		}
	})
}

// corsMiddleware injects CORS headers if enabled in configuration. Only
// Access-Control-Allow-Origin: * is set; the API is read-mostly and needs
// no preflight handling.
func (gs *GalleryServer) corsMiddleware(next http.Handler) http.Handler {
	if !gs.config.Server.EnableCORS {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

// shouldLogRequest filters noisy paths from request logging output.
func (gs *GalleryServer) shouldLogRequest(path string) bool {
	// Skip logging for common static assets and frequent endpoints
	skipPaths := []string{
		"/static/css/",
		"/static/js/",
		"/static/images/",
		"/favicon.ico",
		"/health",
	}

	for _, skipPath := range skipPaths {
		if len(path) >= len(skipPath) && path[:len(skipPath)] == skipPath {
			return false
		}
	}

	return true
}

// formatBytes provides a simple approximate human-readable size.
func formatBytes(bytes int) string {
	if bytes == 0 {
		return "0B"
	}

	const unit = 1024
	if bytes < unit {
		return "< 1KB"
	}

	div, exp := int64(unit), 0
	for n := int64(bytes) / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB"}
	if exp >= len(units) {
		exp = len(units) - 1
	}

	result := int64(bytes) / div
	return fmt.Sprintf("%d%s", result, units[exp])
}

// panicRecoveryMiddleware intercepts panics returning HTTP 500 without crashing the process.
func (gs *GalleryServer) panicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				gs.logger.WithFields(logrus.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"panic":  err,
				}).Error("Recovered from panic in handler")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
