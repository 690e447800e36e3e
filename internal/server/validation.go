package server

import (
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"courtside/internal/feed"

	"github.com/sirupsen/logrus"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationResult contains validation results
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// respondWithValidationError sends a structured validation error response
func (gs *GalleryServer) respondWithValidationError(w http.ResponseWriter, r *http.Request, errors []ValidationError) {
	gs.logger.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"errors": errors,
	}).Warn("Validation failed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	result := ValidationResult{
		Valid:  false,
		Errors: errors,
	}

	gs.respondJSON(w, result)
}

// respondWithError sends a structured error response
func (gs *GalleryServer) respondWithError(w http.ResponseWriter, r *http.Request, statusCode int, message string, err error) {
	logEntry := gs.logger.WithFields(logrus.Fields{
		"method":      r.Method,
		"path":        r.URL.Path,
		"status_code": statusCode,
		"message":     message,
	})

	if err != nil {
		logEntry = logEntry.WithError(err)
	}

	if statusCode >= 500 {
		logEntry.Error("Server error")
	} else {
		logEntry.Warn("Client error")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := map[string]interface{}{
		"error":   message,
		"code":    statusCode,
		"success": false,
	}

	gs.respondJSON(w, response)
}

// playerSlugPattern matches the slugs the archive derives from player
// names: lowercase words joined by single hyphens.
var playerSlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// validatePlayerSlug validates a player slug from the URL path
func (gs *GalleryServer) validatePlayerSlug(slug string) (string, *ValidationError) {
	if slug == "" {
		return "", &ValidationError{
			Field:   "player_slug",
			Message: "Player slug is required",
			Code:    "MISSING_PLAYER_SLUG",
		}
	}

	if len(slug) > 100 {
		return "", &ValidationError{
			Field:   "player_slug",
			Message: "Player slug too long (max 100 characters)",
			Code:    "PLAYER_SLUG_TOO_LONG",
		}
	}

	if !playerSlugPattern.MatchString(slug) {
		return "", &ValidationError{
			Field:   "player_slug",
			Message: "Player slug must be lowercase letters, digits, and hyphens",
			Code:    "INVALID_PLAYER_SLUG_FORMAT",
		}
	}

	return slug, nil
}

// validateSearchQuery validates search query parameters
func (gs *GalleryServer) validateSearchQuery(query string) *ValidationError {
	if len(query) > 200 {
		return &ValidationError{
			Field:   "search",
			Message: "Search query too long (max 200 characters)",
			Code:    "SEARCH_QUERY_TOO_LONG",
		}
	}

	// Check for potentially dangerous characters
	if strings.Contains(query, "\x00") {
		return &ValidationError{
			Field:   "search",
			Message: "Search query contains invalid characters",
			Code:    "INVALID_SEARCH_CHARACTERS",
		}
	}

	return nil
}

// validateLimit validates and parses the limit query parameter
func (gs *GalleryServer) validateLimit(limitStr string) (int, *ValidationError) {
	if limitStr == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return 0, &ValidationError{
			Field:   "limit",
			Message: "Limit must be a valid integer",
			Code:    "INVALID_LIMIT_FORMAT",
		}
	}

	if limit < 0 {
		return 0, &ValidationError{
			Field:   "limit",
			Message: "Limit cannot be negative",
			Code:    "INVALID_LIMIT_VALUE",
		}
	}

	if limit > 1000 {
		return 0, &ValidationError{
			Field:   "limit",
			Message: "Limit too large (max 1000)",
			Code:    "LIMIT_TOO_LARGE",
		}
	}

	return limit, nil
}

// validateRecentDays validates and parses the recent query parameter
func (gs *GalleryServer) validateRecentDays(recentStr string) (int, *ValidationError) {
	if recentStr == "" {
		return 0, nil
	}

	days, err := strconv.Atoi(recentStr)
	if err != nil {
		return 0, &ValidationError{
			Field:   "recent",
			Message: "Recent days must be a valid integer",
			Code:    "INVALID_RECENT_FORMAT",
		}
	}

	if days <= 0 {
		return 0, &ValidationError{
			Field:   "recent",
			Message: "Recent days must be positive",
			Code:    "INVALID_RECENT_VALUE",
		}
	}

	if days > 3650 {
		return 0, &ValidationError{
			Field:   "recent",
			Message: "Recent days too large (max 3650)",
			Code:    "RECENT_TOO_LARGE",
		}
	}

	return days, nil
}

// validateFeedPath ensures an ingest request names a real feed file inside
// the configured incoming directory
func (gs *GalleryServer) validateFeedPath(path string) *ValidationError {
	if path == "" {
		return &ValidationError{
			Field:   "path",
			Message: "Feed path is required",
			Code:    "MISSING_FEED_PATH",
		}
	}

	if !feed.IsFeedFile(path) {
		return &ValidationError{
			Field:   "path",
			Message: "Feed path must name a JSON feed file",
			Code:    "INVALID_FEED_FILE",
		}
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return &ValidationError{
			Field:   "path",
			Message: "Invalid feed path",
			Code:    "INVALID_FEED_PATH",
		}
	}

	absFeedDir, err := filepath.Abs(gs.config.Feeds.IncomingDir)
	if err != nil {
		return &ValidationError{
			Field:   "path",
			Message: "Server configuration error",
			Code:    "CONFIG_ERROR",
		}
	}

	// Check the file is within the incoming directory
	relPath, err := filepath.Rel(absFeedDir, absPath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return &ValidationError{
			Field:   "path",
			Message: "Feed path outside allowed directory",
			Code:    "PATH_TRAVERSAL_DENIED",
		}
	}

	if _, err := os.Stat(absPath); err != nil {
		return &ValidationError{
			Field:   "path",
			Message: "Feed file not found",
			Code:    "FEED_NOT_FOUND",
		}
	}

	return nil
}

// sanitizeInput sanitizes user input to prevent injection attacks
func sanitizeInput(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Trim whitespace
	input = strings.TrimSpace(input)

	return input
}
