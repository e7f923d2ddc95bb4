package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portal-service/pkg/apperr"
	"portal-service/pkg/logger"
	"portal-service/prometheus"
)

// ListTools returns every tool visible to the authenticated user
func ListTools(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	tools, err := resolver.ListToolsForUser(c.Request().Context(), userID)
	if err != nil {
		log.Error("Tool listing failed", zap.Error(err))
		prometheus.RecordPermissionError(string(apperr.CodeOf(err)))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "resolution failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"tools": tools})
}

// ListReports returns every report-type tool visible to the authenticated user
func ListReports(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	reports, err := resolver.ListReportsForUser(c.Request().Context(), userID)
	if err != nil {
		log.Error("Report listing failed", zap.Error(err))
		prometheus.RecordPermissionError(string(apperr.CodeOf(err)))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "resolution failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"reports": reports})
}

// CheckToolAccess resolves whether the user may open the tool named by slug.
// Denials are a generic "no access": the response never explains which grant
// path failed.
func CheckToolAccess(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slug is required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	allowed, err := resolver.CanAccessToolBySlug(c.Request().Context(), userID, slug)
	if err != nil {
		// Resolution failure is a deny, never an implicit allow.
		log.Error("Access resolution failed", zap.String("slug", slug), zap.Error(err))
		prometheus.RecordPermissionError(string(apperr.CodeOf(err)))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "resolution failed"})
	}

	prometheus.RecordPermissionCheck(allowed)
	if !allowed {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no access"})
	}

	return c.JSON(http.StatusOK, echo.Map{"allowed": true, "slug": slug})
}
