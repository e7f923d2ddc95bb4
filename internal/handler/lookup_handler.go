package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portal-service/internal/extdb"
	"portal-service/internal/model"
	"portal-service/pkg/logger"
)

// lookupClient resolves the external database client for the tool the user
// is working in. The tool must be accessible to the user and carry an
// external connection.
func lookupClient(c echo.Context) (*extdb.Client, error) {
	log := logger.FromEcho(c)

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	slug := c.QueryParam("tool")
	if slug == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "tool is required")
	}

	ctx := c.Request().Context()
	allowed, err := resolver.CanAccessToolBySlug(ctx, userID, slug)
	if err != nil {
		log.Error("Access resolution failed", zap.String("slug", slug), zap.Error(err))
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "resolution failed")
	}
	if !allowed {
		return nil, echo.NewHTTPError(http.StatusForbidden, "no access")
	}

	tool, err := entities.FindToolBySlug(ctx, slug)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "tool not found")
	}
	if tool.DBConnectionID == nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "tool has no external database")
	}

	var conn model.DBConnection
	if err := entities.DB().WithContext(ctx).First(&conn, *tool.DBConnectionID).Error; err != nil {
		log.Error("External connection not found", zap.Uint("id", *tool.DBConnectionID), zap.Error(err))
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "external database not configured")
	}

	client, err := extPools.ClientFor(ctx, conn.ID, conn.DSN)
	if err != nil {
		log.Error("External database unavailable", zap.Uint("connection_id", conn.ID), zap.Error(err))
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "external database unavailable")
	}
	return client, nil
}

// ListCostCenters passes through the customer's cost-center table
func ListCostCenters(c echo.Context) error {
	log := logger.FromEcho(c)

	client, err := lookupClient(c)
	if err != nil {
		return err
	}

	centers, err := client.CostCenters(c.Request().Context())
	if err != nil {
		log.Error("Cost center lookup failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "lookup failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"cost_centers": centers})
}

// ListExpenseTypes passes through the customer's expense-type table
func ListExpenseTypes(c echo.Context) error {
	log := logger.FromEcho(c)

	client, err := lookupClient(c)
	if err != nil {
		return err
	}

	types, err := client.ExpenseTypes(c.Request().Context())
	if err != nil {
		log.Error("Expense type lookup failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "lookup failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"expense_types": types})
}
