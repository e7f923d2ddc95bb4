package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portal-service/internal/model"
	"portal-service/pkg/logger"
	"portal-service/prometheus"
)

// CreateToolGrant grants a tool to a principal. Grants are binary rows:
// rescoping means delete and recreate.
func CreateToolGrant(c echo.Context) error {
	log := logger.FromEcho(c)

	adminID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		ToolID        uint   `json:"tool_id"`
		PrincipalType string `json:"principal_type"`
		PrincipalID   uint   `json:"principal_id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse grant request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	principalType := model.PrincipalType(req.PrincipalType)
	if req.ToolID == 0 || req.PrincipalID == 0 || !principalType.IsValid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tool_id, principal_type and principal_id are required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	grant := model.ToolPermission{
		ToolID:        req.ToolID,
		PrincipalType: principalType,
		PrincipalID:   req.PrincipalID,
	}
	if result := entities.DB().WithContext(c.Request().Context()).Create(&grant); result.Error != nil {
		log.Error("Failed to create tool grant", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "grant creation failed"})
	}

	auditor.Record(c.Request().Context(), adminID, "create", "tool_permission", grant.ID,
		fmt.Sprintf("tool=%d %s=%d", grant.ToolID, grant.PrincipalType, grant.PrincipalID))

	log.Info("Tool grant created",
		zap.Uint("tool_id", grant.ToolID),
		zap.String("principal_type", string(grant.PrincipalType)),
		zap.Uint("principal_id", grant.PrincipalID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Grant created successfully",
		"grant":   grant,
	})
}

// DeleteToolGrant revokes a tool grant
func DeleteToolGrant(c echo.Context) error {
	log := logger.FromEcho(c)

	adminID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		ToolID        uint   `json:"tool_id"`
		PrincipalType string `json:"principal_type"`
		PrincipalID   uint   `json:"principal_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	principalType := model.PrincipalType(req.PrincipalType)
	if req.ToolID == 0 || req.PrincipalID == 0 || !principalType.IsValid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tool_id, principal_type and principal_id are required"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := entities.DB().WithContext(c.Request().Context()).
		Where("tool_id = ? AND principal_type = ? AND principal_id = ?",
			req.ToolID, principalType, req.PrincipalID).
		Delete(&model.ToolPermission{})
	if result.Error != nil {
		log.Error("Failed to delete tool grant", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "grant deletion failed"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "grant not found"})
	}

	auditor.Record(c.Request().Context(), adminID, "delete", "tool_permission", req.ToolID,
		fmt.Sprintf("tool=%d %s=%d", req.ToolID, principalType, req.PrincipalID))

	return c.JSON(http.StatusOK, echo.Map{"message": "Grant revoked successfully"})
}

// CreateClientGrant grants a user direct access to a client
func CreateClientGrant(c echo.Context) error {
	log := logger.FromEcho(c)

	adminID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		UserID   uint `json:"user_id"`
		ClientID uint `json:"client_id"`
	}
	if err := c.Bind(&req); err != nil || req.UserID == 0 || req.ClientID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and client_id are required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	grant := model.UserClientPermission{UserID: req.UserID, ClientID: req.ClientID}
	if result := entities.DB().WithContext(c.Request().Context()).Create(&grant); result.Error != nil {
		log.Error("Failed to create client grant", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "grant creation failed"})
	}

	auditor.Record(c.Request().Context(), adminID, "create", "user_client_permission", grant.ID,
		fmt.Sprintf("user=%d client=%d", grant.UserID, grant.ClientID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Grant created successfully",
		"grant":   grant,
	})
}

// DeleteClientGrant revokes a user's direct client access
func DeleteClientGrant(c echo.Context) error {
	log := logger.FromEcho(c)

	adminID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		UserID   uint `json:"user_id"`
		ClientID uint `json:"client_id"`
	}
	if err := c.Bind(&req); err != nil || req.UserID == 0 || req.ClientID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and client_id are required"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := entities.DB().WithContext(c.Request().Context()).
		Where("user_id = ? AND client_id = ?", req.UserID, req.ClientID).
		Delete(&model.UserClientPermission{})
	if result.Error != nil {
		log.Error("Failed to delete client grant", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "grant deletion failed"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "grant not found"})
	}

	auditor.Record(c.Request().Context(), adminID, "delete", "user_client_permission", req.ClientID,
		fmt.Sprintf("user=%d client=%d", req.UserID, req.ClientID))

	return c.JSON(http.StatusOK, echo.Map{"message": "Grant revoked successfully"})
}
