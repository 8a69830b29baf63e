package handler

import (
	"net/http"
	"strconv"
	"time"

	"makeupsales/internal/domain/model"
	"makeupsales/internal/repository"
	"makeupsales/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuditLogHandler struct {
	uc *usecase.AuditLogUsecase
}

func NewAuditLogHandler(uc *usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

func (h *AuditLogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/audit-logs", h.list)
}

func (h *AuditLogHandler) list(c echo.Context) error {
	var f repository.AuditLogFilter

	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		f.Limit = l
	}
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		f.Offset = o
	}
	if v := c.QueryParam("actor_user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid actor_user_id"})
		}
		f.ActorUserID = &id
	}
	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := c.QueryParam("resource_type"); v != "" {
		rt := model.AuditResourceType(v)
		f.ResourceType = &rt
	}
	if v := c.QueryParam("resource_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid resource_id"})
		}
		f.ResourceID = &id
	}
	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		f.CreatedFrom = &tm
	}
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		f.CreatedTo = &tm
	}

	logs, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
