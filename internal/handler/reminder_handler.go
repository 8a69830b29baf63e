package handler

import (
	"net/http"

	"makeupsales/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReminderHandler struct {
	uc *usecase.ReminderUsecase
}

func NewReminderHandler(uc *usecase.ReminderUsecase) *ReminderHandler {
	return &ReminderHandler{uc: uc}
}

type reminderResponse struct {
	usecase.Reminder
	ShouldNotify bool `json:"should_notify"`
}

func (h *ReminderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/reminders", h.check)
}

func (h *ReminderHandler) check(c echo.Context) error {
	r, err := h.uc.Check(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reminderResponse{Reminder: r, ShouldNotify: r.ShouldNotify()})
}
