package handler

import (
	"net/http"
	"strconv"

	"makeupsales/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}

// AppErrorの種類をHTTPステータスへ
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ae, ok := usecase.AsAppError(err); ok {
		switch ae.Kind {
		case usecase.KindInvalidArgument:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ae.Message})
		case usecase.KindNotFound:
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: ae.Message})
		case usecase.KindUnauthorized:
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: ae.Message})
		case usecase.KindConflict:
			return c.JSON(http.StatusConflict, ErrorResponse{Error: ae.Message})
		}
	}

	//500（詳細は返さない）
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
