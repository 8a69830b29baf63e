package middleware

import (
	"net/http"

	"makeupsales/internal/repository"
	"makeupsales/internal/usecase"

	"github.com/labstack/echo/v4"
)

// UserGuard はトークンのユーザーがまだDBにいるか確認し、
// 監査ログ用にリクエストのctxへ操作ユーザーを入れる。
func UserGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id
			userID, ok := UserIDFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//削除済みユーザーのトークンは使えない
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			req := c.Request()
			c.SetRequest(req.WithContext(usecase.WithActor(req.Context(), userID)))
			return next(c)
		}
	}
}
