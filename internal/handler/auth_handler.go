package handler

import (
	"errors"
	"net/http"

	auth "makeupsales/internal/usecase/auth_usecase"
	"makeupsales/internal/validator"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
}

// DIコンストラクタ
func NewAuthHandler(registerUC *auth.RegisterUserUsecase, loginUC *auth.LoginUsecase) *AuthHandler {
	return &AuthHandler{registerUC: registerUC, loginUC: loginUC}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
}

// POST /auth/register
func (h *AuthHandler) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var ve *validator.Error
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Reason})
		case errors.Is(err, auth.ErrEmailAlreadyExists):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "email already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, out)
}

// POST /auth/login
func (h *AuthHandler) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, out)
}
