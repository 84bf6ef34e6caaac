package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-manager/internal/api/metrics"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	admin       ports.AdminAuthenticator
}

// NewAuthHandler returns an AuthHandler. admin may be nil, in which case the
// admin login always refuses.
func NewAuthHandler(authService ports.AuthService, admin ports.AdminAuthenticator) *AuthHandler {
	return &AuthHandler{authService: authService, admin: admin}
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Status bool         `json:"status"`
	Msg    string       `json:"msg"`
	Token  string       `json:"token"`
	User   userResponse `json:"user"`
}

type adminLoginResponse struct {
	Message string `json:"message"`
	IsAdmin bool   `json:"isAdmin"`
}

// Signup creates a new account and returns a token for it.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  ValidationErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	metrics.ObserveAuth("signup", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Status: true,
		Msg:    "Account created successfully.",
		Token:  res.Token,
		User:   toUserResponse(res.User),
	})
}

// Login exchanges an email and password for a token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  ValidationErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.ObserveAuth("login", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Status: true,
		Msg:    "Login successful.",
		Token:  res.Token,
		User:   toUserResponse(res.User),
	})
}

// AdminLogin checks the static administrator credential. It issues no token.
//
// @Summary      Administrator login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Administrator credentials"
// @Success      200   {object}  adminLoginResponse
// @Failure      401   {object}  adminLoginResponse
// @Router       /api/admin-login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if h.admin == nil || !h.admin.Check(req.Username, req.Password) {
		metrics.AuthAttemptsTotal.WithLabelValues("admin", "failure").Inc()
		return c.JSON(http.StatusUnauthorized, adminLoginResponse{Message: "Invalid admin credentials"})
	}

	metrics.AuthAttemptsTotal.WithLabelValues("admin", "success").Inc()
	return c.JSON(http.StatusOK, adminLoginResponse{Message: "Admin login successful", IsAdmin: true})
}
