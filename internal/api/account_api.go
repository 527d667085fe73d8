package api

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"user-dashboard-service/internal/entity"
	"user-dashboard-service/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
	secret         []byte
}

// NewAccountHandler creates a new instance of AccountHandler. secret must be
// the key the service signs tokens with.
func NewAccountHandler(accountService *service.AccountService, secret []byte) *AccountHandler {
	return &AccountHandler{accountService: accountService, secret: secret}
}

// Register mounts the account routes on e.
func (h *AccountHandler) Register(e *echo.Echo) {
	e.GET("/users", h.ListAccounts)
	e.POST("/register", h.RegisterAccount)
	e.POST("/login", h.Login)
	e.DELETE("/delete", h.DeleteAccount)
	e.GET("/session", h.ValidateSession, echojwt.WithConfig(echojwt.Config{
		SigningKey: h.secret,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(service.JwtCustomClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		},
	}))
}

// ListAccounts lists registered emails --> GET /users
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.accountService.ListAccounts(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, accounts)
}

// RegisterAccount creates an account --> POST /register
func (h *AccountHandler) RegisterAccount(c echo.Context) error {
	creds := entity.Credentials{}
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.accountService.Register(c.Request().Context(), creds); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "User registered"})
}

// Login logs in an account --> POST /login
func (h *AccountHandler) Login(c echo.Context) error {
	creds := entity.Credentials{}
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	token, err := h.accountService.Login(c.Request().Context(), creds)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// DeleteAccount deletes the account named in the body --> DELETE /delete
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	req := struct {
		Email string `json:"email"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.accountService.DeleteAccount(c.Request().Context(), req.Email); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User with email " + req.Email + " deleted successfully"})
}

// ValidateSession checks the bearer token is the live session --> GET /session
func (h *AccountHandler) ValidateSession(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	claims, ok := token.Claims.(*service.JwtCustomClaims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	if err := h.accountService.ValidateSession(c.Request().Context(), claims.Email, token.Raw); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Session is valid"})
}
