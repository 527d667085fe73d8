package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"user-dashboard-service/internal/entity"
	"user-dashboard-service/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register mounts the user routes on e.
func (h *UserHandler) Register(e *echo.Echo) {
	e.GET("/users", h.ListUsers)
	e.POST("/users", h.CreateUser)
	e.PUT("/users/:id", h.UpdateUser)
	e.DELETE("/users/:id", h.DeleteUser)
}

// ListUsers returns the first page of users --> GET /users
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser creates a new user --> POST /users
func (h *UserHandler) CreateUser(c echo.Context) error {
	in := entity.UserInput{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	if _, err := h.userService.CreateUser(c.Request().Context(), in); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "User added successfully"})
}

// UpdateUser replaces name and date of birth --> PUT /users/:id
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	in := entity.UserInput{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	if _, err := h.userService.UpdateUser(c.Request().Context(), id, in); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User updated successfully"})
}

// DeleteUser deletes a user and renumbers the rest --> DELETE /users/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted and IDs reordered!"})
}
