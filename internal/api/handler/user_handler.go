package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskatlas/task-manager-api/internal/api/metrics"
	"github.com/taskatlas/task-manager-api/internal/core/domain"
	"github.com/taskatlas/task-manager-api/internal/core/ports"
)

// UserHandler handles the user administration endpoints. Domain errors
// propagate to the central HTTP error handler, which maps them to status
// codes.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles POST /api/users/v1.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userRequest  true  "User details"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users/v1 [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.userService.Create(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List handles GET /api/users/v1.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /api/users/v1 [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetByID handles GET /api/users/v1/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /api/users/v1/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.userService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetByRole handles GET /api/users/v1/role?role=.
//
// @Summary      List users by role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  true  "Role"
// @Success      200   {array}   domain.User
// @Failure      400   {object}  errorResponse
// @Router       /api/users/v1/role [get]
func (h *UserHandler) GetByRole(c echo.Context) error {
	role, err := domain.ParseRole(c.QueryParam("role"))
	if err != nil {
		return err
	}

	users, err := h.userService.GetByRole(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Update handles PUT /api/users/v1/:id.
//
// @Summary      Update a user record
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Updated fields"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Router       /api/users/v1/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.userService.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateEmail handles PUT /api/users/v1/update-email?id=&email=.
//
// @Summary      Update a user's email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id     query     string  true  "User id"
// @Param        email  query     string  true  "New email"
// @Success      200    {object}  domain.User
// @Failure      404    {object}  errorResponse
// @Router       /api/users/v1/update-email [put]
func (h *UserHandler) UpdateEmail(c echo.Context) error {
	user, err := h.userService.UpdateEmail(c.Request().Context(), c.QueryParam("id"), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateName handles PUT /api/users/v1/update-name?id=&name=.
//
// @Summary      Update a user's name
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id    query     string  true  "User id"
// @Param        name  query     string  true  "New name"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Router       /api/users/v1/update-name [put]
func (h *UserHandler) UpdateName(c echo.Context) error {
	user, err := h.userService.UpdateName(c.Request().Context(), c.QueryParam("id"), c.QueryParam("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/v1?id=.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  query  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/users/v1 [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.QueryParam("id")); err != nil {
		return err
	}
	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
