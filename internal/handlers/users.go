package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/utils"
)

// UserHandler handles registration, login and the current principal.
type UserHandler struct {
	Auth *services.AuthService
}

// Register handles POST /api/users/register
// @Summary Register user
// @Description Create an account with the User role
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Account"
// @Success 201 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	if _, err := h.Auth.Register(c.UserContext(), in); err != nil {
		return err
	}
	return utils.MessageResponse(c, "User registration successful", fiber.StatusCreated)
}

// Login handles POST /api/users/login
// @Summary Login
// @Description Exchange credentials for an access token
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} services.TokenResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	token, err := h.Auth.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(token)
}

// Current handles GET /api/users/current
// @Summary Current user
// @Description Return the authenticated principal
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Principal
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /users/current [get]
func (h *UserHandler) Current(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(p)
}
