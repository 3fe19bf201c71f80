package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/store"
)

// MessageHandler handles messages between users.
type MessageHandler struct {
	Store store.Store
}

// List handles GET /api/messages
// @Summary List messages
// @Description Messages the principal sent or received
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Message
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /messages [get]
func (h *MessageHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	rows, err := h.Store.Messages().ListForUser(c.UserContext(), p.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(rows)
}

// Create handles POST /api/messages
// @Summary Send message
// @Description Send a message from the principal to another user
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.MessagePatch true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /messages [post]
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var patch models.MessagePatch
	if err := bindBody(c, &patch); err != nil {
		return err
	}
	if err := patch.Validate(true); err != nil {
		return err
	}
	if err := services.CheckUser(c.UserContext(), h.Store, patch.RecipientID.Int64()); err != nil {
		return err
	}

	row := &models.Message{SenderID: p.ID, Date: time.Now().UTC()}
	patch.Apply(row)
	if err := h.Store.Messages().Create(c.UserContext(), row); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

// VisitHandler handles visits between users and experts.
type VisitHandler struct {
	Store store.Store
}

// List handles GET /api/visits
// @Summary List visits
// @Description Visits where the principal is the visitor or the expert
// @Tags Visits
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Visit
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /visits [get]
func (h *VisitHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	rows, err := h.Store.Visits().ListForUser(c.UserContext(), p.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(rows)
}

// Create handles POST /api/visits
// @Summary Book visit
// @Description Book a visit of the principal with an expert
// @Tags Visits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.VisitPatch true "Visit"
// @Success 201 {object} models.Visit
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /visits [post]
func (h *VisitHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var patch models.VisitPatch
	if err := bindBody(c, &patch); err != nil {
		return err
	}
	if err := patch.Validate(true); err != nil {
		return err
	}
	if err := services.CheckUser(c.UserContext(), h.Store, patch.ExpertID.Int64()); err != nil {
		return err
	}

	row := &models.Visit{VisitorID: p.ID}
	patch.Apply(row)
	if err := h.Store.Visits().Create(c.UserContext(), row); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}
