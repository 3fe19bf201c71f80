package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/store"
	"github.com/localnerve/shopdb/internal/utils"
)

// EventHandler handles events and participation.
type EventHandler struct {
	*ResourceHandler[models.Event, models.EventPatch]
	Store store.Store
}

// NewEventHandler builds the handler over the event repository.
func NewEventHandler(st store.Store) *EventHandler {
	return &EventHandler{
		ResourceHandler: &ResourceHandler[models.Event, models.EventPatch]{
			Repo:   st.Events(),
			Entity: "event",
		},
		Store: st,
	}
}

// ListForUser handles GET /api/events/user
// @Summary Joined events
// @Description List the events the principal joined, each once
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Event
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /events/user [get]
func (h *EventHandler) ListForUser(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	events, err := h.Store.Events().ListForUser(c.UserContext(), p.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(events)
}

// Join handles POST /api/events/join
// @Summary Join event
// @Description Record the principal as a participant. Joining twice records two participations.
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.JoinInput true "Event"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/join [post]
func (h *EventHandler) Join(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in services.JoinInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	eventID, err := in.Event()
	if err != nil {
		return err
	}
	event, _, err := h.Store.Events().Join(c.UserContext(), eventID, p.ID)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fmt.Sprintf("You have joined the event: %s", event.Name), fiber.StatusOK)
}

// Participants handles GET /api/events/:id/participants
// @Summary Event participants
// @Description List every participation row of an event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {array} models.EventParticipant
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id}/participants [get]
func (h *EventHandler) Participants(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if _, err := h.Store.Events().Get(c.UserContext(), id); err != nil {
		return err
	}
	rows, err := h.Store.Events().Participants(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(rows)
}
