// resource.go
//
// Generic CRUD controller
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of shopdb.
// shopdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// shopdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with shopdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/store"
	"github.com/localnerve/shopdb/internal/utils"
)

// ResourceHandler serves list, get, create, update and delete of one entity.
// P is the entity's patch type, decoded from the request body.
type ResourceHandler[T any, P models.Patch[T]] struct {
	Repo   store.Repository[T]
	Entity string
	// Check validates references of a patch before it is written. Optional.
	Check func(ctx context.Context, patch P) error
}

func (h *ResourceHandler[T, P]) List(c *fiber.Ctx) error {
	rows, err := h.Repo.List(c.UserContext())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, rows, fiber.StatusOK)
}

func (h *ResourceHandler[T, P]) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	row, err := h.Repo.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, row, fiber.StatusOK)
}

func (h *ResourceHandler[T, P]) patch(c *fiber.Ctx, create bool) (P, error) {
	var patch P
	if err := bindBody(c, &patch); err != nil {
		return patch, err
	}
	if err := patch.Validate(create); err != nil {
		return patch, err
	}
	if h.Check != nil {
		if err := h.Check(c.UserContext(), patch); err != nil {
			return patch, err
		}
	}
	return patch, nil
}

func (h *ResourceHandler[T, P]) Create(c *fiber.Ctx) error {
	patch, err := h.patch(c, true)
	if err != nil {
		return err
	}
	row := new(T)
	patch.Apply(row)
	if err := h.Repo.Create(c.UserContext(), row); err != nil {
		return err
	}
	return utils.SuccessResponse(c, row, fiber.StatusCreated)
}

func (h *ResourceHandler[T, P]) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	patch, err := h.patch(c, false)
	if err != nil {
		return err
	}
	row, err := h.Repo.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, row, fiber.StatusOK)
}

func (h *ResourceHandler[T, P]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.Repo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return removed(c, h.Entity, id)
}
