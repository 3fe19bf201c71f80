// common.go
//
// Shared request helpers
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
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/middleware"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
	"github.com/localnerve/shopdb/internal/utils"
)

// parseID reads the :id path parameter.
func parseID(c *fiber.Ctx) (int64, error) {
	return types.ParseID(c.Params("id"))
}

// bindBody decodes the JSON request body into v. An empty body leaves v zero
// so required-field validation reports what is missing.
func bindBody(c *fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return types.Validation("Invalid request body: %v", err)
	}
	return nil
}

// principal returns the authenticated principal or an Unauthenticated error.
func principal(c *fiber.Ctx) (*models.Principal, error) {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return nil, types.Unauthenticated("User is not authorized or token is missing")
	}
	return p, nil
}

// removed sends the confirmation of a delete.
func removed(c *fiber.Ctx, entity string, id int64) error {
	return utils.MessageResponse(c, fmt.Sprintf("Successfully removed %s with id: %d", entity, id), fiber.StatusOK)
}
