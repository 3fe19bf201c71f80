// one_or_many.go
//
// Order payloads that carry one line or a list of lines
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

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OneOrMany holds the items of a field clients send either as a list or as
// a single bare object, as in {"products": {"id": 1, "quantity": 2}}.
type OneOrMany[T any] struct {
	items []T
}

func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		o.items = nil
		return nil
	case data[0] == '[':
		return json.Unmarshal(data, &o.items)
	case data[0] == '{':
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return err
		}
		o.items = []T{item}
		return nil
	}
	return fmt.Errorf("OneOrMany: expected an object or a list of objects, got %s", data)
}

// Items returns the decoded items; a single object yields one item.
func (o OneOrMany[T]) Items() []T {
	return o.items
}

