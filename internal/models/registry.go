package models

// All lists every persisted entity, in migration order.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&Brand{},
		&Category{},
		&Product{},
		&Event{},
		&EventParticipant{},
		&Order{},
		&OrderProduct{},
		&Message{},
		&Visit{},
	}
}
