package domain

import (
	"encoding/json"
	"time"
)

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// UnmarshalJSON accepts snapshots written with the older "msg" field name.
func (c *ContactMessage) UnmarshalJSON(data []byte) error {
	type plain ContactMessage
	aux := struct {
		*plain
		Msg string `json:"msg"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.Message == "" {
		c.Message = aux.Msg
	}
	return nil
}
