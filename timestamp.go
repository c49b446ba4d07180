package agency

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestamp decodes a stored creation time. Besides RFC 3339 it accepts a
// bare date, read as midnight UTC, as written by older installations and
// hand edited files.
type timestamp time.Time

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = timestamp{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if v, err := time.Parse(layout, s); err == nil {
			*t = timestamp(v)
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// UnmarshalJSON decodes a stored collection.
func (c *Collection) UnmarshalJSON(data []byte) error {
	type plain Collection
	aux := struct {
		*plain
		CreatedAt timestamp `json:"createdAt"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.CreatedAt = time.Time(aux.CreatedAt)
	return nil
}

// UnmarshalJSON decodes a stored deposit.
func (d *Deposit) UnmarshalJSON(data []byte) error {
	type plain Deposit
	aux := struct {
		*plain
		CreatedAt timestamp `json:"createdAt"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.CreatedAt = time.Time(aux.CreatedAt)
	return nil
}
