package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event names understood by the ingestor.
const (
	EventPosition  = "position_update"
	EventHeading   = "heading_update"
	EventSurvivors = "survivors_update"
	EventMap       = "map_update"
)

// Update is the payload of an inbound event. Each field is optional; a nil
// or empty field leaves that part of the state untouched.
type Update struct {
	Position  []float64   `json:"position,omitempty"`
	Direction string      `json:"direction,omitempty"`
	Survivors [][]float64 `json:"survivors,omitempty"`
}

// UnmarshalJSON accepts "points" as an alias for "survivors".
func (u *Update) UnmarshalJSON(data []byte) error {
	var aux struct {
		Position  []float64   `json:"position"`
		Direction string      `json:"direction"`
		Survivors [][]float64 `json:"survivors"`
		Points    [][]float64 `json:"points"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.Position = aux.Position
	u.Direction = aux.Direction
	u.Survivors = aux.Survivors
	if u.Survivors == nil {
		u.Survivors = aux.Points
	}
	return nil
}

// Empty reports whether the update carries no fields at all.
func (u Update) Empty() bool {
	return u.Position == nil && u.Direction == "" && u.Survivors == nil
}

// Event is a named update as delivered by a transport.
type Event struct {
	Name   string `json:"event"`
	Update Update `json:"data"`
}

// DecodeEvent parses one line of JSON. It accepts either an envelope
// {"event": name, "data": {...}} or a bare update object, which is treated
// as a map_update.
func DecodeEvent(line []byte) (Event, error) {
	var env struct {
		Name string          `json:"event"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(line, &env); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	ev := Event{Name: strings.TrimSpace(env.Name)}
	body := []byte(env.Data)
	if len(body) == 0 {
		body = line
	}
	if err := json.Unmarshal(body, &ev.Update); err != nil {
		return Event{}, fmt.Errorf("decode %s payload: %w", ev.Name, err)
	}
	if ev.Name == "" {
		ev.Name = EventMap
	}
	return ev, nil
}
