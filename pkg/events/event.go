package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "REMATE_ACTIVADO").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used across services.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published on the bus.
const (
	TypeUserRegistered  = "USER_REGISTERED"
	TypeUserLogin       = "USER_LOGIN"
	TypeRemateCreado    = "REMATE_CREADO"
	TypeRemateActivado  = "REMATE_ACTIVADO"
	TypeRemateFinalizado = "REMATE_FINALIZADO"
	TypeNoticiaPublicada = "NOTICIA_PUBLICADA"
	TypeSystemBroadcast  = "SYSTEM_BROADCAST"
)
