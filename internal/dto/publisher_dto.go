package dto

import "github.com/google/uuid"

// PublishNoticiaMessage rides the in-process bus from noticia creation to the
// fan-out worker.
type PublishNoticiaMessage struct {
	NoticiaId uuid.UUID `json:"noticia_id"`
}
