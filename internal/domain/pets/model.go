package pets

import (
	"time"

	"cloud.google.com/go/civil"
)

// Procedure vive embebido en la mascota; no tiene identidad propia.
type Procedure struct {
	Date  civil.Date
	Name  string
	Notes string
	Vet   string
}

// Pet es la ficha de una mascota registrada en la clínica.
type Pet struct {
	ID string

	Name    string
	Species string // texto libre: Canine, Feline, ...
	Breed   string
	Gender  string
	Age     int

	ContactNumber string
	Microchip     string

	Owner      string
	Address    string
	Federation string // afiliación (club/federación), "N/A" si no aplica

	Photo          string // URL (/uploads/...) o data URL enviada por el cliente
	PhotoThumbnail string

	Procedures []Procedure // nunca nil

	CreatedAt time.Time
	UpdatedAt time.Time
}
