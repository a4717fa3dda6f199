package appointments

import (
	"strings"

	"cloud.google.com/go/civil"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved by Vet"
	StatusDone     Status = "Done"
)

// IsDone compara sin distinguir mayúsculas; registros viejos traen "done".
func (s Status) IsDone() bool {
	return strings.EqualFold(string(s), string(StatusDone))
}

// Appointment es una cita agendada para una mascota.
// CompletedAt está presente si y solo si Status es Done.
type Appointment struct {
	ID    string
	PetID string
	Owner string

	Date civil.Date
	Time string // HH:mm
	Vet  string

	Status      Status
	CompletedAt *civil.Date
}
