package oplog

import "time"

type EntryType string

const (
	TypePetCreated   EntryType = "PET_CREATED"
	TypePetUpdated   EntryType = "PET_UPDATED"
	TypePetDeleted   EntryType = "PET_DELETED"
	TypeApptCreated  EntryType = "APPT_CREATED"
	TypeApptApproved EntryType = "APPT_APPROVED"
	TypeApptDone     EntryType = "APPT_DONE"
	TypeApptDeleted  EntryType = "APPT_DELETED"
	TypeRxCreated    EntryType = "RX_CREATED"
	TypeRxDispensed  EntryType = "RX_DISPENSED"
)

// Entry es inmutable una vez escrita. PetID es referencia débil:
// sobrevive al borrado de la mascota.
type Entry struct {
	ID  string
	Seq int64 // orden de inserción; desempata timestamps iguales

	Timestamp time.Time
	Type      EntryType
	Message   string
	PetID     string // vacío si el evento no refiere a una mascota
}
