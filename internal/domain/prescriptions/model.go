package prescriptions

import "cloud.google.com/go/civil"

// Prescription guarda una copia del nombre de la mascota y del dueño al momento
// de emitirse; no se actualiza si la ficha cambia después.
type Prescription struct {
	ID    string
	PetID string

	PetName string
	Owner   string

	Drug       string
	Dosage     string
	Directions string
	Prescriber string
	Date       civil.Date // emisión

	Dispensed   bool
	DispensedAt *civil.Date // presente si y solo si Dispensed
}
