// Package seed carga los datos de demo de la clínica en una base vacía.
package seed

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"pawcare/internal/domain/appointments"
	"pawcare/internal/domain/pets"
	"pawcare/internal/domain/prescriptions"
	"pawcare/internal/domain/users"
)

type Repos struct {
	Pets          pets.Repository
	Appointments  appointments.Repository
	Prescriptions prescriptions.Repository
	Users         users.Repository
}

// Run siembra solo si no hay mascotas. Escribe directo en los repos: no deja entradas en la bitácora.
// Devuelve false si la base ya tenía datos.
func Run(ctx context.Context, r Repos, now time.Time) (bool, error) {
	existing, err := r.Pets.List(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: list pets: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	today := civil.DateOf(now)

	choco := pets.Pet{
		ID: uuid.NewString(), Name: "Choco", Species: "Canine", Breed: "Beagle", Gender: "Female", Age: 3,
		ContactNumber: "1234-5678", Owner: "Maria Santos", Address: "123 Mabini St.", Federation: "N/A",
		Procedures: []pets.Procedure{}, CreatedAt: now, UpdatedAt: now,
	}
	mimi := pets.Pet{
		ID: uuid.NewString(), Name: "Mimi", Species: "Feline", Breed: "Persian", Gender: "Male", Age: 2,
		ContactNumber: "2233-4455", Owner: "John Dela Cruz", Address: "45 Narra St.", Federation: "FCCI",
		Procedures: []pets.Procedure{}, CreatedAt: now, UpdatedAt: now,
	}
	for _, p := range []pets.Pet{choco, mimi} {
		if err := r.Pets.Create(ctx, p); err != nil {
			return false, fmt.Errorf("seed: pet %s: %w", p.Name, err)
		}
	}

	appt := appointments.Appointment{
		ID:     uuid.NewString(),
		PetID:  choco.ID,
		Owner:  choco.Owner,
		Date:   today.AddDays(2),
		Time:   "10:00",
		Vet:    "Dr. Cruz",
		Status: appointments.StatusPending,
	}
	if err := r.Appointments.Create(ctx, appt); err != nil {
		return false, fmt.Errorf("seed: appointment: %w", err)
	}

	rx := prescriptions.Prescription{
		ID:         uuid.NewString(),
		PetID:      choco.ID,
		PetName:    choco.Name,
		Owner:      choco.Owner,
		Drug:       "Amoxicillin",
		Dosage:     "250 mg",
		Directions: "Twice daily",
		Prescriber: "Dr. Cruz",
		Date:       today,
	}
	if err := r.Prescriptions.Create(ctx, rx); err != nil {
		return false, fmt.Errorf("seed: prescription: %w", err)
	}

	staff := []users.User{
		{Name: "Admin", Role: users.RoleAdmin},
		{Name: "Dr. Cruz", Role: users.RoleVet},
		{Name: "Daisy", Role: users.RoleReceptionist},
		{Name: "Paul", Role: users.RolePharmacist},
	}
	for _, u := range staff {
		u.ID = uuid.NewString()
		if err := r.Users.Create(ctx, u); err != nil {
			return false, fmt.Errorf("seed: user %s: %w", u.Name, err)
		}
	}
	return true, nil
}
