// Package storagetest contiene el contrato que deben cumplir todos los adapters
// de storage. Cada adapter lo corre contra sus propias instancias.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"pawcare/internal/domain/appointments"
	"pawcare/internal/domain/oplog"
	"pawcare/internal/domain/pets"
	"pawcare/internal/domain/prescriptions"
	"pawcare/internal/domain/users"
	"pawcare/internal/platform/apperr"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func PetRepo(t *testing.T, repo pets.Repository) {
	t.Helper()
	ctx := context.Background()
	created := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	choco := pets.Pet{
		ID:            "pet-choco",
		Name:          "Choco",
		Species:       "Canine",
		Breed:         "Beagle",
		Gender:        "Female",
		Age:           3,
		ContactNumber: "0917 000 0000",
		Owner:         "Maria Santos",
		Federation:    "N/A",
		Procedures: []pets.Procedure{
			{Date: date(2026, 10, 1), Name: "Vaccination", Notes: "Rabies", Vet: "Dr. Cruz"},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
	mimi := pets.Pet{ID: "pet-mimi", Name: "Mimi", Procedures: []pets.Procedure{}, CreatedAt: created, UpdatedAt: created}

	if err := repo.Create(ctx, choco); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := repo.Create(ctx, mimi); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := repo.Create(ctx, choco); err == nil {
		t.Fatalf("duplicate Create should fail")
	}

	got, err := repo.GetByID(ctx, choco.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Name != "Choco" || got.Age != 3 || got.ContactNumber != choco.ContactNumber || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected pet %+v", got)
	}
	if len(got.Procedures) != 1 || got.Procedures[0] != choco.Procedures[0] {
		t.Fatalf("unexpected procedures %+v", got.Procedures)
	}

	// la copia devuelta no debe compartir memoria con lo guardado
	got.Procedures[0].Name = "mutated"
	again, _ := repo.GetByID(ctx, choco.ID)
	if again.Procedures[0].Name != "Vaccination" {
		t.Fatalf("stored procedures were mutated through a returned copy")
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || list[0].ID != choco.ID || list[1].ID != mimi.ID {
		t.Fatalf("List should keep insertion order, got %+v", list)
	}
	if list[1].Procedures == nil {
		t.Fatalf("procedures must never be nil")
	}

	choco.Photo = "/uploads/1_abc_choco.png"
	choco.PhotoThumbnail = "/uploads/thumbs/1_abc_choco.png"
	choco.Procedures = append(choco.Procedures, pets.Procedure{Date: date(2026, 10, 14), Name: "Deworming"})
	choco.UpdatedAt = created.Add(time.Hour)
	if err := repo.Update(ctx, choco); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got, _ = repo.GetByID(ctx, choco.ID)
	if got.Photo != choco.Photo || got.PhotoThumbnail != choco.PhotoThumbnail || len(got.Procedures) != 2 {
		t.Fatalf("update not persisted: %+v", got)
	}
	if !got.UpdatedAt.Equal(choco.UpdatedAt) {
		t.Fatalf("expected updated_at %v, got %v", choco.UpdatedAt, got.UpdatedAt)
	}

	if err := repo.Update(ctx, pets.Pet{ID: "missing"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Update missing: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetByID missing: expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, choco.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := repo.Delete(ctx, choco.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second Delete: expected ErrNotFound, got %v", err)
	}
	list, _ = repo.List(ctx)
	if len(list) != 1 || list[0].ID != mimi.ID {
		t.Fatalf("unexpected list after delete %+v", list)
	}
}

func AppointmentRepo(t *testing.T, repo appointments.Repository) {
	t.Helper()
	ctx := context.Background()

	a := appointments.Appointment{
		ID:     "appt-1",
		PetID:  "pet-choco",
		Owner:  "Maria Santos",
		Date:   date(2026, 10, 16),
		Time:   "10:00",
		Vet:    "Dr. Cruz",
		Status: appointments.StatusPending,
	}
	b := appointments.Appointment{ID: "appt-2", PetID: "pet-mimi", Status: appointments.StatusPending}

	for _, v := range []appointments.Appointment{a, b} {
		if err := repo.Create(ctx, v); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got != a {
		t.Fatalf("expected %+v, got %+v", a, got)
	}

	done := date(2026, 10, 16)
	a.Status = appointments.StatusDone
	a.CompletedAt = &done
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got, _ = repo.GetByID(ctx, a.ID)
	if got.Status != appointments.StatusDone || got.CompletedAt == nil || *got.CompletedAt != done {
		t.Fatalf("unexpected completed %+v", got)
	}

	a.Status = appointments.StatusApproved
	a.CompletedAt = nil
	_ = repo.Update(ctx, a)
	got, _ = repo.GetByID(ctx, a.ID)
	if got.CompletedAt != nil {
		t.Fatalf("completion date should be cleared, got %v", got.CompletedAt)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != b.ID {
		t.Fatalf("List should keep insertion order, got %+v", list)
	}

	if err := repo.Update(ctx, appointments.Appointment{ID: "missing"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Update missing: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.GetByID(ctx, a.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetByID after delete: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, a.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func PrescriptionRepo(t *testing.T, repo prescriptions.Repository) {
	t.Helper()
	ctx := context.Background()

	p := prescriptions.Prescription{
		ID:         "rx-1",
		PetID:      "pet-choco",
		PetName:    "Choco",
		Owner:      "Maria Santos",
		Drug:       "Amoxicillin",
		Dosage:     "250 mg",
		Directions: "Twice a day for 7 days",
		Prescriber: "Dr. Cruz",
		Date:       date(2026, 10, 14),
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got != p {
		t.Fatalf("expected %+v, got %+v", p, got)
	}

	dispensed := date(2026, 10, 15)
	p.Dispensed = true
	p.DispensedAt = &dispensed
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got, _ = repo.GetByID(ctx, p.ID)
	if !got.Dispensed || got.DispensedAt == nil || *got.DispensedAt != dispensed {
		t.Fatalf("unexpected dispensed %+v", got)
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List: %v %+v", err, list)
	}

	if err := repo.Update(ctx, prescriptions.Prescription{ID: "missing"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Update missing: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := repo.Delete(ctx, p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func UserRepo(t *testing.T, repo users.Repository) {
	t.Helper()
	ctx := context.Background()

	staff := []users.User{
		{ID: "u-1", Name: "Admin", Role: users.RoleAdmin},
		{ID: "u-2", Name: "Dr. Cruz", Role: users.RoleVet},
		{ID: "u-3", Name: "Daisy", Role: users.RoleReceptionist},
	}
	for _, u := range staff {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	for i := range staff {
		if list[i] != staff[i] {
			t.Fatalf("List[%d] = %+v, want %+v", i, list[i], staff[i])
		}
	}

	staff[2].Role = users.RolePharmacist
	if err := repo.Update(ctx, staff[2]); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got, _ := repo.GetByID(ctx, "u-3"); got.Role != users.RolePharmacist {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := repo.Update(ctx, users.User{ID: "missing"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Update missing: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "u-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.GetByID(ctx, "u-1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetByID after delete: expected ErrNotFound, got %v", err)
	}
}

// OplogRepo verifica el filtro por día inclusivo y el orden (timestamp, seq).
func OplogRepo(t *testing.T, repo oplog.Repository) {
	t.Helper()
	ctx := context.Background()

	same := time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC)
	entries := []oplog.Entry{
		{ID: "e-1", Timestamp: time.Date(2026, 10, 9, 23, 59, 59, 0, time.UTC), Type: oplog.TypePetCreated, Message: "Added pet Old"},
		{ID: "e-2", Timestamp: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC), Type: oplog.TypePetCreated, Message: "Added pet Choco", PetID: "pet-choco"},
		{ID: "e-3", Timestamp: same, Type: oplog.TypeApptCreated, Message: "first"},
		{ID: "e-4", Timestamp: same, Type: oplog.TypeApptApproved, Message: "second"},
		{ID: "e-5", Timestamp: time.Date(2026, 10, 12, 23, 59, 59, 999, time.UTC), Type: oplog.TypeRxDispensed, Message: "last"},
		{ID: "e-6", Timestamp: time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), Type: oplog.TypeApptDeleted},
	}

	var lastSeq int64
	for _, e := range entries {
		stored, err := repo.Create(ctx, e)
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if stored.Seq <= lastSeq {
			t.Fatalf("seq must increase: %d after %d", stored.Seq, lastSeq)
		}
		lastSeq = stored.Seq
	}

	got, err := repo.ListBetween(ctx, date(2026, 10, 10), date(2026, 10, 12))
	if err != nil {
		t.Fatalf("ListBetween returned error: %v", err)
	}

	wantIDs := []string{"e-2", "e-3", "e-4", "e-5"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d entries, got %d (%+v)", len(wantIDs), len(got), got)
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("entry %d = %s, want %s", i, got[i].ID, id)
		}
	}
	if got[0].PetID != "pet-choco" || got[0].Message != "Added pet Choco" || got[0].Type != oplog.TypePetCreated {
		t.Fatalf("unexpected entry %+v", got[0])
	}
	if !got[3].Timestamp.Equal(entries[4].Timestamp) {
		t.Fatalf("timestamp precision lost: %v vs %v", got[3].Timestamp, entries[4].Timestamp)
	}

	empty, err := repo.ListBetween(ctx, date(2026, 11, 1), date(2026, 11, 30))
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty window, got %v %+v", err, empty)
	}
}
