package seed_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	mem "pawcare/internal/adapters/storage/memory"
	"pawcare/internal/domain/appointments"
	"pawcare/internal/seed"
)

func newRepos() seed.Repos {
	return seed.Repos{
		Pets:          mem.NewPetRepo(),
		Appointments:  mem.NewAppointmentRepo(),
		Prescriptions: mem.NewPrescriptionRepo(),
		Users:         mem.NewUserRepo(),
	}
}

func TestRun_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	now := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

	seeded, err := seed.Run(ctx, r, now)
	if err != nil || !seeded {
		t.Fatalf("Run = %v, %v", seeded, err)
	}

	ps, _ := r.Pets.List(ctx)
	if len(ps) != 2 || ps[0].Name != "Choco" || ps[1].Name != "Mimi" {
		t.Fatalf("unexpected pets %+v", ps)
	}

	appts, _ := r.Appointments.List(ctx)
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appts))
	}
	a := appts[0]
	if a.PetID != ps[0].ID || a.Status != appointments.StatusPending || a.Time != "10:00" {
		t.Fatalf("unexpected appointment %+v", a)
	}
	if want := (civil.Date{Year: 2026, Month: 10, Day: 16}); a.Date != want {
		t.Fatalf("expected date %v, got %v", want, a.Date)
	}

	rxs, _ := r.Prescriptions.List(ctx)
	if len(rxs) != 1 || rxs[0].Drug != "Amoxicillin" || rxs[0].Dispensed || rxs[0].PetName != "Choco" {
		t.Fatalf("unexpected prescriptions %+v", rxs)
	}

	us, _ := r.Users.List(ctx)
	if len(us) != 4 {
		t.Fatalf("expected 4 users, got %d", len(us))
	}
}

func TestRun_SkipsWhenPetsExist(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	now := time.Now()

	if _, err := seed.Run(ctx, r, now); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	seeded, err := seed.Run(ctx, r, now)
	if err != nil || seeded {
		t.Fatalf("second Run = %v, %v", seeded, err)
	}

	us, _ := r.Users.List(ctx)
	if len(us) != 4 {
		t.Fatalf("expected users untouched, got %d", len(us))
	}
}
