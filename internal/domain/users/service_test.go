package users

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) List(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestService_Create_NormalizesRole(t *testing.T) {
	svc := NewService(newTestRepo())

	u, err := svc.Create(context.Background(), Input{Name: " Dr. Cruz ", Role: " Vet "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if u.ID == "" || u.Name != "Dr. Cruz" || u.Role != RoleVet {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestService_Create_Validates(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []struct {
		in   Input
		want string
	}{
		{Input{Role: RoleAdmin}, "Name is required"},
		{Input{Name: "Daisy"}, "Role is required"},
		{Input{Name: "Daisy", Role: "janitor"}, "Role must be one of"},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), tc.in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", tc.in, err)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("expected %q in %q", tc.want, err.Error())
		}
	}
}

func TestService_UpdateAndDelete(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	u, _ := svc.Create(context.Background(), Input{Name: "Paul", Role: RolePharmacist})

	got, err := svc.Update(context.Background(), u.ID, Input{Name: "Paul R.", Role: RoleReceptionist})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.ID != u.ID || got.Name != "Paul R." || got.Role != RoleReceptionist {
		t.Fatalf("unexpected user %+v", got)
	}

	if _, err := svc.Update(context.Background(), u.ID, Input{Name: "Paul", Role: "boss"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.byID[u.ID].Role != RoleReceptionist {
		t.Fatalf("invalid update must not persist")
	}

	if err := svc.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), u.ID, Input{Name: "x", Role: RoleAdmin}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}
