package users

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleVet          Role = "vet"
	RoleReceptionist Role = "receptionist"
	RolePharmacist   Role = "pharmacist"
)

// User es un miembro del staff. No hay login: el rol es solo informativo.
type User struct {
	ID   string
	Name string
	Role Role
}
