package entity

import "time"

// Roles de usuario.
const (
	RoleManager    = "manager"
	RoleAuditor    = "auditor"
	RoleContractor = "contractor"
)

// User usuario de la aplicación. ContractorID solo aplica al rol contractor y
// limita sus vistas a su propio inventario.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // manager | auditor | contractor
	ContractorID string // vacío salvo rol contractor
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
