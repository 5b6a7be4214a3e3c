package collaborators

import "time"

// Role define la función del colaborador dentro del haras.
// @Enum groom, veterinarian, farrier, instructor, trainer, administrator, security, general_services, driver, other
type Role string

const (
	RoleGroom           Role = "groom"
	RoleVeterinarian    Role = "veterinarian"
	RoleFarrier         Role = "farrier"
	RoleInstructor      Role = "instructor"
	RoleTrainer         Role = "trainer"
	RoleAdministrator   Role = "administrator"
	RoleSecurity        Role = "security"
	RoleGeneralServices Role = "general_services"
	RoleDriver          Role = "driver"
	RoleOther           Role = "other"
)

// Status define si el colaborador sigue en actividad.
// @Enum active, inactive
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Collaborator representa a una persona que trabaja en el haras.
type Collaborator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`

	AdmissionDate *time.Time `json:"admissionDate,omitempty"`
	Status        Status     `json:"status"`
	Notes         string     `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func validRole(r Role) bool {
	switch r {
	case RoleGroom, RoleVeterinarian, RoleFarrier, RoleInstructor, RoleTrainer,
		RoleAdministrator, RoleSecurity, RoleGeneralServices, RoleDriver, RoleOther:
		return true
	}
	return false
}

func validStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}
