package models

import (
	"strings"

	"labour-dashboard/internal/hierarchy"
)

// UserAccount represents a provisioned officer login. Accounts are immutable
// once created: the admin either provisions a new one or revokes an existing
// one, there is no edit operation.
//
// Password is stored as the admin supplied it — either plaintext (the seeded
// demo roster) or a bcrypt hash. It is serialized into the roster blob but
// must never leave the API; handlers return Sanitized() copies.
type UserAccount struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Password     string         `json:"password,omitempty"`
	Role         hierarchy.Role `json:"role"`
	ParentID     string         `json:"parentId,omitempty"`
	Jurisdiction string         `json:"jurisdiction"`
}

// Sanitized returns a copy safe for API responses.
func (u UserAccount) Sanitized() UserAccount {
	u.Password = ""
	return u
}

// LoginRequest contains the credentials for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that login credentials are present.
func (r *LoginRequest) Validate() map[string]string {
	errors := map[string]string{}

	if strings.TrimSpace(r.Email) == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

// CreateUserRequest contains the fields for provisioning a new officer
// account. ParentID is the supervisor mapping chosen by the admin; the
// account-creation flow offers only users whose role is the parent role of
// the chosen role.
type CreateUserRequest struct {
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	Role         hierarchy.Role `json:"role"`
	ParentID     string         `json:"parentId,omitempty"`
	Jurisdiction string         `json:"jurisdiction"`
}

// Validate checks required provisioning fields.
func (r *CreateUserRequest) Validate() map[string]string {
	errors := map[string]string{}

	if strings.TrimSpace(r.Name) == "" {
		errors["name"] = "Full name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		errors["email"] = "Email address is required"
	}
	if !r.Role.Valid() {
		errors["role"] = "Role must be one of ALO, ACL, DCL, JCL, COMMISSIONER"
	} else if r.Role == hierarchy.RoleAdmin {
		errors["role"] = "The ADMIN role cannot be provisioned"
	}
	if strings.TrimSpace(r.Jurisdiction) == "" {
		errors["jurisdiction"] = "Jurisdiction is required"
	}

	return errors
}

// AuthResponse is sent back after a successful login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserAccount `json:"user"`
}
