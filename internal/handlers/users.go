package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"labour-dashboard/internal/hierarchy"
	"labour-dashboard/internal/models"
	"labour-dashboard/internal/store"
)

// UserHandler is the admin user-management surface: list, provision, and
// revoke officer accounts. Accounts are immutable once created — there is no
// update operation.
type UserHandler struct {
	store *store.Store
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// List returns the full roster with credentials stripped, plus the roles an
// admin may provision.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users := h.store.List()
	sanitized := make([]models.UserAccount, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitized())
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"users":           sanitized,
		"count":           len(sanitized),
		"assignableRoles": hierarchy.Assignable(),
	})
}

// Supervisors returns the accounts eligible to supervise a new account of
// the given ?role=. Eligible supervisors hold exactly the parent role of the
// requested role; top-level roles have none.
func (h *UserHandler) Supervisors(w http.ResponseWriter, r *http.Request) {
	role := hierarchy.Role(r.URL.Query().Get("role"))
	if !role.Valid() {
		JSONError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	supervisors := []models.UserAccount{}
	if parent, ok := hierarchy.ParentOf(role); ok {
		for _, u := range h.store.List() {
			if u.Role == parent {
				supervisors = append(supervisors, u.Sanitized())
			}
		}
	}

	JSON(w, http.StatusOK, map[string]interface{}{"supervisors": supervisors})
}

// Create provisions a new officer account. The password is bcrypt-hashed
// before it enters the roster; an empty password leaves the account on the
// universal fallback only. The supervisor mapping, when given, must point at
// an existing account holding the new account's parent role.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	errs := req.Validate()
	if req.ParentID != "" && len(errs) == 0 {
		if err := h.checkSupervisor(req.Role, req.ParentID); err != nil {
			errs["parentId"] = err.Error()
		}
	}
	if len(errs) > 0 {
		JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":   "Validation failed",
			"details": errs,
		})
		return
	}

	password := ""
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[users] password hash failed: %v", err)
			JSONError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}
		password = string(hash)
	}

	created, err := h.store.AddUser(models.UserAccount{
		Name:         req.Name,
		Email:        req.Email,
		Password:     password,
		Role:         req.Role,
		ParentID:     req.ParentID,
		Jurisdiction: req.Jurisdiction,
	})
	if err != nil {
		log.Printf("[users] create failed: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    created.Sanitized(),
	})
}

// Delete revokes an account by id.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteUser(id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			JSONError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("[users] delete failed: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// checkSupervisor verifies the supervisor mapping for a new account.
func (h *UserHandler) checkSupervisor(role hierarchy.Role, parentID string) error {
	parentRole, ok := hierarchy.ParentOf(role)
	if !ok {
		return errors.New("This role is top-level and cannot have a supervisor")
	}

	parent, err := h.store.Get(parentID)
	if err != nil {
		return errors.New("Supervisor account not found")
	}
	if parent.Role != parentRole {
		return errors.New("Supervisor must hold the role " + string(parentRole))
	}
	return nil
}
