package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"labour-dashboard/internal/ctxkeys"
	"labour-dashboard/internal/hierarchy"
	"labour-dashboard/internal/models"
	"labour-dashboard/internal/store"
)

// AuthHandler manages officer login, logout, and profile retrieval.
type AuthHandler struct {
	store     *store.Store
	jwtSecret []byte
}

// NewAuthHandler creates an AuthHandler backed by the user store.
func NewAuthHandler(s *store.Store, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		store:     s,
		jwtSecret: []byte(jwtSecret),
	}
}

// Login authenticates an officer with email + password and returns a JWT
// token. The store's generic credential error maps to a single 401 message
// so callers cannot probe which emails exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":   "Validation failed",
			"details": errs,
		})
		return
	}

	user, err := h.store.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			JSONError(w, http.StatusUnauthorized, "Invalid credentials. Please check your email and password.")
			return
		}
		log.Printf("Login failed: %v", err)
		JSONError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := h.generateToken(user.ID, user.Role)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		JSONError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	JSON(w, http.StatusOK, models.AuthResponse{
		Token: token,
		User:  user.Sanitized(),
	})
}

// Logout discards the persisted session. The JWT itself stays valid until
// expiry; this only clears the server-side session blob.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Logout()
	JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// GetMe returns the profile of the currently authenticated officer, with
// role display metadata attached.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.GetUserID(r.Context())

	user, err := h.store.Get(userID)
	if err != nil {
		JSONError(w, http.StatusNotFound, "User not found")
		return
	}

	type MeResponse struct {
		models.UserAccount
		RoleMeta hierarchy.Meta `json:"roleMeta"`
	}

	JSON(w, http.StatusOK, MeResponse{
		UserAccount: user.Sanitized(),
		RoleMeta:    hierarchy.MetaOf(user.Role),
	})
}

// generateToken creates a signed JWT with the account id and role as
// claims. Tokens expire after 7 days.
func (h *AuthHandler) generateToken(userID string, role hierarchy.Role) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   string(role),
		"exp":    time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}
