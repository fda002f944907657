// Package store owns the user roster and the active session. State lives in
// memory and is flushed through a BlobStore adapter on every mutation;
// corrupt or missing persisted state falls back to the seed roster rather
// than failing startup.
package store

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"labour-dashboard/internal/hierarchy"
	"labour-dashboard/internal/models"
)

// Blob names. Kept verbatim from the browser build so an exported
// localStorage dump can be dropped into the file backend unchanged.
const (
	usersBlob   = "labour_users"
	sessionBlob = "labour_session"
)

// Demo credential shortcuts carried over from the browser build for parity.
// The universal fallback password and the hardcoded admin pair are known
// security defects — see DESIGN.md before deploying this outside a demo.
const (
	fallbackPassword = "123456"
	adminEmail       = "admin@telangana.gov.in"
	adminPassword    = "admin123"
)

var (
	// ErrInvalidCredentials deliberately does not distinguish an unknown
	// email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned for lookups and deletes of unknown ids.
	ErrUserNotFound = errors.New("user not found")
)

// SeedUsers returns the roster installed on first run or whenever the
// persisted roster cannot be read.
func SeedUsers() []models.UserAccount {
	return []models.UserAccount{
		{ID: "usr-1", Name: "Commissioner Rajesh", Email: "col@labour.ts.gov.in", Password: "password", Role: hierarchy.RoleCommissioner, Jurisdiction: "State-wide"},
		{ID: "usr-2", Name: "JCL Srinivas", Email: "jcl.hyd@labour.ts.gov.in", Password: "password", Role: hierarchy.RoleJCL, ParentID: "usr-1", Jurisdiction: "Hyderabad Region"},
		{ID: "usr-3", Name: "DCL Anitha", Email: "dcl.south@labour.ts.gov.in", Password: "password", Role: hierarchy.RoleDCL, ParentID: "usr-2", Jurisdiction: "South Zone"},
		{ID: "usr-4", Name: "ACL Mahesh", Email: "acl.circle1@labour.ts.gov.in", Password: "password", Role: hierarchy.RoleACL, ParentID: "usr-3", Jurisdiction: "Circle 1"},
		{ID: "usr-5", Name: "ALO Venkat", Email: "alo.area1@labour.ts.gov.in", Password: "password", Role: hierarchy.RoleALO, ParentID: "usr-4", Jurisdiction: "Area 1"},
	}
}

// adminAccount is the built-in ADMIN login. It is never part of the roster.
func adminAccount() models.UserAccount {
	return models.UserAccount{
		ID:           "admin-id",
		Name:         "System Admin",
		Email:        adminEmail,
		Role:         hierarchy.RoleAdmin,
		Jurisdiction: "State-wide",
	}
}

// Store is the in-memory roster + session, persisted through a BlobStore.
type Store struct {
	mu      sync.RWMutex
	blobs   BlobStore
	users   []models.UserAccount
	session *models.UserAccount
}

// New restores persisted state from the blob store. Unreadable or corrupt
// blobs are diagnostic-logged and replaced with defaults; startup never
// fails on bad persisted state.
func New(blobs BlobStore) *Store {
	s := &Store{blobs: blobs}

	restored := false
	if data, err := blobs.Read(usersBlob); err == nil {
		var users []models.UserAccount
		if jsonErr := json.Unmarshal(data, &users); jsonErr != nil {
			log.Printf("[store] persisted roster unreadable, using seed: %v", jsonErr)
		} else if users == nil {
			log.Printf("[store] persisted roster is null, using seed")
		} else {
			// An empty roster is a valid persisted state: revoking every
			// account must survive a restart, not resurrect the seed.
			s.users = users
			restored = true
		}
	} else if !errors.Is(err, ErrBlobNotFound) {
		log.Printf("[store] roster read failed, using seed: %v", err)
	}
	if !restored {
		s.users = SeedUsers()
		s.flushUsers()
	}

	if data, err := blobs.Read(sessionBlob); err == nil {
		var sess models.UserAccount
		if jsonErr := json.Unmarshal(data, &sess); jsonErr == nil && sess.ID != "" {
			s.session = &sess
		} else {
			log.Printf("[store] persisted session unreadable, discarding: %v", jsonErr)
		}
	}

	return s
}

// MatchPassword compares a supplied password against the stored credential.
// Seeded and legacy accounts store plaintext; admin-provisioned accounts may
// store a bcrypt hash instead.
func MatchPassword(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return stored == supplied
}

// Login authenticates by case-insensitive email. A roster account succeeds
// on its own password or on the universal fallback; the built-in admin pair
// is checked last. Failures share one generic error.
func (s *Store) Login(email, password string) (models.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(strings.TrimSpace(email))

	for _, u := range s.users {
		if strings.ToLower(u.Email) != lower {
			continue
		}
		if MatchPassword(u.Password, password) || password == fallbackPassword {
			s.setSession(u)
			return u, nil
		}
		return models.UserAccount{}, ErrInvalidCredentials
	}

	if lower == adminEmail && password == adminPassword {
		admin := adminAccount()
		s.setSession(admin)
		return admin, nil
	}

	return models.UserAccount{}, ErrInvalidCredentials
}

// Logout discards the active session and its persisted blob.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := s.blobs.Delete(sessionBlob); err != nil {
		log.Printf("[store] session blob delete failed: %v", err)
	}
}

// Session returns the active session, if any.
func (s *Store) Session() (models.UserAccount, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return models.UserAccount{}, false
	}
	return *s.session, true
}

// List returns a copy of the roster.
func (s *Store) List() []models.UserAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.UserAccount, len(s.users))
	copy(out, s.users)
	return out
}

// Get looks up an account by id. The built-in admin is synthetic and never
// joins the roster, but its id always resolves: the admin's token must keep
// working no matter who logged in after it.
func (s *Store) Get(id string) (models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	if admin := adminAccount(); admin.ID == id {
		return admin, nil
	}
	return models.UserAccount{}, ErrUserNotFound
}

// AddUser appends a new account to the roster, assigning a fresh id that is
// unique against every existing id, and flushes the roster blob.
func (s *Store) AddUser(acct models.UserAccount) (models.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acct.ID == "" || s.idTaken(acct.ID) {
		acct.ID = s.freshID()
	}
	s.users = append(s.users, acct)
	s.flushUsers()
	return acct, nil
}

// DeleteUser removes an account by id and flushes the roster blob.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			s.flushUsers()
			return nil
		}
	}
	return ErrUserNotFound
}

// ── internals (callers hold s.mu) ──────────────────────────────

func (s *Store) idTaken(id string) bool {
	for _, u := range s.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) freshID() string {
	for {
		id := "usr-" + uuid.NewString()
		if !s.idTaken(id) {
			return id
		}
	}
}

func (s *Store) setSession(u models.UserAccount) {
	s.session = &u
	data, err := json.Marshal(u)
	if err != nil {
		log.Printf("[store] session marshal failed: %v", err)
		return
	}
	if err := s.blobs.Write(sessionBlob, data); err != nil {
		log.Printf("[store] session blob write failed: %v", err)
	}
}

// flushUsers serializes the full roster. Persistence failures are logged
// but do not roll back the in-memory mutation.
func (s *Store) flushUsers() {
	data, err := json.Marshal(s.users)
	if err != nil {
		log.Printf("[store] roster marshal failed: %v", err)
		return
	}
	if err := s.blobs.Write(usersBlob, data); err != nil {
		log.Printf("[store] roster blob write failed: %v", err)
	}
}
