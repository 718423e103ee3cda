package authtest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const accessTTL = 5 * time.Minute

// Server is an in-process double of the backend's authentication API,
// wire-compatible with the endpoints the transport package calls. It backs
// the smoke binary and the integration tests; nothing in it is meant for
// production.
type Server struct {
	router     *mux.Router
	signingKey []byte

	mu     sync.Mutex
	users  map[string]*user
	nextID int64
}

type user struct {
	id              int64
	email           string
	firstName       string
	lastName        string
	password        string
	active          bool
	activationToken string
	resetToken      string
}

// New creates a Server with an empty account table.
func New() *Server {
	s := &Server{
		signingKey: []byte(uuid.NewString()),
		users:      map[string]*user{},
		nextID:     1,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/auth/users/", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/auth/jwt/create/", s.handleCreateToken).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/auth/users/activation/", s.handleActivate).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/auth/users/reset_password/", s.handleResetPassword).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/auth/users/reset_password_confirm/", s.handleResetConfirm).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/auth/users/me/", s.handleMe).Methods(http.MethodGet)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Seed creates an already-active account and returns its ID.
func (s *Server) Seed(email, password, firstName, lastName string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &user{
		id:        s.nextID,
		email:     email,
		firstName: firstName,
		lastName:  lastName,
		password:  password,
		active:    true,
	}
	s.nextID++
	s.users[email] = u
	return u.id
}

// ActivationFor returns the uid/token pair a registration email would
// carry for the given account.
func (s *Server) ActivationFor(email string) (uid, token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, found := s.users[email]
	if !found || u.activationToken == "" {
		return "", "", false
	}
	return strconv.FormatInt(u.id, 10), u.activationToken, true
}

// ResetFor returns the uid/token pair a reset email would carry for the
// given account.
func (s *Server) ResetFor(email string) (uid, token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, found := s.users[email]
	if !found || u.resetToken == "" {
		return "", "", false
	}
	return strconv.FormatInt(u.id, 10), u.resetToken, true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid registration payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"email": []string{"user with this email already exists."},
		})
		return
	}

	u := &user{
		id:              s.nextID,
		email:           req.Email,
		firstName:       req.FirstName,
		lastName:        req.LastName,
		password:        req.Password,
		activationToken: uuid.NewString(),
	}
	s.nextID++
	s.users[req.Email] = u

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         u.id,
		"email":      u.email,
		"first_name": u.firstName,
		"last_name":  u.lastName,
	})
}

func (s *Server) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid credentials payload"})
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	valid := ok && u.active && u.password == req.Password
	s.mu.Unlock()

	if !valid {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"detail": "No active account found with the given credentials",
		})
		return
	}

	access, err := s.signToken(u, "access", accessTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "token signing failed"})
		return
	}
	refresh, err := s.signToken(u, "refresh", 24*time.Hour)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "token signing failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access":  access,
		"refresh": refresh,
	})
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UID   string `json:"uid"`
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid activation payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByUID(req.UID)
	if u == nil || u.activationToken == "" || u.activationToken != req.Token {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"token": []string{"Invalid token for given user."},
		})
		return
	}

	u.active = true
	u.activationToken = ""
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid reset payload"})
		return
	}

	s.mu.Lock()
	if u, ok := s.users[req.Email]; ok {
		u.resetToken = uuid.NewString()
	}
	s.mu.Unlock()

	// Absent accounts get the same answer; the real backend does not leak
	// which emails exist.
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UID           string `json:"uid"`
		Token         string `json:"token"`
		NewPassword   string `json:"new_password"`
		ReNewPassword string `json:"re_new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewPassword == "" || req.NewPassword != req.ReNewPassword {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid reset confirmation payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByUID(req.UID)
	if u == nil || u.resetToken == "" || u.resetToken != req.Token {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"token": []string{"Invalid token for given user."},
		})
		return
	}

	u.password = req.NewPassword
	u.resetToken = ""
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"detail": "Authentication credentials were not provided.",
		})
		return
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	_, err := parser.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(*jwt.Token) (any, error) {
		return s.signingKey, nil
	})
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"detail": "Given token not valid for any token type",
		})
		return
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"detail": "Given token not valid for any token type",
		})
		return
	}

	s.mu.Lock()
	u := s.userByID(int64(userID))
	s.mu.Unlock()

	if u == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"detail": "User not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         u.id,
		"email":      u.email,
		"first_name": u.firstName,
		"last_name":  u.lastName,
	})
}

func (s *Server) signToken(u *user, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": tokenType,
		"user_id":    u.id,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	})
	return token.SignedString(s.signingKey)
}

// userByUID resolves a Djoser-style uid (the stringified account ID).
// Caller holds s.mu.
func (s *Server) userByUID(uid string) *user {
	id, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		return nil
	}
	return s.userByID(id)
}

// Caller holds s.mu.
func (s *Server) userByID(id int64) *user {
	for _, u := range s.users {
		if u.id == id {
			return u
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
