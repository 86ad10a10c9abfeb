package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"solarne-backend/internal/models"
	"solarne-backend/internal/storage"
)

// UserStore is the slice of the credential store the auth flows need.
// *storage.Storage satisfies it; tests plug in fakes.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type Handler struct {
	users      UserStore
	tokens     *TokenService
	bcryptCost int
}

func NewHandler(users UserStore, tokens *TokenService, bcryptCost int) *Handler {
	return &Handler{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// dummyHash is a throwaway bcrypt record ("password", cost 10). Login
// compares against it when the email is unknown, so that branch costs
// the same bcrypt work as a real mismatch and response timing does not
// reveal which emails are registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Signup creates a new user account
// @Summary Create user
// @Description Creates a new user; only the admin may call this
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body credentialsRequest true "New user credentials"
// @Success 201 {object} map[string]string "Created user email"
// @Failure 400 {string} string "Invalid request body or email already registered"
// @Failure 401 {string} string "Unauthorized"
// @Failure 403 {string} string "Forbidden"
// @Security BearerAuth
// @Router /api/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password required", http.StatusBadRequest)
		return
	}

	hash, err := HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	// The unique constraint on users.email is the authoritative
	// duplicate check; no lookup-then-insert.
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			http.Error(w, "Email already registered", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"email": user.Email})
}

// Login authenticates a user and returns a bearer token
// @Summary User login
// @Description Authenticates with email and password, returns a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body credentialsRequest true "Login credentials"
// @Success 200 {object} map[string]string "Token"
// @Failure 400 {string} string "Invalid request body or invalid credentials"
// @Router /api/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Unknown email and wrong password must be indistinguishable, so
	// every failure from here on is the same 400.
	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil || user == nil {
		CheckPassword(req.Password, dummyHash)
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	token, err := h.tokens.Generate(user.Email)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
