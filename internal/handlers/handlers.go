package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"solarne-backend/internal/auth"
	"solarne-backend/internal/cache"
	"solarne-backend/internal/models"
	"solarne-backend/internal/services"
)

type SolutionStore interface {
	CreateSolution(ctx context.Context, solution *models.Solution) error
	ListSolutions(ctx context.Context) ([]models.Solution, error)
	DeleteSolution(ctx context.Context, id string) (bool, error)
}

type ContactStore interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
	ListContacts(ctx context.Context) ([]models.Contact, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

const maxContactFieldLen = 64

type Handler struct {
	solutions SolutionStore
	contacts  ContactStore
	cache     cache.Client // nil when caching is disabled
	notifier  *services.LeadNotifier
	db        Pinger
}

func New(solutions SolutionStore, contacts ContactStore, cacheClient cache.Client, notifier *services.LeadNotifier, db Pinger) *Handler {
	return &Handler{
		solutions: solutions,
		contacts:  contacts,
		cache:     cacheClient,
		notifier:  notifier,
		db:        db,
	}
}

// RegisterRoutes wires every route to its handler and authorization
// policy. The policy set is fixed here at startup: signup is admin-only,
// resource writes and the contacts listing need any valid token, the
// public site reads solutions and posts contacts without a token.
func (h *Handler) RegisterRoutes(r chi.Router, authHandler *auth.Handler, tokens *auth.TokenService, adminEmail string) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.With(auth.RequireAuth(tokens, auth.AdminOnly(adminEmail))).Post("/signup", authHandler.Signup)

		r.Get("/health", h.Health)

		r.Route("/solutions", func(r chi.Router) {
			r.Get("/", h.ListSolutions)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(tokens, auth.AuthenticatedOnly()))
				r.Post("/", h.CreateSolution)
				r.Delete("/{id}", h.DeleteSolution)
			})
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", h.CreateContact)
			r.With(auth.RequireAuth(tokens, auth.AuthenticatedOnly())).Get("/", h.ListContacts)
		})
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type solutionRequest struct {
	ImageURL     string  `json:"image_url"`
	Location     string  `json:"location"`
	Power        float64 `json:"power"`
	AnnualSaving string  `json:"annual_saving"`
}

func (h *Handler) CreateSolution(w http.ResponseWriter, r *http.Request) {
	var req solutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	solution := &models.Solution{
		ID:           uuid.New().String(),
		ImageURL:     req.ImageURL,
		Location:     req.Location,
		Power:        req.Power,
		AnnualSaving: req.AnnualSaving,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.solutions.CreateSolution(r.Context(), solution); err != nil {
		http.Error(w, "Failed to create solution", http.StatusInternalServerError)
		return
	}

	h.invalidateSolutions()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(solution)
}

func (h *Handler) ListSolutions(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		solutions, hit, err := h.cache.GetSolutions()
		if err != nil {
			log.Printf("Solutions cache read error: %v", err)
		} else if hit {
			writeSolutions(w, solutions)
			return
		}
	}

	solutions, err := h.solutions.ListSolutions(r.Context())
	if err != nil {
		http.Error(w, "Failed to list solutions", http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetSolutions(solutions); err != nil {
			log.Printf("Solutions cache write error: %v", err)
		}
	}

	writeSolutions(w, solutions)
}

func (h *Handler) DeleteSolution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// The id column is a Postgres UUID; a malformed id would error the
	// query (22P02) instead of matching nothing. Reject it up front.
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "Solution not found", http.StatusNotFound)
		return
	}

	deleted, err := h.solutions.DeleteSolution(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to delete solution", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Solution not found", http.StatusNotFound)
		return
	}

	h.invalidateSolutions()

	w.WriteHeader(http.StatusNoContent)
}

type contactRequest struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Name) > maxContactFieldLen || len(req.Number) > maxContactFieldLen {
		http.Error(w, "Name and number must be 64 characters or fewer", http.StatusBadRequest)
		return
	}

	contact := &models.Contact{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Number:    req.Number,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.contacts.CreateContact(r.Context(), contact); err != nil {
		http.Error(w, "Failed to create contact", http.StatusInternalServerError)
		return
	}

	if err := h.notifier.SendLeadAlert(contact.Name, contact.Number); err != nil {
		log.Printf("Lead notification error: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(contact)
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.ListContacts(r.Context())
	if err != nil {
		http.Error(w, "Failed to list contacts", http.StatusInternalServerError)
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contacts)
}

func (h *Handler) invalidateSolutions() {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateSolutions(); err != nil {
		log.Printf("Solutions cache invalidation error: %v", err)
	}
}

func writeSolutions(w http.ResponseWriter, solutions []models.Solution) {
	if solutions == nil {
		solutions = []models.Solution{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(solutions)
}
