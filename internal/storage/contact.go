package storage

import (
	"context"

	"solarne-backend/internal/models"
)

func (s *Storage) CreateContact(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (id, name, number, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(ctx, query, contact.ID, contact.Name, contact.Number, contact.CreatedAt)
	return err
}

func (s *Storage) ListContacts(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	query := `
		SELECT id, name, number, created_at
		FROM contacts
		ORDER BY created_at DESC
	`
	err := s.db.SelectContext(ctx, &contacts, query)
	return contacts, err
}
