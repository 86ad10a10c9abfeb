package storage

import (
	"context"

	"solarne-backend/internal/models"
)

func (s *Storage) CreateSolution(ctx context.Context, solution *models.Solution) error {
	query := `
		INSERT INTO solutions (id, image_url, location, power, annual_saving, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		solution.ID, solution.ImageURL, solution.Location, solution.Power,
		solution.AnnualSaving, solution.CreatedAt)
	return err
}

func (s *Storage) ListSolutions(ctx context.Context) ([]models.Solution, error) {
	var solutions []models.Solution
	query := `
		SELECT id, image_url, location, power, annual_saving, created_at
		FROM solutions
		ORDER BY created_at DESC
	`
	err := s.db.SelectContext(ctx, &solutions, query)
	return solutions, err
}

// DeleteSolution reports whether a row was actually removed.
func (s *Storage) DeleteSolution(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM solutions WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
