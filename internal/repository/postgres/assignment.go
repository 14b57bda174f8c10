package postgres

import (
	"context"
	"fmt"

	"github.com/gmao-ics/techniciens-api/internal/model"
	"github.com/gmao-ics/techniciens-api/internal/repository"
)

type assignmentRepository struct {
	BaseRepository
}

func NewAssignmentRepository(base BaseRepository) repository.AssignmentRepository {
	return &assignmentRepository{base}
}

// Upsert records the assignment; re-assigning the same pair only
// refreshes the timestamp.
func (r *assignmentRepository) Upsert(ctx context.Context, technicienID int, interventionID string) error {
	query := `
		INSERT INTO technicien_interventions (technicien_id, intervention_id, assigned_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (technicien_id, intervention_id) DO UPDATE SET assigned_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, technicienID, interventionID); err != nil {
		return fmt.Errorf("failed to assign technicien: %w", err)
	}
	return nil
}

func (r *assignmentRepository) List(ctx context.Context, technicienID int) ([]*model.Assignment, error) {
	query := `
		SELECT intervention_id, assigned_at
		FROM technicien_interventions
		WHERE technicien_id = $1
		ORDER BY assigned_at DESC
	`

	assignments := []*model.Assignment{}
	if err := r.db.SelectContext(ctx, &assignments, query, technicienID); err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (r *assignmentRepository) Stats(ctx context.Context, technicienID int) (*model.TechnicienStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_interventions,
			COUNT(*) FILTER (WHERE assigned_at >= NOW() - INTERVAL '30 days') AS interventions_30j
		FROM technicien_interventions
		WHERE technicien_id = $1
	`

	var stats model.TechnicienStats
	if err := r.db.GetContext(ctx, &stats, query, technicienID); err != nil {
		return nil, fmt.Errorf("failed to get technicien stats: %w", err)
	}
	return &stats, nil
}
