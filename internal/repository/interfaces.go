package repository

import (
	"context"

	"github.com/gmao-ics/techniciens-api/internal/model"
)

// TechnicienRepository persists technicien records. Lookup methods return
// (nil, nil) when no row matches so callers can treat absence as a value.
type TechnicienRepository interface {
	Create(ctx context.Context, t *model.Technicien) (int, error)
	Get(ctx context.Context, id int) (*model.Technicien, error)
	GetByEmail(ctx context.Context, email string) (*model.Technicien, error)
	List(ctx context.Context, filters *model.TechnicienFilters) ([]*model.Technicien, error)
	Update(ctx context.Context, id int, upd *model.UpdateTechnicienRequest) error
	Delete(ctx context.Context, id int) (bool, error)
}

// AssignmentRepository persists technicien-intervention links.
type AssignmentRepository interface {
	Upsert(ctx context.Context, technicienID int, interventionID string) error
	List(ctx context.Context, technicienID int) ([]*model.Assignment, error)
	Stats(ctx context.Context, technicienID int) (*model.TechnicienStats, error)
}
