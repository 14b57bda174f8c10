package technicien

import (
	"context"
	"time"

	"github.com/gmao-ics/techniciens-api/internal/model"
	"github.com/gmao-ics/techniciens-api/internal/repository"
	apperrors "github.com/gmao-ics/techniciens-api/pkg/errors"
)

// Activity-tier thresholds over the trailing 30 days.
const (
	highActivityThreshold   = 10
	mediumActivityThreshold = 5
)

type Service interface {
	Create(ctx context.Context, req *model.CreateTechnicienRequest) (*model.Technicien, error)
	Get(ctx context.Context, id int) (*model.Technicien, error)
	List(ctx context.Context, filters *model.TechnicienFilters) ([]*model.Technicien, error)
	Update(ctx context.Context, id int, req *model.UpdateTechnicienRequest) (*model.Technicien, error)
	Delete(ctx context.Context, id int) error
	CheckAvailability(ctx context.Context, id int, date time.Time) (bool, error)
	Assign(ctx context.Context, technicienID int, interventionID string) error
	ListAssignments(ctx context.Context, technicienID int) ([]*model.Assignment, error)
	Stats(ctx context.Context, technicienID int) (*model.TechnicienStats, error)
}

type service struct {
	repo        repository.TechnicienRepository
	assignments repository.AssignmentRepository
}

func NewService(repo repository.TechnicienRepository, assignments repository.AssignmentRepository) Service {
	return &service{repo: repo, assignments: assignments}
}

func (s *service) Create(ctx context.Context, req *model.CreateTechnicienRequest) (*model.Technicien, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("a technicien with this email already exists", nil)
	}

	t := &model.Technicien{
		Nom:              req.Nom,
		Prenom:           req.Prenom,
		Email:            req.Email,
		Telephone:        req.Telephone,
		Competences:      req.Competences,
		NiveauExperience: model.NiveauJunior,
		Disponibilite:    true,
		Salaire:          req.Salaire,
		DateEmbauche:     req.DateEmbauche,
		Notes:            req.Notes,
	}
	if req.NiveauExperience != "" {
		t.NiveauExperience = req.NiveauExperience
	}
	if req.Disponibilite != nil {
		t.Disponibilite = *req.Disponibilite
	}

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *service) Get(ctx context.Context, id int) (*model.Technicien, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if t == nil {
		return nil, apperrors.NotFound("technicien", nil)
	}
	return t, nil
}

func (s *service) List(ctx context.Context, filters *model.TechnicienFilters) ([]*model.Technicien, error) {
	return s.repo.List(ctx, filters)
}

func (s *service) Update(ctx context.Context, id int, req *model.UpdateTechnicienRequest) (*model.Technicien, error) {
	if req.IsEmpty() {
		return nil, apperrors.BadRequest("nothing to update", nil)
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != existing.Email {
		other, err := s.repo.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if other != nil {
			return nil, apperrors.Conflict("a technicien with this email already exists", nil)
		}
	}

	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !deleted {
		return apperrors.NotFound("technicien", nil)
	}
	return nil
}

// CheckAvailability only consults the disponibilite flag for now.
// TODO: cross-check planned interventions for schedule conflicts once the
// interventions service exposes its planning data.
func (s *service) CheckAvailability(ctx context.Context, id int, date time.Time) (bool, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, apperrors.Internal(err)
	}
	if t == nil {
		return false, nil
	}
	if !t.Disponibilite {
		return false, nil
	}
	return true, nil
}

// Assign upserts the assignment row; a missing technicien surfaces as a
// foreign-key violation from the store.
func (s *service) Assign(ctx context.Context, technicienID int, interventionID string) error {
	return s.assignments.Upsert(ctx, technicienID, interventionID)
}

func (s *service) ListAssignments(ctx context.Context, technicienID int) ([]*model.Assignment, error) {
	return s.assignments.List(ctx, technicienID)
}

func (s *service) Stats(ctx context.Context, technicienID int) (*model.TechnicienStats, error) {
	stats, err := s.assignments.Stats(ctx, technicienID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	stats.TauxActivite = activityTier(stats.Interventions30Jours)
	return stats, nil
}

func activityTier(recent int) string {
	switch {
	case recent >= highActivityThreshold:
		return model.ActiviteElevee
	case recent >= mediumActivityThreshold:
		return model.ActiviteMoyenne
	default:
		return model.ActiviteFaible
	}
}
