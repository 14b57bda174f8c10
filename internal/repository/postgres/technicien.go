package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gmao-ics/techniciens-api/internal/model"
	"github.com/gmao-ics/techniciens-api/internal/repository"
)

type technicienRepository struct {
	BaseRepository
}

func NewTechnicienRepository(base BaseRepository) repository.TechnicienRepository {
	return &technicienRepository{base}
}

func (r *technicienRepository) Create(ctx context.Context, t *model.Technicien) (int, error) {
	query := `
		INSERT INTO techniciens (
			nom, prenom, email, telephone, competences, niveau_experience,
			disponibilite, salaire, date_embauche, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	var id int
	err := r.db.QueryRowxContext(ctx, query,
		t.Nom,
		t.Prenom,
		t.Email,
		t.Telephone,
		t.Competences,
		t.NiveauExperience,
		t.Disponibilite,
		t.Salaire,
		t.DateEmbauche,
		t.Notes,
		t.CreatedAt,
		t.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create technicien: %w", err)
	}
	return id, nil
}

func (r *technicienRepository) Get(ctx context.Context, id int) (*model.Technicien, error) {
	query := `SELECT * FROM techniciens WHERE id = $1`

	var t model.Technicien
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get technicien: %w", err)
	}
	return &t, nil
}

func (r *technicienRepository) GetByEmail(ctx context.Context, email string) (*model.Technicien, error) {
	query := `SELECT * FROM techniciens WHERE email = $1`

	var t model.Technicien
	if err := r.db.GetContext(ctx, &t, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get technicien by email: %w", err)
	}
	return &t, nil
}

func (r *technicienRepository) List(ctx context.Context, filters *model.TechnicienFilters) ([]*model.Technicien, error) {
	query := `SELECT * FROM techniciens WHERE 1=1`
	args := []interface{}{}

	if filters.Disponibilite != nil {
		query += fmt.Sprintf(" AND disponibilite = $%d", len(args)+1)
		args = append(args, *filters.Disponibilite)
	}

	if filters.NiveauExperience != "" {
		query += fmt.Sprintf(" AND niveau_experience = $%d", len(args)+1)
		args = append(args, filters.NiveauExperience)
	}

	if filters.Competence != "" {
		// JSONB containment: the serialized list contains the skill as an element.
		skill, err := json.Marshal(filters.Competence)
		if err != nil {
			return nil, fmt.Errorf("failed to encode competence filter: %w", err)
		}
		query += fmt.Sprintf(" AND competences @> $%d", len(args)+1)
		args = append(args, string(skill))
	}

	if filters.Search != "" {
		term := "%" + filters.Search + "%"
		query += fmt.Sprintf(" AND (nom LIKE $%d OR prenom LIKE $%d OR email LIKE $%d)",
			len(args)+1, len(args)+2, len(args)+3)
		args = append(args, term, term, term)
	}

	query += " ORDER BY nom ASC, prenom ASC"

	// Offset only takes effect alongside an explicit limit.
	if filters.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *filters.Limit)

		if filters.Offset != nil {
			query += fmt.Sprintf(" OFFSET $%d", len(args)+1)
			args = append(args, *filters.Offset)
		}
	}

	techniciens := []*model.Technicien{}
	if err := r.db.SelectContext(ctx, &techniciens, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list techniciens: %w", err)
	}
	return techniciens, nil
}

// Update writes only the supplied fields. Column names come from this
// fixed whitelist, never from request keys.
func (r *technicienRepository) Update(ctx context.Context, id int, upd *model.UpdateTechnicienRequest) error {
	set := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if upd.Nom != nil {
		add("nom", *upd.Nom)
	}
	if upd.Prenom != nil {
		add("prenom", *upd.Prenom)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Telephone != nil {
		add("telephone", *upd.Telephone)
	}
	if upd.Competences != nil {
		add("competences", *upd.Competences)
	}
	if upd.NiveauExperience != nil {
		add("niveau_experience", *upd.NiveauExperience)
	}
	if upd.Disponibilite != nil {
		add("disponibilite", *upd.Disponibilite)
	}
	if upd.Salaire != nil {
		add("salaire", *upd.Salaire)
	}
	if upd.DateEmbauche != nil {
		add("date_embauche", *upd.DateEmbauche)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}

	add("updated_at", time.Now())

	query := "UPDATE techniciens SET "
	for i, clause := range set {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += fmt.Sprintf(" WHERE id = $%d", len(args)+1)
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update technicien: %w", err)
	}
	return nil
}

func (r *technicienRepository) Delete(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM techniciens WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete technicien: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
