package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Experience levels
const (
	NiveauJunior = "junior"
	NiveauSenior = "senior"
	NiveauExpert = "expert"
)

// CompetencesDisponibles lists the known technical skills of the plant.
// The competences column is free-form; this catalog is advisory only.
var CompetencesDisponibles = []string{
	"Mécanique générale",
	"Électricité industrielle",
	"Pneumatique",
	"Hydraulique",
	"Automatisme",
	"Électronique",
	"Soudure",
	"Usinage",
	"Maintenance préventive",
	"Diagnostic de pannes",
	"Informatique industrielle",
	"Régulation",
	"Climatisation",
	"Plomberie industrielle",
}

// SkillList is a list of competences stored serialized in a single JSONB column.
type SkillList []string

func (s SkillList) Value() (driver.Value, error) {
	if s == nil {
		s = SkillList{}
	}
	return json.Marshal(s)
}

func (s *SkillList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into SkillList", src)
	}
}

// InvalidDateError reports a date string matching neither accepted format.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q", e.Value)
}

// Date accepts both "2006-01-02" and RFC 3339 on input and renders date-only.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return &InvalidDateError{Value: s}
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d Date) Value() (driver.Value, error) {
	if d.Time.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = v
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Technicien is the managed entity: a skilled maintenance worker.
type Technicien struct {
	ID               int       `db:"id" json:"id"`
	Nom              string    `db:"nom" json:"nom"`
	Prenom           string    `db:"prenom" json:"prenom"`
	Email            string    `db:"email" json:"email"`
	Telephone        string    `db:"telephone" json:"telephone"`
	Competences      SkillList `db:"competences" json:"competences"`
	NiveauExperience string    `db:"niveau_experience" json:"niveau_experience"`
	Disponibilite    bool      `db:"disponibilite" json:"disponibilite"`
	Salaire          *float64  `db:"salaire" json:"salaire,omitempty"`
	DateEmbauche     *Date     `db:"date_embauche" json:"date_embauche,omitempty"`
	Notes            *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// CreateTechnicienRequest is the create payload. Optional fields default
// server-side: niveau_experience=junior, disponibilite=true.
type CreateTechnicienRequest struct {
	Nom              string    `json:"nom" binding:"required,min=2,max=100"`
	Prenom           string    `json:"prenom" binding:"required,min=2,max=100"`
	Email            string    `json:"email" binding:"required,email,max=255"`
	Telephone        string    `json:"telephone" binding:"required,telephone"`
	Competences      SkillList `json:"competences" binding:"required,min=1,dive,required"`
	NiveauExperience string    `json:"niveau_experience" binding:"omitempty,oneof=junior senior expert"`
	Disponibilite    *bool     `json:"disponibilite" binding:"omitempty"`
	Salaire          *float64  `json:"salaire" binding:"omitempty,gt=0"`
	DateEmbauche     *Date     `json:"date_embauche" binding:"omitempty"`
	Notes            *string   `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateTechnicienRequest is the partial-update payload: every field optional,
// same per-field constraints as create.
type UpdateTechnicienRequest struct {
	Nom              *string    `json:"nom" binding:"omitempty,min=2,max=100"`
	Prenom           *string    `json:"prenom" binding:"omitempty,min=2,max=100"`
	Email            *string    `json:"email" binding:"omitempty,email,max=255"`
	Telephone        *string    `json:"telephone" binding:"omitempty,telephone"`
	Competences      *SkillList `json:"competences" binding:"omitempty,min=1,dive,required"`
	NiveauExperience *string    `json:"niveau_experience" binding:"omitempty,oneof=junior senior expert"`
	Disponibilite    *bool      `json:"disponibilite" binding:"omitempty"`
	Salaire          *float64   `json:"salaire" binding:"omitempty,gt=0"`
	DateEmbauche     *Date      `json:"date_embauche" binding:"omitempty"`
	Notes            *string    `json:"notes" binding:"omitempty,max=1000"`
}

// IsEmpty reports whether the partial carries no field at all.
func (r *UpdateTechnicienRequest) IsEmpty() bool {
	return r.Nom == nil && r.Prenom == nil && r.Email == nil && r.Telephone == nil &&
		r.Competences == nil && r.NiveauExperience == nil && r.Disponibilite == nil &&
		r.Salaire == nil && r.DateEmbauche == nil && r.Notes == nil
}

// TechnicienFilters are the conjunctive optional list filters.
type TechnicienFilters struct {
	Disponibilite    *bool  `form:"disponibilite"`
	NiveauExperience string `form:"niveau_experience" binding:"omitempty,oneof=junior senior expert"`
	Competence       string `form:"competence"`
	Search           string `form:"search"`
	Limit            *int   `form:"limit" binding:"omitempty,gt=0"`
	Offset           *int   `form:"offset" binding:"omitempty,gte=0"`
}
