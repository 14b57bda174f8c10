package model

import "time"

// Assignment links a technicien to an intervention owned by the
// interventions service; only the foreign identifier is stored here.
type Assignment struct {
	InterventionID string    `db:"intervention_id" json:"intervention_id"`
	AssignedAt     time.Time `db:"assigned_at" json:"assigned_at"`
}

// AssignRequest is the body of POST /api/techniciens/:id/assign.
type AssignRequest struct {
	InterventionID string `json:"intervention_id" binding:"required"`
}

// Activity tiers derived from the trailing-30-day assignment count.
const (
	ActiviteElevee  = "high"
	ActiviteMoyenne = "medium"
	ActiviteFaible  = "low"
)

// TechnicienStats summarizes a technicien's assignment volume.
type TechnicienStats struct {
	TotalInterventions   int    `db:"total_interventions" json:"total_interventions"`
	Interventions30Jours int    `db:"interventions_30j" json:"interventions_30_jours"`
	TauxActivite         string `db:"-" json:"taux_activite"`
}
