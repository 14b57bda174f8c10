package technicien

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmao-ics/techniciens-api/internal/model"
	apperrors "github.com/gmao-ics/techniciens-api/pkg/errors"
)

type fakeTechnicienRepo struct {
	byID      map[int]*model.Technicien
	byEmail   map[string]*model.Technicien
	nextID    int
	updated   map[int]*model.UpdateTechnicienRequest
	deletedID int
}

func newFakeTechnicienRepo() *fakeTechnicienRepo {
	return &fakeTechnicienRepo{
		byID:    make(map[int]*model.Technicien),
		byEmail: make(map[string]*model.Technicien),
		nextID:  1,
		updated: make(map[int]*model.UpdateTechnicienRequest),
	}
}

func (r *fakeTechnicienRepo) add(t *model.Technicien) *model.Technicien {
	if t.ID == 0 {
		t.ID = r.nextID
		r.nextID++
	}
	r.byID[t.ID] = t
	r.byEmail[t.Email] = t
	return t
}

func (r *fakeTechnicienRepo) Create(_ context.Context, t *model.Technicien) (int, error) {
	return r.add(t).ID, nil
}

func (r *fakeTechnicienRepo) Get(_ context.Context, id int) (*model.Technicien, error) {
	return r.byID[id], nil
}

func (r *fakeTechnicienRepo) GetByEmail(_ context.Context, email string) (*model.Technicien, error) {
	return r.byEmail[email], nil
}

func (r *fakeTechnicienRepo) List(_ context.Context, _ *model.TechnicienFilters) ([]*model.Technicien, error) {
	out := make([]*model.Technicien, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTechnicienRepo) Update(_ context.Context, id int, upd *model.UpdateTechnicienRequest) error {
	r.updated[id] = upd
	if upd.Email != nil {
		t := r.byID[id]
		delete(r.byEmail, t.Email)
		t.Email = *upd.Email
		r.byEmail[t.Email] = t
	}
	return nil
}

func (r *fakeTechnicienRepo) Delete(_ context.Context, id int) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	r.deletedID = id
	return true, nil
}

type fakeAssignmentRepo struct {
	upserts     []string
	assignments []*model.Assignment
	stats       *model.TechnicienStats
}

func (r *fakeAssignmentRepo) Upsert(_ context.Context, technicienID int, interventionID string) error {
	r.upserts = append(r.upserts, interventionID)
	return nil
}

func (r *fakeAssignmentRepo) List(_ context.Context, _ int) ([]*model.Assignment, error) {
	return r.assignments, nil
}

func (r *fakeAssignmentRepo) Stats(_ context.Context, _ int) (*model.TechnicienStats, error) {
	return r.stats, nil
}

func newTestService() (*service, *fakeTechnicienRepo, *fakeAssignmentRepo) {
	repo := newFakeTechnicienRepo()
	assignments := &fakeAssignmentRepo{}
	return &service{repo: repo, assignments: assignments}, repo, assignments
}

func validCreateRequest() *model.CreateTechnicienRequest {
	return &model.CreateTechnicienRequest{
		Nom:         "Diop",
		Prenom:      "Mamadou",
		Email:       "mamadou.diop@ics.sn",
		Telephone:   "+221771234567",
		Competences: model.SkillList{"Mécanique générale"},
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, model.NiveauJunior, created.NiveauExperience)
	assert.True(t, created.Disponibilite)
	assert.NotZero(t, created.ID)
}

func TestCreateKeepsExplicitValues(t *testing.T) {
	svc, _, _ := newTestService()

	req := validCreateRequest()
	req.NiveauExperience = model.NiveauExpert
	dispo := false
	req.Disponibilite = &dispo

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, model.NiveauExpert, created.NiveauExperience)
	assert.False(t, created.Disponibilite)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.add(&model.Technicien{Email: "mamadou.diop@ics.sn"})

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestGetNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestUpdateRejectsEmptyPayload(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), 1, &model.UpdateTechnicienRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _, _ := newTestService()

	nom := "Ndiaye"
	_, err := svc.Update(context.Background(), 42, &model.UpdateTechnicienRequest{Nom: &nom})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestUpdateRejectsEmailTakenByOther(t *testing.T) {
	svc, repo, _ := newTestService()
	target := repo.add(&model.Technicien{Email: "a@ics.sn"})
	repo.add(&model.Technicien{Email: "b@ics.sn"})

	email := "b@ics.sn"
	_, err := svc.Update(context.Background(), target.ID, &model.UpdateTechnicienRequest{Email: &email})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestUpdateAllowsSameEmail(t *testing.T) {
	svc, repo, _ := newTestService()
	target := repo.add(&model.Technicien{Email: "a@ics.sn"})

	email := "a@ics.sn"
	updated, err := svc.Update(context.Background(), target.ID, &model.UpdateTechnicienRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "a@ics.sn", updated.Email)
}

func TestDeleteNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestDeleteRemovesRow(t *testing.T) {
	svc, repo, _ := newTestService()
	target := repo.add(&model.Technicien{Email: "a@ics.sn"})

	require.NoError(t, svc.Delete(context.Background(), target.ID))
	assert.Equal(t, target.ID, repo.deletedID)
}

func TestCheckAvailability(t *testing.T) {
	svc, repo, _ := newTestService()
	available := repo.add(&model.Technicien{Email: "a@ics.sn", Disponibilite: true})
	busy := repo.add(&model.Technicien{Email: "b@ics.sn", Disponibilite: false})
	date := time.Now()

	ok, err := svc.CheckAvailability(context.Background(), available.ID, date)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckAvailability(context.Background(), busy.ID, date)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CheckAvailability(context.Background(), 999, date)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAssignDelegatesToStore(t *testing.T) {
	svc, _, assignments := newTestService()

	require.NoError(t, svc.Assign(context.Background(), 1, "INT-2024-001"))
	assert.Equal(t, []string{"INT-2024-001"}, assignments.upserts)
}

func TestStatsActivityTiers(t *testing.T) {
	cases := []struct {
		recent int
		tier   string
	}{
		{0, model.ActiviteFaible},
		{4, model.ActiviteFaible},
		{5, model.ActiviteMoyenne},
		{9, model.ActiviteMoyenne},
		{10, model.ActiviteElevee},
		{25, model.ActiviteElevee},
	}

	for _, tc := range cases {
		svc, _, assignments := newTestService()
		assignments.stats = &model.TechnicienStats{
			TotalInterventions:   tc.recent + 3,
			Interventions30Jours: tc.recent,
		}

		stats, err := svc.Stats(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, tc.tier, stats.TauxActivite, "recent=%d", tc.recent)
	}
}
