package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmao-ics/techniciens-api/internal/model"
)

func TestRootMetadata(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewHandler(nil).RegisterRoutes(engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Service                string   `json:"service"`
		Status                 string   `json:"status"`
		Health                 string   `json:"health"`
		CompetencesDisponibles []string `json:"competences_disponibles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Service Techniciens GMAO", body.Service)
	assert.Equal(t, "operational", body.Status)
	assert.Equal(t, "/health", body.Health)
	assert.Equal(t, model.CompetencesDisponibles, body.CompetencesDisponibles)
}
