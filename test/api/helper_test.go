package api_test

import (
	"fmt"
	"testing"
	"time"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@ics.sn", prefix, time.Now().UnixNano())
}

// createTestTechnicien creates a technicien and returns its id.
func createTestTechnicien(t *testing.T) int {
	t.Helper()

	resp := makeRequest("POST", "/api/techniciens", map[string]interface{}{
		"nom":         "Diop",
		"prenom":      "Mamadou",
		"email":       uniqueEmail("test"),
		"telephone":   "+221771234567",
		"competences": []string{"Mécanique générale", "Soudure"},
	}, managerToken)

	if resp.StatusCode != 201 {
		t.Fatalf("Failed to create test technicien: %s", resp.Raw)
	}

	id, ok := resp.Data()["id"].(float64)
	if !ok {
		t.Fatalf("No id in create response: %s", resp.Raw)
	}
	return int(id)
}

func deleteTestTechnicien(t *testing.T, id int) {
	t.Helper()
	makeRequest("DELETE", fmt.Sprintf("/api/techniciens/%d", id), nil, adminToken)
}
