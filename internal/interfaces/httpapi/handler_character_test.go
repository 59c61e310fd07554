package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestListCharacters(t *testing.T) {
	router := newTestRouter(t, &stubCatalogProvider{}, &stubRenderer{})

	rec := doRequest(t, router, http.MethodGet, "/v1/characters", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected data array, got %v", body["data"])
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 seeded characters, got %d", len(items))
	}

	first, _ := items[0].(map[string]any)
	if got, _ := first["name"].(string); got != "Daredevil" {
		t.Fatalf("expected characters sorted by name, first was %q", got)
	}
	teamObj, ok := first["team"].(map[string]any)
	if !ok {
		t.Fatalf("expected team summary on Daredevil, got %v", first["team"])
	}
	if got, _ := teamObj["name"].(string); got != "Defenders" {
		t.Fatalf("expected team Defenders, got %q", got)
	}
}

func TestCreateCharacter(t *testing.T) {
	router := newTestRouter(t, &stubCatalogProvider{}, &stubRenderer{})

	payload := `{"name":"Vision","description":"Synthezoid.","strength":8,"intelligence":9,"speed":7}`
	rec := doRequest(t, router, http.MethodPost, "/v1/characters", strings.NewReader(payload))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["name"].(string); got != "Vision" {
		t.Fatalf("expected name Vision, got %q", got)
	}
	if id, _ := data["id"].(float64); id <= 0 {
		t.Fatalf("expected assigned id, got %v", data["id"])
	}
}

func TestCreateCharacter_RejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "unknown field", payload: `{"name":"Vision","alias":"Victor"}`},
		{name: "missing name", payload: `{"strength":5}`},
		{name: "strength above scale", payload: `{"name":"Vision","strength":11}`},
		{name: "negative speed", payload: `{"name":"Vision","speed":-1}`},
		{name: "malformed url", payload: `{"name":"Vision","url":"not a url"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &stubCatalogProvider{}, &stubRenderer{})

			rec := doRequest(t, router, http.MethodPost, "/v1/characters", strings.NewReader(tt.payload))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := errorStatus(t, rec); got != "INVALID_ARGUMENT" {
				t.Fatalf("expected INVALID_ARGUMENT, got %q", got)
			}
		})
	}
}

func TestGetCharacter_NotFound(t *testing.T) {
	router := newTestRouter(t, &stubCatalogProvider{}, &stubRenderer{})

	rec := doRequest(t, router, http.MethodGet, "/v1/characters/999", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if got := errorStatus(t, rec); got != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %q", got)
	}
}

func TestGetCharacter_InvalidID(t *testing.T) {
	router := newTestRouter(t, &stubCatalogProvider{}, &stubRenderer{})

	rec := doRequest(t, router, http.MethodGet, "/v1/characters/abc", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestEditCharacter(t *testing.T) {
	router := newTestRouter(t, &stubCatalogProvider{}, &stubRenderer{})

	payload := `{"name":"Iron Man Mk II","strength":8,"intelligence":10,"speed":8}`
	rec := doRequest(t, router, http.MethodPut, "/v1/characters/1", strings.NewReader(payload))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["name"].(string); got != "Iron Man Mk II" {
		t.Fatalf("expected updated name, got %q", got)
	}
	if _, ok := data["updatedAt"]; !ok {
		t.Fatalf("expected updatedAt on edited character")
	}
}

func TestDeleteCharacter(t *testing.T) {
	router := newTestRouter(t, &stubCatalogProvider{}, &stubRenderer{})

	rec := doRequest(t, router, http.MethodDelete, "/v1/characters/5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/characters/5", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected deleted character to read as 404, got %d", rec.Code)
	}
}

func TestAssignCharacterToTeam(t *testing.T) {
	router := newTestRouter(t, &stubCatalogProvider{}, &stubRenderer{})

	payload := fmt.Sprintf(`{"team_id":%d}`, 2)
	rec := doRequest(t, router, http.MethodPut, "/v1/characters/5/team", strings.NewReader(payload))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	teamObj, ok := data["team"].(map[string]any)
	if !ok {
		t.Fatalf("expected team summary after assignment, got %v", data["team"])
	}
	if got, _ := teamObj["name"].(string); got != "Defenders" {
		t.Fatalf("expected team Defenders, got %q", got)
	}
}

func TestAssignCharacterToTeam_AlreadyRecruited(t *testing.T) {
	router := newTestRouter(t, &stubCatalogProvider{}, &stubRenderer{})

	// Iron Man is seeded onto the Avengers already.
	rec := doRequest(t, router, http.MethodPut, "/v1/characters/1/team", strings.NewReader(`{"team_id":2}`))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := errorStatus(t, rec); got != "ALREADY_EXISTS" {
		t.Fatalf("expected ALREADY_EXISTS, got %q", got)
	}
}
