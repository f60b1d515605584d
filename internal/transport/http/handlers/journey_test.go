package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"resourcehub/internal/app/server"
	"resourcehub/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func newTestApp(t *testing.T) (*server.App, *httptest.Server) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		Environment:        "test",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		RunMigrations:      true,
		RunSeed:            true,
		MigrationsDir:      "../../../../migrations",
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 1000,
		AnnualLeaveQuota:   20,
		MetricsEnabled:     true,
		CORSAllowedOrigins: []string{"*"},
	}

	app, err := server.NewFromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return app, ts
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload any) (int, envelope) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login failed with status %d", status)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("expected token in login response: %v", err)
	}
	return data.Token
}

func TestLeaveApprovalJourney(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	token := login(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	start := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	end := time.Now().AddDate(0, 1, 1).Format("2006-01-02")
	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leaves", token, map[string]any{
		"leaveType": "casual",
		"startDate": start,
		"endDate":   end,
		"days":      2,
		"reason":    "long weekend",
	})
	if status != http.StatusCreated {
		t.Fatalf("create leave: expected 201, got %d (%v)", status, env.Error)
	}
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == "" {
		t.Fatalf("expected created request: %v", err)
	}
	if created.Status != "pending_hr_review" {
		t.Fatalf("expected pending_hr_review, got %s", created.Status)
	}

	// Admin sees the HR queue.
	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/leave-manager/pending", token, nil)
	if status != http.StatusOK {
		t.Fatalf("pending queue: expected 200, got %d", status)
	}
	var queue []json.RawMessage
	if err := json.Unmarshal(env.Data, &queue); err != nil || len(queue) == 0 {
		t.Fatalf("expected non-empty pending queue: %v", err)
	}

	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leave-manager/"+created.ID+"/hr-approve", token, map[string]string{"notes": "ok"})
	if status != http.StatusOK {
		t.Fatalf("hr-approve: expected 200, got %d", status)
	}

	// PM decision out of order is a state conflict.
	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leave-manager/"+created.ID+"/pm-decision", token, map[string]string{"action": "approve"})
	if status != http.StatusConflict {
		t.Fatalf("out-of-order pm-decision: expected 409, got %d", status)
	}

	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leave-manager/"+created.ID+"/tl-decision", token, map[string]string{"action": "forward_to_pm", "notes": "escalating"})
	if status != http.StatusOK {
		t.Fatalf("tl-decision: expected 200, got %d", status)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leave-manager/"+created.ID+"/pm-decision", token, map[string]string{"action": "approve"})
	if status != http.StatusOK {
		t.Fatalf("pm-decision: expected 200, got %d", status)
	}
	var decided struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &decided); err != nil || decided.Status != "approved" {
		t.Fatalf("expected approved, got %s (%v)", decided.Status, err)
	}

	// Approved requests cannot be cancelled.
	status, _ = doJSON(t, client, http.MethodDelete, ts.URL+"/api/v1/leaves/"+created.ID, token, nil)
	if status != http.StatusConflict {
		t.Fatalf("cancel approved: expected 409, got %d", status)
	}

	// Conflict analysis is readable and repeatable.
	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/leave-conflicts/analyze/"+created.ID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("analyze: expected 200, got %d", status)
	}
	var report struct {
		FinalDecision string `json:"finalDecision"`
	}
	if err := json.Unmarshal(env.Data, &report); err != nil || report.FinalDecision == "" {
		t.Fatalf("expected decision in report: %v", err)
	}

	// PDF export.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/leave-conflicts/analyze/"+created.ID+"/export", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %s", ct)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatal("expected PDF payload")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/auth/login", "", map[string]string{
		"email": "admin@test.local", "password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if env.Success {
		t.Fatal("expected failure envelope")
	}
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	status, _ := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/leaves", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}

	resp, err := client.Get(fmt.Sprintf("%s/healthz", ts.URL))
	if err != nil {
		t.Fatalf("healthz failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", resp.StatusCode)
	}
}
