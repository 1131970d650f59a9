package server_test

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

	"hrms/internal/app/server"
	"hrms/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func TestMovementApprovalJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		Addr:              ":0",
		DatabaseURL:       dbURL,
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		Environment:       "test",
		SeedAdminName:     "Test Admin",
		SeedAdminEmail:    "admin@test.local",
		SeedAdminPassword: "ChangeMe123!",
		RunMigrations:     true,
		RunSeed:           true,
		MigrationsDir:     "../../../migrations",
		MaxBodyBytes:      1048576,
		DefaultPageLimit:  25,
		MaxPageLimit:      200,
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Pool.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	suffix := time.Now().UnixNano()
	srcDeptID := createDepartment(t, client, ts.URL, token, fmt.Sprintf("Engineering %d", suffix))
	dstDeptID := createDepartment(t, client, ts.URL, token, fmt.Sprintf("Platform %d", suffix))
	positionID := createPosition(t, client, ts.URL, token, srcDeptID, fmt.Sprintf("Engineer %d", suffix))
	employeeID := createEmployee(t, client, ts.URL, token, srcDeptID, positionID, suffix)

	movementID := createTransfer(t, client, ts.URL, token, employeeID, dstDeptID)

	status := approveMovement(t, client, ts.URL, token, movementID)
	if status != "Approved" {
		t.Fatalf("expected movement status Approved, got %s", status)
	}

	emp := getJSONMap(t, client, ts.URL+"/api/v1/employees/"+employeeID, token)
	if emp["departmentId"] != dstDeptID {
		t.Fatalf("expected employee transferred to %s, got %v", dstDeptID, emp["departmentId"])
	}

	// finalized movements refuse a second approval
	postJSONStatus(t, client, ts.URL+"/api/v1/movements/"+movementID+"/approve", token, nil, http.StatusConflict)
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func createDepartment(t *testing.T, client *http.Client, baseURL, token, name string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/departments", token, map[string]any{
		"name":       name,
		"costCenter": fmt.Sprintf("CC-%s", name),
		"budget":     map[string]any{"salaries": 500000, "headcount": 20},
	})
	return decodeID(t, resp, "department")
}

func createPosition(t *testing.T, client *http.Client, baseURL, token, departmentID, title string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/positions", token, map[string]any{
		"title":        title,
		"departmentId": departmentID,
		"salaryRange":  map[string]any{"min": 4000, "max": 9000},
		"careerLevel":  "Mid",
	})
	return decodeID(t, resp, "position")
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, departmentID, positionID string, suffix int64) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/employees", token, map[string]any{
		"name":         "Journey Tester",
		"email":        fmt.Sprintf("journey-%d@example.com", suffix),
		"nationalId":   fmt.Sprintf("NID-%d", suffix),
		"departmentId": departmentID,
		"positionId":   positionID,
		"status":       "Active",
		"hiredAt":      "2024-02-01",
		"salary":       5000,
		"workload":     200,
		"workSchedule": "09:00-18:00",
		"workMode":     "OnSite",
		"careerLevel":  "Mid",
	})
	return decodeID(t, resp, "employee")
}

func createTransfer(t *testing.T, client *http.Client, baseURL, token, employeeID, departmentID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/movements", token, map[string]any{
		"employeeId":      employeeID,
		"type":            "Transfer",
		"newDepartmentId": departmentID,
		"justification":   "Team consolidation",
		"effectiveDate":   "2026-09-01",
	})
	return decodeID(t, resp, "movement")
}

func approveMovement(t *testing.T, client *http.Client, baseURL, token, movementID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/movements/"+movementID+"/approve", token, nil)
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode approve response: %v", err)
	}
	status, _ := payload["status"].(string)
	return status
}

func decodeID(t *testing.T, resp envelope, kind string) string {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode %s response: %v", kind, err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatalf("expected %s id", kind)
	}
	return id
}

func getJSONMap(t *testing.T, client *http.Client, url, token string) map[string]any {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	return payload
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	resp, raw := doPost(t, client, url, token, body)
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) {
	t.Helper()
	resp, raw := doPost(t, client, url, token, body)
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(raw))
	}
}

func doPost(t *testing.T, client *http.Client, url, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(http.MethodPost, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
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

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp, raw
}
