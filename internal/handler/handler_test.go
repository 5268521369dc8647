package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/agent"
	"github.com/ideaforge-io/ideaforge/internal/chain"
	"github.com/ideaforge-io/ideaforge/internal/handler"
	"github.com/ideaforge-io/ideaforge/internal/repository/kv"
	"github.com/ideaforge-io/ideaforge/internal/service"
	"github.com/ideaforge-io/ideaforge/internal/store"
)

const testTokenSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	users := kv.NewUserRepository(st)
	sessions := kv.NewSessionRepository(st)
	ideas := kv.NewIdeaRepository(st)
	projects := kv.NewProjectRepository(st)
	funding := kv.NewFundingRepository(st)
	records := kv.NewDataRecordRepository(st)
	stats := kv.NewStatsRepository(st)

	oracle := agent.Fallback{}
	auth := service.NewAuthService(users, sessions, testTokenSecret, 4, time.Hour)
	ideaSvc := service.NewIdeaService(ideas, oracle)
	projectSvc := service.NewProjectService(projects)
	fundingSvc := service.NewFundingService(funding, projects)
	dataSvc := service.NewDataService(records)
	profileSvc := service.NewProfileService(users, ideas, projects)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Handlers{
		Auth:     handler.NewAuthHandler(auth),
		Ideas:    handler.NewIdeaHandler(ideaSvc),
		Projects: handler.NewProjectHandler(projectSvc),
		Funding:  handler.NewFundingHandler(fundingSvc),
		Profiles: handler.NewProfileHandler(profileSvc),
		DB:       handler.NewDBHandler(profileSvc, dataSvc, users, sessions, stats),
		Agents:   handler.NewAgentHandler(oracle),
		Chain:    handler.NewChainHandler(chain.New("", "", "")),
		Health:   handler.NewHealthHandler(),
	})

	srv := httptest.NewServer(handler.CORS(handler.WithAuth(auth, mux)))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path, token string, body map[string]any) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

func signup(t *testing.T, srv *httptest.Server, email string) (userID, token string) {
	t.Helper()
	status, body := postJSON(t, srv, "/auth", "", map[string]any{
		"type":     "signup",
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})
	if status != http.StatusOK {
		t.Fatalf("signup returned %d: %v", status, body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user object, got %v", body)
	}
	token, _ = body["token"].(string)
	if token == "" {
		t.Fatalf("expected token, got %v", body)
	}
	return user["id"].(string), token
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("expected healthy, got %v", body)
	}
}

func TestAuth_SignupAndLogin(t *testing.T) {
	srv := newTestServer(t)

	userID, _ := signup(t, srv, "a@x.com")
	if userID == "" {
		t.Fatal("expected user id")
	}

	status, body := postJSON(t, srv, "/auth", "", map[string]any{
		"type":     "login",
		"email":    "a@x.com",
		"password": "password123",
	})
	if status != http.StatusOK {
		t.Fatalf("login returned %d: %v", status, body)
	}
	if body["success"] != true {
		t.Fatalf("expected success envelope, got %v", body)
	}
	user := body["user"].(map[string]any)
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatal("response leaked the password hash")
	}
}

func TestAuth_DuplicateEmailConflict(t *testing.T) {
	srv := newTestServer(t)

	signup(t, srv, "dup@x.com")
	status, body := postJSON(t, srv, "/auth", "", map[string]any{
		"type":     "signup",
		"email":    "dup@x.com",
		"password": "password123",
	})
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %v", status, body)
	}
	if body["success"] != false {
		t.Fatalf("expected failure envelope, got %v", body)
	}
}

func TestAuth_InvalidOperation(t *testing.T) {
	srv := newTestServer(t)

	status, body := postJSON(t, srv, "/auth", "", map[string]any{"type": "otp"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %v", status, body)
	}
	if body["error"] != "Invalid operation type" {
		t.Fatalf("unexpected error message: %v", body)
	}
}

func TestAuth_LogoutInvalidatesToken(t *testing.T) {
	srv := newTestServer(t)

	_, token := signup(t, srv, "a@x.com")

	status, _ := postJSON(t, srv, "/auth", token, map[string]any{"type": "logout"})
	if status != http.StatusOK {
		t.Fatalf("logout returned %d", status)
	}

	// The stale token no longer authenticates a protected operation.
	status, body := postJSON(t, srv, "/api/ideas", token, map[string]any{
		"operation":   "create",
		"title":       "T",
		"description": "d",
		"category":    "c",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d: %v", status, body)
	}
}

func TestIdeas_CreateRequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	status, body := postJSON(t, srv, "/api/ideas", "", map[string]any{
		"operation":   "create",
		"title":       "T",
		"description": "d",
		"category":    "c",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %v", status, body)
	}
	if body["error"] != "Authentication required" {
		t.Fatalf("unexpected error message: %v", body)
	}
}

func TestIdeas_CreateAndFetch(t *testing.T) {
	srv := newTestServer(t)

	userID, token := signup(t, srv, "a@x.com")

	status, body := postJSON(t, srv, "/api/ideas", token, map[string]any{
		"operation":   "create",
		"title":       "T",
		"description": "d",
		"category":    "c",
	})
	if status != http.StatusOK {
		t.Fatalf("create returned %d: %v", status, body)
	}
	ideaID, _ := body["ideaId"].(string)
	if ideaID == "" {
		t.Fatalf("expected ideaId, got %v", body)
	}

	status, body = postJSON(t, srv, "/api/ideas", "", map[string]any{
		"operation": "getById",
		"ideaId":    ideaID,
	})
	if status != http.StatusOK {
		t.Fatalf("getById returned %d: %v", status, body)
	}
	idea := body["idea"].(map[string]any)
	if idea["title"] != "T" || idea["creatorId"] != userID {
		t.Fatalf("unexpected idea: %v", idea)
	}
}

func TestIdeas_GetMissingIs404(t *testing.T) {
	srv := newTestServer(t)

	status, body := postJSON(t, srv, "/api/ideas", "", map[string]any{
		"operation": "getById",
		"ideaId":    "idea_missing",
	})
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %v", status, body)
	}
	if body["error"] != "Idea not found" {
		t.Fatalf("unexpected error message: %v", body)
	}
}

func TestIdeas_UpdateByNonCreatorIsForbidden(t *testing.T) {
	srv := newTestServer(t)

	_, creatorToken := signup(t, srv, "creator@x.com")
	_, strangerToken := signup(t, srv, "stranger@x.com")

	_, body := postJSON(t, srv, "/api/ideas", creatorToken, map[string]any{
		"operation":   "create",
		"title":       "T",
		"description": "d",
		"category":    "c",
	})
	ideaID := body["ideaId"].(string)

	status, body := postJSON(t, srv, "/api/ideas", strangerToken, map[string]any{
		"operation": "update",
		"ideaId":    ideaID,
		"updates":   map[string]any{"title": "Z"},
	})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %v", status, body)
	}
	if body["error"] != "Access denied" {
		t.Fatalf("unexpected error message: %v", body)
	}

	// Title is unchanged.
	_, body = postJSON(t, srv, "/api/ideas", "", map[string]any{
		"operation": "getById",
		"ideaId":    ideaID,
	})
	if body["idea"].(map[string]any)["title"] != "T" {
		t.Fatalf("denied update changed the idea: %v", body)
	}
}

func TestDB_DataRecordLifecycle(t *testing.T) {
	srv := newTestServer(t)

	_, token := signup(t, srv, "a@x.com")

	status, body := postJSON(t, srv, "/db", token, map[string]any{
		"type":  "createDataRecord",
		"key":   "prefs",
		"value": map[string]any{"theme": "dark"},
	})
	if status != http.StatusOK {
		t.Fatalf("createDataRecord returned %d: %v", status, body)
	}
	recordID := body["recordId"].(string)

	status, body = postJSON(t, srv, "/db", token, map[string]any{
		"type":     "getDataRecord",
		"recordId": recordID,
	})
	if status != http.StatusOK {
		t.Fatalf("getDataRecord returned %d: %v", status, body)
	}
	record := body["record"].(map[string]any)
	if record["key"] != "prefs" {
		t.Fatalf("unexpected record: %v", record)
	}

	status, body = postJSON(t, srv, "/db", token, map[string]any{
		"type":     "updateDataRecord",
		"recordId": recordID,
		"updates":  map[string]any{"value": "light"},
	})
	if status != http.StatusOK {
		t.Fatalf("updateDataRecord returned %d: %v", status, body)
	}

	status, body = postJSON(t, srv, "/db", token, map[string]any{
		"type":     "deleteDataRecord",
		"recordId": recordID,
	})
	if status != http.StatusOK {
		t.Fatalf("deleteDataRecord returned %d: %v", status, body)
	}

	status, _ = postJSON(t, srv, "/db", token, map[string]any{
		"type":     "getDataRecord",
		"recordId": recordID,
	})
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}

func TestDB_Stats(t *testing.T) {
	srv := newTestServer(t)

	signup(t, srv, "a@x.com")

	status, body := postJSON(t, srv, "/db", "", map[string]any{"type": "getDBStats"})
	if status != http.StatusOK {
		t.Fatalf("getDBStats returned %d: %v", status, body)
	}
	stats := body["stats"].(map[string]any)
	if stats["users"].(float64) != 1 || stats["sessions"].(float64) != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestProfiles_GetStats(t *testing.T) {
	srv := newTestServer(t)

	_, token := signup(t, srv, "a@x.com")
	postJSON(t, srv, "/api/ideas", token, map[string]any{
		"operation":   "create",
		"title":       "T",
		"description": "d",
		"category":    "c",
	})

	status, body := postJSON(t, srv, "/api/profiles", token, map[string]any{"operation": "getStats"})
	if status != http.StatusOK {
		t.Fatalf("getStats returned %d: %v", status, body)
	}
	stats := body["stats"].(map[string]any)
	if stats["ideas"].(float64) != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestAgents_ValidateIdeaFallback(t *testing.T) {
	srv := newTestServer(t)

	status, body := postJSON(t, srv, "/api/ai-agents", "", map[string]any{
		"type":        "validate_idea",
		"title":       "T",
		"description": "d",
		"category":    "c",
	})
	if status != http.StatusOK {
		t.Fatalf("validate_idea returned %d: %v", status, body)
	}
	data := body["data"].(map[string]any)
	if data["feasibilityScore"].(float64) != 65 {
		t.Fatalf("unexpected fallback assessment: %v", data)
	}
}

func TestChain_MockHealthAndConfig(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/chain/health")
	if err != nil {
		t.Fatalf("GET /chain/health: %v", err)
	}
	defer resp.Body.Close()
	var health map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health["chain"].(map[string]any)["mock"] != true {
		t.Fatalf("expected mock mode, got %v", health)
	}

	status, body := postJSON(t, srv, "/chain/stream", "", map[string]any{
		"recipient": "0xabc",
		"amount":    "10",
		"duration":  3600,
	})
	if status != http.StatusOK {
		t.Fatalf("stream returned %d: %v", status, body)
	}
	stream := body["stream"].(map[string]any)
	if stream["streamId"] == "" {
		t.Fatalf("expected streamId, got %v", body)
	}
}

func TestCORS_Preflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/ideas", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS allow-origin header")
	}
}
