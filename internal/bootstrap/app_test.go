package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/bootstrap"
	"docvault-backend/internal/shared/config"
	"docvault-backend/internal/users"
)

func buildApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
	}

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func signup(t *testing.T, router *gin.Engine, username, password string) {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": username,
		"password": password,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d: %s", username, resp.Code, resp.Body.String())
	}
}

func signin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/auth/signin", "", map[string]string{
		"username": username,
		"password": password,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("signin %s: expected 200, got %d: %s", username, resp.Code, resp.Body.String())
	}
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode signin response: %v", err)
	}
	if out.AccessToken == "" {
		t.Fatal("expected accessToken, got empty")
	}
	return out.AccessToken
}

// promote flips a user's role directly in the repository, sidestepping the
// chicken-and-egg of needing an Admin to create the first Admin.
func promote(t *testing.T, app *bootstrap.App, username, role string) {
	t.Helper()
	ctx := context.Background()
	user, err := app.UsersRepo.GetByUsername(ctx, username)
	if err != nil {
		t.Fatalf("get user %s: %v", username, err)
	}
	if err := app.UsersRepo.UpdateRole(ctx, user.ID, role); err != nil {
		t.Fatalf("update role: %v", err)
	}
}

func uploadDocument(t *testing.T, router *gin.Engine, token, fileName, title string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("file contents")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	for field, value := range map[string]string{
		"title":       title,
		"description": "test document",
		"author":      "alice",
	} {
		if err := writer.WriteField(field, value); err != nil {
			t.Fatalf("write field %s: %v", field, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAuthFlow(t *testing.T) {
	app := buildApp(t)
	router := app.Router

	signup(t, router, "alice", "wonderland123")

	// Duplicate username.
	resp := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "alice",
		"password": "different-pass",
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate signup, got %d", resp.Code)
	}

	// Unknown user.
	resp = doJSON(t, router, http.MethodPost, "/auth/signin", "", map[string]string{
		"username": "nobody",
		"password": "wonderland123",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", resp.Code)
	}

	// Wrong password.
	resp = doJSON(t, router, http.MethodPost, "/auth/signin", "", map[string]string{
		"username": "alice",
		"password": "not-the-password",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", resp.Code)
	}

	token := signin(t, router, "alice", "wonderland123")

	resp = doJSON(t, router, http.MethodGet, "/users/profile", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for profile, got %d: %s", resp.Code, resp.Body.String())
	}
	var profile struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Username != "alice" || profile.Role != users.RoleViewer {
		t.Fatalf("expected alice/Viewer, got %s/%s", profile.Username, profile.Role)
	}
}

func TestSignupValidatesCredentialLengths(t *testing.T) {
	app := buildApp(t)

	for _, tc := range []struct {
		name     string
		username string
		password string
	}{
		{"short username", "al", "wonderland123"},
		{"short password", "alice", "short"},
		{"long password", "alice", strings.Repeat("p", 26)},
	} {
		resp := doJSON(t, app.Router, http.MethodPost, "/auth/signup", "", map[string]string{
			"username": tc.username,
			"password": tc.password,
		})
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, resp.Code)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app.Router, http.MethodGet, "/documents", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
}

func TestViewerCannotUpload(t *testing.T) {
	app := buildApp(t)
	router := app.Router

	signup(t, router, "alice", "wonderland123")
	token := signin(t, router, "alice", "wonderland123")

	resp := uploadDocument(t, router, token, "report.pdf", "Q3 Report")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for Viewer upload, got %d", resp.Code)
	}
}

func TestDocumentLifecycle(t *testing.T) {
	app := buildApp(t)
	router := app.Router

	signup(t, router, "alice", "wonderland123")
	promote(t, app, "alice", users.RoleAdmin)
	token := signin(t, router, "alice", "wonderland123")

	resp := uploadDocument(t, router, token, "report.pdf", "Q3 Report")
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for upload, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID       string `json:"id"`
		FilePath string `json:"filePath"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if created.ID == "" || !strings.HasSuffix(created.FilePath, "-report.pdf") {
		t.Fatalf("unexpected upload response: %+v", created)
	}

	// Duplicate title.
	resp = uploadDocument(t, router, token, "other.pdf", "Q3 Report")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate title, got %d", resp.Code)
	}

	// Search filter.
	if resp := uploadDocument(t, router, token, "handbook.pdf", "Handbook"); resp.Code != http.StatusCreated {
		t.Fatalf("upload handbook: expected 201, got %d", resp.Code)
	}
	resp = doJSON(t, router, http.MethodGet, "/documents?search=report", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for list, got %d", resp.Code)
	}
	var listed []struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "Q3 Report" {
		t.Fatalf("expected only Q3 Report, got %+v", listed)
	}

	// Partial update.
	resp = doJSON(t, router, http.MethodPatch, "/documents/"+created.ID, token, map[string]string{
		"title": "Q3 Report (final)",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for update, got %d: %s", resp.Code, resp.Body.String())
	}

	// Download.
	resp = doJSON(t, router, http.MethodGet, "/documents/"+created.ID+"/download", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for download, got %d", resp.Code)
	}
	if resp.Body.String() != "file contents" {
		t.Fatalf("unexpected download body: %q", resp.Body.String())
	}

	// Delete.
	resp = doJSON(t, router, http.MethodDelete, "/documents/"+created.ID, token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for delete, got %d", resp.Code)
	}
	resp = doJSON(t, router, http.MethodGet, "/documents/"+created.ID, token, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestIngestionFlow(t *testing.T) {
	app := buildApp(t)
	router := app.Router

	signup(t, router, "admin-user", "supersecret1")
	promote(t, app, "admin-user", users.RoleAdmin)
	token := signin(t, router, "admin-user", "supersecret1")

	resp := doJSON(t, router, http.MethodPost, "/ingestion/trigger/doc-1", token, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for trigger, got %d: %s", resp.Code, resp.Body.String())
	}
	var triggered struct {
		IngestionID string `json:"ingestionId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&triggered); err != nil {
		t.Fatalf("decode trigger response: %v", err)
	}
	if triggered.IngestionID == "" {
		t.Fatal("expected ingestionId, got empty")
	}

	statusPath := "/ingestion/" + triggered.IngestionID + "/status"
	resp = doJSON(t, router, http.MethodGet, statusPath, token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for status, got %d", resp.Code)
	}
	var status struct {
		Status      string  `json:"status"`
		CompletedAt *string `json:"completedAt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Status != "IN_PROGRESS" || status.CompletedAt != nil {
		t.Fatalf("expected IN_PROGRESS without completedAt, got %+v", status)
	}

	resp = doJSON(t, router, http.MethodPatch, "/ingestion/"+triggered.IngestionID+"/complete", token, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for complete, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, statusPath, token, nil)
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Status != "COMPLETED" || status.CompletedAt == nil {
		t.Fatalf("expected COMPLETED with completedAt, got %+v", status)
	}

	// Cross-terminal transition is rejected.
	resp = doJSON(t, router, http.MethodPatch, "/ingestion/"+triggered.IngestionID+"/fail", token, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for fail after complete, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/ingestion/all", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for list all, got %d", resp.Code)
	}
}
