package submissions_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/bootstrap"
	"jobtrack-backend/internal/shared/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	app, err := bootstrap.Build(config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("bootstrap.Build: %v", err)
	}
	return app.Router
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func registerRecruiter(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":     "Recruiter " + email,
		"email":    email,
		"password": "secret1",
		"company":  "Acme",
		"role":     "hr",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", email, w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("login %s: no token in response", email)
	}
	return token
}

func createJob(t *testing.T, r *gin.Engine, token, title string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/jobs", token, map[string]any{
		"title":       title,
		"description": "real work",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create job: status %d body %s", w.Code, w.Body.String())
	}
	slug, _ := decodeBody(t, w)["slug"].(string)
	if slug == "" {
		t.Fatal("create job: no slug in response")
	}
	return slug
}

func applyMultipart(t *testing.T, r *gin.Engine, slug, name, email string, withFile bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if name != "" {
		_ = mw.WriteField("name", name)
	}
	if email != "" {
		_ = mw.WriteField("email", email)
	}
	if withFile {
		part, err := mw.CreateFormFile("resume", "resume.txt")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("plain text resume")); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/"+slug+"/apply", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApplyListUpdateFlow(t *testing.T) {
	r := newTestRouter(t)
	token := registerRecruiter(t, r, "owner@example.com")
	slug := createJob(t, r, token, "Backend Engineer")

	w := applyMultipart(t, r, slug, "Ada Lovelace", "ada@example.com", true)
	if w.Code != http.StatusCreated {
		t.Fatalf("apply: status %d body %s", w.Code, w.Body.String())
	}
	applied := decodeBody(t, w)
	application, _ := applied["application"].(map[string]any)
	if application == nil {
		t.Fatalf("apply: missing application in body %s", w.Body.String())
	}
	applicationID, _ := application["id"].(string)
	if applicationID == "" {
		t.Fatal("apply: missing application id")
	}
	if status := application["status"]; status != "pending" {
		t.Fatalf("apply: expected external status pending, got %v", status)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/jobs/"+slug+"/applications", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d body %s", w.Code, w.Body.String())
	}
	listing := decodeBody(t, w)
	apps, _ := listing["applications"].([]any)
	if len(apps) != 1 {
		t.Fatalf("list: expected 1 application, got %d", len(apps))
	}
	first, _ := apps[0].(map[string]any)
	if first["applicantName"] != "Ada Lovelace" {
		t.Fatalf("list: unexpected applicant name %v", first["applicantName"])
	}
	if first["status"] != "pending" {
		t.Fatalf("list: expected pending, got %v", first["status"])
	}
	if _, hasSkills := first["skillsMatched"]; !hasSkills {
		t.Fatal("list: skillsMatched missing from projection")
	}
	pagination, _ := listing["pagination"].(map[string]any)
	if pagination["total"] != float64(1) || pagination["page"] != float64(1) {
		t.Fatalf("list: unexpected pagination %v", pagination)
	}

	w = doJSON(t, r, http.MethodPut, "/api/v1/jobs/"+slug+"/applications/"+applicationID, token,
		map[string]any{"status": "shortlisted"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status: status %d body %s", w.Code, w.Body.String())
	}
	updated := decodeBody(t, w)
	updatedApp, _ := updated["application"].(map[string]any)
	if updatedApp["status"] != "shortlisted" {
		t.Fatalf("update status: expected shortlisted, got %v", updatedApp["status"])
	}
}

func TestApplyValidation(t *testing.T) {
	r := newTestRouter(t)
	token := registerRecruiter(t, r, "owner2@example.com")
	slug := createJob(t, r, token, "Data Engineer")

	w := applyMultipart(t, r, slug, "", "ada@example.com", false)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing name: status %d body %s", w.Code, w.Body.String())
	}

	w = applyMultipart(t, r, "no-such-job", "Ada", "ada@example.com", false)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown job: status %d body %s", w.Code, w.Body.String())
	}
}

func TestUpdateStatusFailureModes(t *testing.T) {
	r := newTestRouter(t)
	owner := registerRecruiter(t, r, "owner3@example.com")
	other := registerRecruiter(t, r, "other3@example.com")
	slug := createJob(t, r, owner, "Platform Engineer")

	w := applyMultipart(t, r, slug, "Ada", "ada@example.com", false)
	if w.Code != http.StatusCreated {
		t.Fatalf("apply: status %d body %s", w.Code, w.Body.String())
	}
	application, _ := decodeBody(t, w)["application"].(map[string]any)
	applicationID, _ := application["id"].(string)

	path := "/api/v1/jobs/" + slug + "/applications/" + applicationID

	w = doJSON(t, r, http.MethodPut, path, owner, map[string]any{"status": "archived"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: status %d body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "invalid_status") {
		t.Fatalf("unknown status: expected invalid_status code, body %s", w.Body.String())
	}

	// A foreign recruiter sees the same 404 as a missing job.
	w = doJSON(t, r, http.MethodPut, path, other, map[string]any{"status": "reviewed"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign recruiter: status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/api/v1/jobs/"+slug+"/applications/nope", owner,
		map[string]any{"status": "reviewed"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown application: status %d body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "application_not_found") {
		t.Fatalf("unknown application: expected application_not_found code, body %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, path, "", map[string]any{"status": "reviewed"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous update: status %d body %s", w.Code, w.Body.String())
	}
}

func TestListRequiresRecruiterRole(t *testing.T) {
	r := newTestRouter(t)
	owner := registerRecruiter(t, r, "owner4@example.com")
	slug := createJob(t, r, owner, "QA Engineer")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":     "Plain Applicant",
		"email":    "applicant4@example.com",
		"password": "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register applicant: status %d body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "applicant4@example.com",
		"password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login applicant: status %d body %s", w.Code, w.Body.String())
	}
	applicantToken, _ := decodeBody(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/v1/jobs/"+slug+"/applications", applicantToken, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("applicant listing: status %d body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "recruiter access required") {
		t.Fatalf("applicant listing: expected recruiter guard message, body %s", w.Body.String())
	}
}

func TestListPaginationOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := registerRecruiter(t, r, "owner5@example.com")
	slug := createJob(t, r, token, "SRE")

	for i := 0; i < 5; i++ {
		w := applyMultipart(t, r, slug, fmt.Sprintf("Applicant %d", i), fmt.Sprintf("a%d@example.com", i), false)
		if w.Code != http.StatusCreated {
			t.Fatalf("apply %d: status %d body %s", i, w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/jobs/"+slug+"/applications?page=2&limit=2", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list page 2: status %d body %s", w.Code, w.Body.String())
	}
	listing := decodeBody(t, w)
	apps, _ := listing["applications"].([]any)
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications on page 2, got %d", len(apps))
	}
	pagination, _ := listing["pagination"].(map[string]any)
	if pagination["total"] != float64(5) || pagination["pages"] != float64(3) || pagination["page"] != float64(2) {
		t.Fatalf("unexpected pagination %v", pagination)
	}
}
