package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"golf-coach/internal/ghin"
	"golf-coach/internal/model"
	"golf-coach/internal/service"
	"golf-coach/internal/store"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func init() { gin.SetMode(gin.TestMode) }

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type stubExtractor struct{}

func (stubExtractor) ExtractRound(context.Context, []byte, string) (*model.ExtractedRound, error) {
	score := 78
	course := "Presidio Golf Course"
	return &model.ExtractedRound{TotalScore: &score, CourseName: &course}, nil
}

type testServer struct {
	router    *gin.Engine
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := store.NewMemory()
	u, err := store.Seed(context.Background(), st)
	require.NoError(t, err)

	dir := t.TempDir()
	ghinFactory := service.NewGHINClientFactory(ghin.Config{BaseURL: "http://127.0.0.1:1"})
	h := Handlers{
		Stats:     NewStatsHandler(service.NewStatsService(st)),
		Rounds:    NewRoundHandler(service.NewRoundService(st), service.NewScreenshotService(stubExtractor{}), dir, 1<<10),
		Activity:  NewActivityHandler(service.NewActivityService(st)),
		Resources: NewResourceHandler(service.NewResourceService(st)),
		Plans:     NewPlanHandler(service.NewPlanService(st, nil)),
		Ghin:      NewGhinHandler(service.NewGhinService(st, service.NewStateSigner("s"), ghinFactory, "http://localhost/api/ghin/callback")),
	}
	return &testServer{router: NewRouter(RouterConfig{DemoUserID: u.ID}, h), uploadDir: dir}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthAndUser(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", nil).Code)

	w := s.do(t, http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	u := decode(t, w)
	assert.Equal(t, "12.4", u["handicap"])
	assert.Equal(t, "mike.johnson", u["username"])
	assert.NotContains(t, u, "password")
}

func TestStats(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 3, body["totalRounds"])
	assert.EqualValues(t, 2, body["thisWeekActivities"])
	assert.Equal(t, "12.4", body["currentHandicap"])
	recent := body["recentRounds"].([]any)
	require.Len(t, recent, 3)
	first := recent[0].(map[string]any)
	assert.Equal(t, "2024-12-15", first["date"])
	assert.Equal(t, "8.5", first["differential"])
	assert.Equal(t, "72.1", first["courseRating"])
}

func TestPerformance(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/performance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	for _, k := range []string{"fairwayAccuracy", "greensInRegulation", "putting", "recommendation"} {
		assert.Contains(t, body, k)
	}

	w = s.do(t, http.MethodGet, "/api/performance/activities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "practiceBalance")
}

func TestCreateRound(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/rounds", map[string]any{
		"date": "2025-03-02", "courseName": "Harding Park", "totalScore": 84,
		"courseRating": 72.1, "slopeRating": 131, "differential": 1.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "10.3", body["differential"])
	assert.Equal(t, "manual", body["source"])

	id := int(body["id"].(float64))
	w = s.do(t, http.MethodGet, "/api/rounds/"+strconv.Itoa(id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Harding Park", decode(t, w)["courseName"])
}

func TestCreateRoundValidation(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/rounds", map[string]any{
		"date": "2025-03-02", "courseName": "Harding Park", "totalScore": 10,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]any)
	assert.Contains(t, fields, "totalScore")

	w = s.do(t, http.MethodPost, "/api/rounds", map[string]any{
		"date": "yesterday", "courseName": "Harding Park", "totalScore": 80,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "date")

	req := httptest.NewRequest(http.MethodPost, "/api/rounds", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoundNotFound(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/rounds/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/rounds/abc", nil).Code)
}

func TestExportRounds(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/rounds/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "rounds.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Rounds")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestActivities(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/activities", map[string]any{
		"date": "2025-03-02", "activityType": "practice-area", "subType": "wedge-work",
		"startTime": "2025-03-02T08:00:00Z", "endTime": "2025-03-02T09:15:00Z",
		"metadata": map[string]any{"balls": 60},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, 75, body["duration"])
	id := int(body["id"].(float64))

	w = s.do(t, http.MethodPatch, "/api/activities/"+strconv.Itoa(id), map[string]any{"comment": "felt good"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "felt good", body["comment"])
	assert.Equal(t, "wedge-work", body["subType"])

	w = s.do(t, http.MethodPost, "/api/activities", map[string]any{"date": "2025-03-02", "activityType": "sleeping"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "activityType")

	w = s.do(t, http.MethodGet, "/api/activities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 4)
}

func TestResources(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/resources", map[string]any{"type": "equipment", "name": "Launch monitor"})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["available"])
	path := "/api/resources/" + strconv.Itoa(int(body["id"].(float64)))

	w = s.do(t, http.MethodPatch, path, map[string]any{"available": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["available"])

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPatch, path, map[string]any{"name": "x"}).Code)
}

func TestPracticePlans(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/practice-plans/active", nil).Code)

	w := s.do(t, http.MethodPost, "/api/practice-plans/generate", map[string]any{
		"daysPerWeek": 3, "hoursPerSession": 1.5, "preferredTime": "evening",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "fallback", body["source"])
	assert.Equal(t, "1.5", body["hoursPerSession"])
	assert.Equal(t, "3-Day Evening Plan", body["name"])

	w = s.do(t, http.MethodGet, "/api/practice-plans/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body["id"], decode(t, w)["id"])

	w = s.do(t, http.MethodPost, "/api/practice-plans/generate", map[string]any{"daysPerWeek": 9, "preferredTime": "evening"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGhinNotConfigured(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/ghin/auth-url", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "setup_required", decode(t, w)["code"])

	w = s.do(t, http.MethodPost, "/api/ghin/sync", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "setup_required", decode(t, w)["code"])

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/ghin/disconnect", nil).Code)
}

func TestGhinCallbackRedirects(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/ghin/callback?code=abc&state=forged", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, onboardingError, w.Header().Get("Location"))

	w = s.do(t, http.MethodGet, "/api/ghin/callback?error=access_denied", nil)
	assert.Equal(t, onboardingError, w.Header().Get("Location"))
}

func upload(t *testing.T, s *testServer, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("screenshot", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/rounds/screenshot", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func uploadDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScreenshotUpload(t *testing.T) {
	s := newTestServer(t)
	w := upload(t, s, "card.png", pngHeader)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ex := decode(t, w)["extracted"].(map[string]any)
	assert.EqualValues(t, 78, ex["totalScore"])
	assert.Equal(t, "Presidio Golf Course", ex["courseName"])
	assert.NotContains(t, ex, "slopeRating")
	uploadDirEmpty(t, s.uploadDir)
}

func TestScreenshotRejected(t *testing.T) {
	s := newTestServer(t)

	w := upload(t, s, "notes.png", []byte("just some text, not an image"))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	uploadDirEmpty(t, s.uploadDir)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2<<10)...)
	w = upload(t, s, "big.png", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	uploadDirEmpty(t, s.uploadDir)

	req := httptest.NewRequest(http.MethodPost, "/api/rounds/screenshot", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
