package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festie/shefest-tools/internal/candidates"
	"github.com/festie/shefest-tools/internal/export"
	"github.com/festie/shefest-tools/internal/render"
	"github.com/festie/shefest-tools/internal/session"
	"github.com/festie/shefest-tools/internal/submit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 99, A: 255})
		}
	}
	return img
}

func writeDataset(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func fullDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeDataset(t, dir, "study_centres.json", `["Centre X","Centre Y"]`)
	writeDataset(t, dir, "candidates.json", `[
		{"chestNo":"1","name":"Amina","studyCentre":"Centre X","section":"junior","programs":[{"programCode":"J1","programName":"song"}]},
		{"chestNo":"2","name":"Noora","studyCentre":"Centre Y","section":"junior","programs":[]},
		{"chestNo":"3","name":"Hiba","studyCentre":"Centre X","section":"senior","programs":[]},
		{"chestNo":"4","name":"Mariyam","studyCentre":"Centre Y","section":"senior","programs":[]},
		{"chestNo":"5","name":"Raihana","studyCentre":"Centre X","section":"senior","programs":[]}
	]`)
	writeDataset(t, dir, "data.json", `[{"chestNo":"101","name":"fathima noora","studyCentre":"Centre X","section":"junior","programs":[]}]`)
	return dir
}

type testEnv struct {
	router   *gin.Engine
	sessions *session.Store
}

func newTestEnv(t *testing.T, dataDir string, submitter *submit.Submitter) *testEnv {
	t.Helper()
	logger := log.New(io.Discard)
	fonts, err := render.LoadFonts("")
	require.NoError(t, err)

	sessions := session.NewStore(time.Minute)
	t.Cleanup(sessions.Close)

	srv := NewServer(candidates.Load(dataDir), sessions, export.New(logger),
		submitter, fonts, testImage(320, 480), logger)
	r := gin.New()
	RegisterRoutes(r, srv)
	return &testEnv{router: r, sessions: sessions}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postJSON(path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, fullDataDir(t), nil)
	w := env.get("/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCentres(t *testing.T) {
	env := newTestEnv(t, fullDataDir(t), nil)
	w := env.get("/api/centres")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Centre X")
}

func TestCentresUnavailable(t *testing.T) {
	env := newTestEnv(t, t.TempDir(), nil)
	w := env.get("/api/centres")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFilterCandidates(t *testing.T) {
	env := newTestEnv(t, fullDataDir(t), nil)

	w := env.get("/api/candidates?centre=Centre+X")
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Selected   bool                   `json:"selected"`
		Count      int                    `json:"count"`
		Candidates []candidates.Candidate `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Selected)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, "1", res.Candidates[0].ChestNo)
	assert.Equal(t, "3", res.Candidates[1].ChestNo)
	assert.Equal(t, "5", res.Candidates[2].ChestNo)

	// Nothing selected yet: empty and unselected.
	w = env.get("/api/candidates")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Selected)
	assert.Equal(t, 0, res.Count)
}

func TestLookupCandidate(t *testing.T) {
	env := newTestEnv(t, fullDataDir(t), nil)

	w := env.get("/api/candidates/101")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fathima noora")

	// Whitespace is not trimmed.
	w = env.get("/api/candidates/%20%20101")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No candidate found")
}

func TestCardPNG(t *testing.T) {
	env := newTestEnv(t, fullDataDir(t), nil)

	w := env.get("/api/idcards/1/png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Amina.png")

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 1260, img.Bounds().Dx())
}

func TestCardsPDF(t *testing.T) {
	env := newTestEnv(t, fullDataDir(t), nil)

	// No centre selected.
	w := env.get("/api/idcards/pdf")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Selected but empty.
	w = env.get("/api/idcards/pdf?centre=Centre+Z")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.get("/api/idcards/pdf?centre=Centre+X")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Centre X_ID_Cards.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func (e *testEnv) createSession(t *testing.T) string {
	t.Helper()
	w := e.postJSON("/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var res struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.ID
}

func (e *testEnv) uploadImage(t *testing.T, id string, img image.Image) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, img))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(req)
}

func TestPosterSessionFlow(t *testing.T) {
	env := newTestEnv(t, fullDataDir(t), nil)
	id := env.createSession(t)

	// Enter name.
	req := httptest.NewRequest(http.MethodPut, "/api/sessions/"+id+"/name",
		bytes.NewReader([]byte(`{"name":"amina sherin"}`)))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusNoContent, env.do(req).Code)

	// Select a photo.
	w := env.uploadImage(t, id, testImage(400, 500))
	require.Equal(t, http.StatusOK, w.Code)

	// Export before cropping is a validation error.
	w = env.postJSON("/api/sessions/"+id+"/export", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Confirm a 4:4.4 crop.
	w = env.postJSON("/api/sessions/"+id+"/crop",
		render.CropRegion{X: 0, Y: 0, Width: 200, Height: 220})
	require.Equal(t, http.StatusOK, w.Code)

	// Export the composed poster.
	w = env.postJSON("/api/sessions/"+id+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "poster.png")

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 960, img.Bounds().Dx())
}

func TestConfirmCropWithoutImage(t *testing.T) {
	env := newTestEnv(t, fullDataDir(t), nil)
	id := env.createSession(t)

	w := env.postJSON("/api/sessions/"+id+"/crop",
		render.CropRegion{X: 0, Y: 0, Width: 100, Height: 110})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no image selected")
}

func TestUnknownSession(t *testing.T) {
	env := newTestEnv(t, fullDataDir(t), nil)
	w := env.postJSON("/api/sessions/nope/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportSucceedsWhenSubmissionFails(t *testing.T) {
	// Scenario: image host keeps returning 500. The download must still
	// complete with no user-visible error.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	submitter := submit.New(submit.Config{UploadURL: upstream.URL}, log.New(io.Discard))
	env := newTestEnv(t, fullDataDir(t), submitter)
	id := env.createSession(t)

	require.Equal(t, http.StatusOK, env.uploadImage(t, id, testImage(400, 500)).Code)
	require.Equal(t, http.StatusOK, env.postJSON("/api/sessions/"+id+"/crop",
		render.CropRegion{X: 0, Y: 0, Width: 200, Height: 220}).Code)

	w := env.postJSON(fmt.Sprintf("/api/sessions/%s/export?layout=small", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}
