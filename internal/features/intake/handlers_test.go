package intake

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelbridge.asia/balance-bot/internal/bot/middleware"
)

// fakeAppSender записывает отправленные анкеты.
type fakeAppSender struct {
	apps   []*Application
	photos [][]string
	videos []string
	err    error
}

func (f *fakeAppSender) Send(app *Application, photoPaths []string, videoPath string) error {
	f.apps = append(f.apps, app)
	f.photos = append(f.photos, photoPaths)
	f.videos = append(f.videos, videoPath)
	return f.err
}

func newTestRouter(t *testing.T, sender ApplicationSender, limit int) *mux.Router {
	t.Helper()
	limiter := middleware.NewRateLimiter(limit, time.Minute)
	t.Cleanup(limiter.Close)

	h := NewHandler(sender, limiter, t.TempDir(), 100)
	r := mux.NewRouter()
	h.Register(r)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, photoName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photoName != "" {
		fw, err := w.CreateFormFile("photos", photoName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestSubmitApplication(t *testing.T) {
	sender := &fakeAppSender{}
	router := newTestRouter(t, sender, 10)

	body, contentType := multipartBody(t, map[string]string{
		"name":        "Анна",
		"age":         "25",
		"height":      "175",
		"citizenship": "Россия",
	}, "photo.jpg")

	req := httptest.NewRequest(http.MethodPost, "/api/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	require.Len(t, sender.apps, 1)
	assert.Equal(t, "Анна", sender.apps[0].Name)
	assert.Equal(t, "25", sender.apps[0].Age)
	require.Len(t, sender.photos[0], 1)
	assert.Equal(t, "", sender.videos[0])

	// временные файлы удалены после отправки
	for _, p := range sender.photos[0] {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), "файл %s должен быть удалён", p)
	}
}

// Вложение с запрещённым расширением пропускается, анкета уходит без него.
func TestSubmitSkipsDisallowedAttachment(t *testing.T) {
	sender := &fakeAppSender{}
	router := newTestRouter(t, sender, 10)

	body, contentType := multipartBody(t, map[string]string{"name": "Анна"}, "malware.exe")

	req := httptest.NewRequest(http.MethodPost, "/api/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sender.apps, 1)
	assert.Empty(t, sender.photos[0])
}

func TestSubmitSendFailure(t *testing.T) {
	sender := &fakeAppSender{err: assert.AnError}
	router := newTestRouter(t, sender, 10)

	body, contentType := multipartBody(t, map[string]string{"name": "Анна"}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSubmitRateLimited(t *testing.T) {
	sender := &fakeAppSender{}
	router := newTestRouter(t, sender, 1)

	for i, wantCode := range []int{http.StatusOK, http.StatusTooManyRequests} {
		body, contentType := multipartBody(t, map[string]string{"name": "Анна"}, "")
		req := httptest.NewRequest(http.MethodPost, "/api/submit", body)
		req.Header.Set("Content-Type", contentType)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, wantCode, rec.Code, "запрос %d", i+1)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeAppSender{}, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSaveUploadSanitizesPath(t *testing.T) {
	dir := t.TempDir()
	limiter := middleware.NewRateLimiter(10, time.Minute)
	t.Cleanup(limiter.Close)
	h := NewHandler(&fakeAppSender{}, limiter, dir, 100)

	body, contentType := multipartBody(t, nil, "../../escape.jpg")
	req := httptest.NewRequest(http.MethodPost, "/api/submit", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, req.ParseMultipartForm(1<<20))

	path, err := h.saveUpload(req.MultipartForm.File["photos"][0], allowedPhotoExtensions)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	// файл остаётся внутри папки загрузок
	assert.Equal(t, dir, filepath.Dir(path))
}
