// Package intake — handlers.go обрабатывает HTTP-запросы сайта:
// приём multipart-формы с анкетой и вложениями.
package intake

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"modelbridge.asia/balance-bot/internal/bot/middleware"
	"modelbridge.asia/balance-bot/internal/common"
)

// ApplicationSender — контракт отправки анкеты (реализует Notifier).
type ApplicationSender interface {
	Send(app *Application, photoPaths []string, videoPath string) error
}

// Handler обрабатывает HTTP-эндпоинты анкет.
type Handler struct {
	notifier  ApplicationSender
	limiter   *middleware.RateLimiter
	uploadDir string
	maxUpload int64 // байты
}

// NewHandler создаёт HTTP-обработчик анкет.
func NewHandler(notifier ApplicationSender, limiter *middleware.RateLimiter, uploadDir string, maxUploadMB int64) *Handler {
	return &Handler{
		notifier:  notifier,
		limiter:   limiter,
		uploadDir: uploadDir,
		maxUpload: maxUploadMB << 20,
	}
}

// Register вешает маршруты на роутер.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/submit", h.handleSubmit).Methods(http.MethodPost)
	r.HandleFunc("/api/test", h.handleTest).Methods(http.MethodGet)
}

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// handleSubmit принимает анкету: поля формы + фото (photos) + видео (video).
// Вложения сохраняются во временную папку и удаляются после отправки
// независимо от её исхода.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, apiResponse{Success: false, Message: "Слишком много запросов"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.WithError(err).Warn("Некорректная multipart-форма")
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "Некорректная форма"})
		return
	}

	app := ApplicationFromForm(r.MultipartForm.Value)
	log.WithField("name", app.Name).Info("Получена анкета")

	var saved []string
	// Удаляем все временные файлы после отправки, что бы ни случилось
	defer func() {
		for _, path := range saved {
			if err := os.Remove(path); err != nil {
				log.WithError(err).WithField("file", path).Debug("Не удалось удалить временный файл")
			}
		}
	}()

	var photoPaths []string
	for _, fh := range r.MultipartForm.File["photos"] {
		path, err := h.saveUpload(fh, allowedPhotoExtensions)
		if err != nil {
			log.WithError(err).WithField("file", fh.Filename).Warn("Фото пропущено")
			continue
		}
		saved = append(saved, path)
		photoPaths = append(photoPaths, path)
	}

	videoPath := ""
	if files := r.MultipartForm.File["video"]; len(files) > 0 {
		path, err := h.saveUpload(files[0], allowedVideoExtensions)
		if err != nil {
			log.WithError(err).WithField("file", files[0].Filename).Warn("Видео пропущено")
		} else {
			saved = append(saved, path)
			videoPath = path
		}
	}

	if err := h.notifier.Send(app, photoPaths, videoPath); err != nil {
		log.WithError(err).Error("Ошибка отправки анкеты в Telegram")
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Message: "Ошибка при отправке анкеты"})
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Анкета успешно отправлена!"})
}

// handleTest — проверка живости сервера.
func (h *Handler) handleTest(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Сервер работает",
	})
}

// saveUpload сохраняет один файл во временную папку.
// Имя получает префикс-таймстемп, путь клиента отбрасывается.
func (h *Handler) saveUpload(fh *multipart.FileHeader, allowed map[string]bool) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if !allowed[ext] {
		return "", common.ErrFileTypeNotAllowed
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения вложения: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("ошибка создания папки загрузок: %w", err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fh.Filename))
	path := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("ошибка записи файла: %w", err)
	}

	log.WithField("file", name).Info("Сохранено вложение")
	return path, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Ошибка записи JSON-ответа")
	}
}

// clientIP достаёт IP клиента для rate limiting.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
