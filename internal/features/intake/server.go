// Package intake — server.go собирает HTTP-сервер приёма анкет.
package intake

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// NewServer создаёт HTTP-сервер с маршрутами анкет.
func NewServer(port int, handler *Handler) *http.Server {
	r := mux.NewRouter()
	handler.Register(r)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// Загрузка видео на медленном канале может идти долго
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 1 * time.Minute,
	}
}

// RunServer запускает сервер и гасит его по отмене контекста.
func RunServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP-сервер анкет запущен")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ошибка остановки HTTP-сервера: %w", err)
		}
		log.Info("HTTP-сервер анкет остановлен")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
