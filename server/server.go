package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/techagentng/mediahub/config"
	"github.com/techagentng/mediahub/db"
	"github.com/techagentng/mediahub/services"
)

// Server holds every handler dependency.
type Server struct {
	Config *config.Config
	Log    zerolog.Logger
	DB     *db.GormDB

	MediaService   services.MediaService
	LikeService    services.LikeService
	CommentService services.CommentService
	RatingService  services.RatingService
	TagService     services.TagService
	Notifications  *services.NotificationService
}

// Start serves the API until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Config.Port),
		Handler:           s.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Log.Info().Msg("shutting down server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
