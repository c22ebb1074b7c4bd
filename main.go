package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/techagentng/mediahub/config"
	"github.com/techagentng/mediahub/db"
	"github.com/techagentng/mediahub/logger"
	"github.com/techagentng/mediahub/server"
	"github.com/techagentng/mediahub/services"
	"github.com/techagentng/mediahub/storage"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logr := logger.New(conf)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := db.GetDB(conf)
	mediaRepo := db.NewMediaRepo(gormDB)
	likeRepo := db.NewLikeRepo(gormDB)
	commentRepo := db.NewCommentRepo(gormDB)
	ratingRepo := db.NewRatingRepo(gormDB)
	tagRepo := db.NewTagRepo(gormDB)

	files, err := storage.New(ctx, conf, logr)
	if err != nil {
		logr.Fatal().Err(err).Msg("initialize storage")
	}
	notifications := services.NewNotificationService(logr)

	mediaService := services.NewMediaService(services.MediaDeps{
		Tx:       gormDB,
		Media:    mediaRepo,
		Likes:    likeRepo,
		Comments: commentRepo,
		Ratings:  ratingRepo,
		Tags:     tagRepo,
		Files:    files,
		Notifier: notifications,
	}, conf, logr)
	likeService := services.NewLikeService(likeRepo, conf, logr)
	commentService := services.NewCommentService(commentRepo, conf, logr)
	ratingService := services.NewRatingService(ratingRepo, conf, logr)
	tagService := services.NewTagService(gormDB, tagRepo, mediaRepo, conf, logr)

	s := &server.Server{
		Config:         conf,
		Log:            logr,
		DB:             gormDB,
		MediaService:   mediaService,
		LikeService:    likeService,
		CommentService: commentService,
		RatingService:  ratingService,
		TagService:     tagService,
		Notifications:  notifications,
	}

	if err := s.Start(ctx); err != nil {
		logr.Fatal().Err(err).Msg("server stopped with error")
	}
	logr.Info().Msg("server exited cleanly")
}
