package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/mediahub/config"
	"github.com/techagentng/mediahub/db"
	"github.com/techagentng/mediahub/db/dbtest"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/policy"
	"github.com/techagentng/mediahub/services"
	"github.com/techagentng/mediahub/storage/storagetest"
)

const uploadURL = "http://uploads.test/uploads/"

var (
	owner = policy.Caller{UserID: 1, Role: models.RoleUser}
	other = policy.Caller{UserID: 2, Role: models.RoleUser}
	admin = policy.Caller{UserID: 9, Role: models.RoleAdmin}
)

type countRecorder struct {
	mu     sync.Mutex
	counts []int64
}

func (c *countRecorder) MediaCountChanged(count int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = append(c.counts, count)
}

func (c *countRecorder) Counts() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.counts...)
}

type fixture struct {
	gdb      *db.GormDB
	files    *storagetest.Recorder
	notifier *countRecorder

	mediaRepo   db.MediaRepository
	likeRepo    db.LikeRepository
	commentRepo db.CommentRepository
	ratingRepo  db.RatingRepository
	tagRepo     db.TagRepository

	media    services.MediaService
	likes    services.LikeService
	comments services.CommentService
	ratings  services.RatingService
	tags     services.TagService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conf := &config.Config{
		UploadURL:      uploadURL,
		QueryTimeout:   5 * time.Second,
		StorageTimeout: 5 * time.Second,
	}
	log := zerolog.Nop()

	f := &fixture{
		gdb:      dbtest.New(t),
		files:    &storagetest.Recorder{},
		notifier: &countRecorder{},
	}
	f.mediaRepo = db.NewMediaRepo(f.gdb)
	f.likeRepo = db.NewLikeRepo(f.gdb)
	f.commentRepo = db.NewCommentRepo(f.gdb)
	f.ratingRepo = db.NewRatingRepo(f.gdb)
	f.tagRepo = db.NewTagRepo(f.gdb)

	f.media = services.NewMediaService(services.MediaDeps{
		Tx:       f.gdb,
		Media:    f.mediaRepo,
		Likes:    f.likeRepo,
		Comments: f.commentRepo,
		Ratings:  f.ratingRepo,
		Tags:     f.tagRepo,
		Files:    f.files,
		Notifier: f.notifier,
	}, conf, log)
	f.likes = services.NewLikeService(f.likeRepo, conf, log)
	f.comments = services.NewCommentService(f.commentRepo, conf, log)
	f.ratings = services.NewRatingService(f.ratingRepo, conf, log)
	f.tags = services.NewTagService(f.gdb, f.tagRepo, f.mediaRepo, conf, log)
	return f
}

func (f *fixture) createMedia(t *testing.T, ownerID uint, filename string) *models.MediaItem {
	t.Helper()
	media, err := f.media.Create(context.Background(), ownerID, &models.CreateMediaRequest{
		Title:       "A",
		Description: "d",
		Filename:    filename,
		MediaType:   "image/jpeg",
		Filesize:    10,
	})
	require.NoError(t, err)
	return media
}
