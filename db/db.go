package db

import (
	"context"
	"fmt"
	"log"

	"github.com/techagentng/mediahub/config"
	"github.com/techagentng/mediahub/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	MostLikedView     = "most_liked_media"
	MostCommentedView = "most_commented_media"
	HighestRatedView  = "highest_rated_media"
)

type GormDB struct {
	DB *gorm.DB
}

// Transactor opens a transactional scope that several repositories can
// join through their WithTx methods.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

// Open wraps an already configured dialector and runs migrations. Tests use
// it with sqlite.
func Open(dialector gorm.Dialector, gormConfig *gorm.Config) (*GormDB, error) {
	if gormConfig == nil {
		gormConfig = &gorm.Config{TranslateError: true}
	}
	gdb, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}
	if err := migrate(gdb); err != nil {
		return nil, err
	}
	return &GormDB{DB: gdb}, nil
}

func getPostgresDB(c *config.Config) *gorm.DB {
	log.Printf("Connecting to postgres: host=%s db=%s port=%d", c.PostgresHost, c.PostgresDB, c.PostgresPort)
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode)

	gormConfig := &gorm.Config{TranslateError: true}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(c.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(c.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(c.DBConnMaxLifetime)

	return gormDB
}

// WithTransaction runs fn inside one transaction. The transaction commits
// only when fn returns nil and is rolled back on error or panic.
func (g *GormDB) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.DB.WithContext(ctx).Transaction(fn)
}

func (g *GormDB) Ping(ctx context.Context) error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.MediaItem{},
		&models.Like{},
		&models.Comment{},
		&models.Rating{},
		&models.Tag{},
		&models.MediaItemTag{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := createViews(db); err != nil {
		return fmt.Errorf("views error: %v", err)
	}

	return nil
}

// Each view exposes exactly one ranked row with the media_items columns
// plus its counter.
var views = []struct {
	name  string
	query string
}{
	{MostLikedView, `SELECT media_items.*, COUNT(likes.like_id) AS likes_count
		FROM media_items
		JOIN likes ON likes.media_id = media_items.media_id
		GROUP BY media_items.media_id
		ORDER BY likes_count DESC, media_items.media_id ASC
		LIMIT 1`},
	{MostCommentedView, `SELECT media_items.*, COUNT(comments.comment_id) AS comments_count
		FROM media_items
		JOIN comments ON comments.media_id = media_items.media_id
		GROUP BY media_items.media_id
		ORDER BY comments_count DESC, media_items.media_id ASC
		LIMIT 1`},
	{HighestRatedView, `SELECT media_items.*, AVG(ratings.rating_value) AS average_rating
		FROM media_items
		JOIN ratings ON ratings.media_id = media_items.media_id
		GROUP BY media_items.media_id
		ORDER BY average_rating DESC, media_items.media_id ASC
		LIMIT 1`},
}

func createViews(db *gorm.DB) error {
	for _, v := range views {
		if err := db.Exec("DROP VIEW IF EXISTS " + v.name).Error; err != nil {
			return err
		}
		if err := db.Exec("CREATE VIEW " + v.name + " AS " + v.query).Error; err != nil {
			return err
		}
	}
	return nil
}
