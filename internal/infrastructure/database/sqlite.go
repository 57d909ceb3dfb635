package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthorRecord is the sqlite row for an author
type AuthorRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"not null;uniqueIndex"`
	Born      *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AuthorRecord) TableName() string { return "authors" }

// BookRecord stores genres as a JSON array, queried with json_each
type BookRecord struct {
	ID        string   `gorm:"primaryKey;size:36"`
	Title     string   `gorm:"not null"`
	Published int      `gorm:"not null"`
	Genres    []string `gorm:"serializer:json;type:text;not null"`
	AuthorID  string   `gorm:"not null;index;size:36"`
	CreatedAt time.Time

	// Author exists only to declare the foreign key; it is never loaded or saved
	Author *AuthorRecord `gorm:"foreignKey:AuthorID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (BookRecord) TableName() string { return "books" }

type UserRecord struct {
	ID            string `gorm:"primaryKey;size:36"`
	Username      string `gorm:"not null;uniqueIndex"`
	FavoriteGenre string `gorm:"not null"`
	PasswordHash  *string
	CreatedAt     time.Time
}

func (UserRecord) TableName() string { return "users" }

// SQLiteDB wraps the gorm handle used by the embedded store
type SQLiteDB struct {
	DB   *gorm.DB
	Path string
}

func NewSQLiteDB(path string) *SQLiteDB {
	return &SQLiteDB{Path: path}
}

// Connect opens the database file and migrates the catalog tables
func (s *SQLiteDB) Connect(ctx context.Context) error {
	db, err := OpenSQLite(s.Path)
	if err != nil {
		return err
	}
	s.DB = db
	log.Info().Str("path", s.Path).Msg("[DATABASE] SQLite ready")
	return nil
}

// OpenSQLite opens path and runs AutoMigrate.
// Writers are serialised on a single connection; sqlite has one writer anyway.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&AuthorRecord{}, &BookRecord{}, &UserRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite: %w", err)
	}
	return db, nil
}

func (s *SQLiteDB) Ping(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("sqlite is not initialized")
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteDB) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	s.DB = nil
	return sqlDB.Close()
}
