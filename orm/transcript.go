// Package orm persists conversation transcripts with gorm.
package orm

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Turn roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Session is one conversation with the agent.
type Session struct {
	ID        string `gorm:"primaryKey"`
	Mode      string
	CreatedAt time.Time
	Turns     []Turn
}

// Turn is a single message of a session.
type Turn struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"index"`
	Role      string
	Content   string
	CreatedAt time.Time
}

// Open connects to the transcript database and migrates the schema.
// driver is "sqlite" or "postgres".
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported history driver: %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.AutoMigrate(&Session{}, &Turn{}); err != nil {
		return nil, fmt.Errorf("failed to migrate transcript tables: %w", err)
	}
	return db, nil
}

// Store records sessions and turns.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateSession stores a session if it does not exist yet.
func (s *Store) CreateSession(ctx context.Context, id, mode string) error {
	session := Session{ID: id, Mode: mode, CreatedAt: time.Now()}
	return s.db.WithContext(ctx).Where(Session{ID: id}).FirstOrCreate(&session).Error
}

// AppendTurn adds a message to a session.
func (s *Store) AppendTurn(ctx context.Context, sessionID, role, content string) error {
	turn := Turn{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Create(&turn).Error
}

// ListTurns returns the turns of a session in insertion order.
func (s *Store) ListTurns(ctx context.Context, sessionID string) ([]Turn, error) {
	var turns []Turn
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id").Find(&turns).Error
	if err != nil {
		return nil, err
	}
	return turns, nil
}

// GetSession loads a session with its turns.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var session Session
	err := s.db.WithContext(ctx).Preload("Turns", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}
