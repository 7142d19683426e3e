package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SQLite implements Gateway on a single SQLite database file
type SQLite struct {
	db *gorm.DB
}

// NewSQLite opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an ephemeral store.
func NewSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&RoomRecord{}, &MemberRecord{}, &MessageRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// EnsureRoom creates the room record if missing. Last writer wins on a
// concurrent create; the record is a log anchor, not a counter.
func (s *SQLite) EnsureRoom(ctx context.Context, roomID string) error {
	rec := RoomRecord{RoomID: roomID, CreatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to ensure room %s: %w", roomID, err)
	}
	return nil
}

// AppendMember appends to the room's membership log
func (s *SQLite) AppendMember(ctx context.Context, roomID, name string) error {
	rec := MemberRecord{RoomID: roomID, Name: name, JoinedAt: time.Now()}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to append member to room %s: %w", roomID, err)
	}
	return nil
}

// SaveMessage persists a chat message
func (s *SQLite) SaveMessage(ctx context.Context, rec *MessageRecord) error {
	if rec.Kind == "" {
		rec.Kind = "chat"
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to save message in room %s: %w", rec.RoomID, err)
	}
	return nil
}

// MessagesByRoom returns the room's messages oldest first
func (s *SQLite) MessagesByRoom(ctx context.Context, roomID string) ([]MessageRecord, error) {
	var recs []MessageRecord
	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at asc").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load messages for room %s: %w", roomID, err)
	}
	return recs, nil
}

// PurgeRoom removes everything the room ever persisted, in one transaction
func (s *SQLite) PurgeRoom(ctx context.Context, roomID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&MessageRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&MemberRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("room_id = ?", roomID).Delete(&RoomRecord{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to purge room %s: %w", roomID, err)
	}
	return nil
}
