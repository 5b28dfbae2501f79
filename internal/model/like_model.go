package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeModel references exactly one of video, comment or tweet; the
// database enforces it with a check constraint.
type LikeModel struct {
	ID        string  `gorm:"type:uuid;primary_key"`
	LikedBy   string  `gorm:"type:uuid;not null"`
	VideoID   *string `gorm:"type:uuid"`
	CommentID *string `gorm:"type:uuid"`
	TweetID   *string `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
