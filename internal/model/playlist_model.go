package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PlaylistModel struct {
	ID          string         `gorm:"type:uuid;primary_key"`
	Name        string         `gorm:"type:varchar(100);not null"`
	Description string         `gorm:"type:text;not null"`
	OwnerID     string         `gorm:"type:uuid;not null;index"`
	Videos      pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PlaylistModel) TableName() string {
	return "playlists"
}

func (p *PlaylistModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Videos == nil {
		p.Videos = pq.StringArray{}
	}
	return nil
}
