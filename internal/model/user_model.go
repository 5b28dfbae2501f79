package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type UserModel struct {
	ID           string         `gorm:"type:uuid;primary_key"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName     string         `gorm:"type:varchar(100);not null"`
	Avatar       string         `gorm:"type:varchar(500);not null"`
	CoverImage   string         `gorm:"type:varchar(500);not null;default:''"`
	Password     string         `gorm:"not null"`
	RefreshToken *string        `gorm:"type:text"`
	WatchHistory pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.WatchHistory == nil {
		u.WatchHistory = pq.StringArray{}
	}
	return nil
}

// ChannelRow is the result of the channel profile aggregation.
type ChannelRow struct {
	ID                     string
	Username               string
	FullName               string
	Avatar                 string
	CoverImage             string
	SubscribersCount       int64
	ChannelSubscribedCount int64
	IsSubscribed           bool
}

// SubscriptionRow joins a subscription with the account on its other side.
type SubscriptionRow struct {
	ID           string
	Username     string
	FullName     string
	Avatar       string
	Email        string
	SubscribedAt time.Time
}
