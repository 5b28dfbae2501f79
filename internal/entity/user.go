package entity

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage"`
	Password     string    `json:"-"`
	RefreshToken string    `json:"-"`
	WatchHistory []string  `json:"watchHistory"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the public subset of an account embedded in other resources.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email,omitempty"`
}

type Channel struct {
	ID                     string `json:"id"`
	Username               string `json:"username"`
	FullName               string `json:"fullName"`
	Avatar                 string `json:"avatar"`
	CoverImage             string `json:"coverImage"`
	SubscribersCount       int64  `json:"subscribersCount"`
	ChannelSubscribedCount int64  `json:"channelSubscribedCount"`
	IsSubscribed           bool   `json:"isSubscribed"`
}

// UserDetails carries the optional fields of an account update.
type UserDetails struct {
	Email    *string
	FullName *string
}
