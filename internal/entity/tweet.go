package entity

import "time"

type Tweet struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner"`
	Content    string    `json:"content"`
	LikesCount int64     `json:"likesCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
