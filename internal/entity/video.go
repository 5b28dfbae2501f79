package entity

import "time"

type Video struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	LikesCount  int64     `json:"likesCount"`
	Owner       *Profile  `json:"ownerDetails,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type VideoSortField string

const (
	SortByCreatedAt VideoSortField = "createdAt"
	SortByViews     VideoSortField = "views"
	SortByDuration  VideoSortField = "duration"
)

type VideoQuery struct {
	Pagination
	Search   string
	OwnerID  string
	ViewerID string
	SortBy   VideoSortField
	SortDesc bool
}

type VideoPage struct {
	CurrentPage int      `json:"currentPage"`
	Limit       int      `json:"limit"`
	TotalPages  int      `json:"totalPages"`
	TotalVideos int64    `json:"totalVideos"`
	Videos      []*Video `json:"videos"`
}

type VideoUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *string
}
