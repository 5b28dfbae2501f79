package entity

import "time"

type Comment struct {
	ID         string    `json:"id"`
	VideoID    string    `json:"video"`
	OwnerID    string    `json:"owner"`
	Content    string    `json:"content"`
	LikesCount int64     `json:"likesCount"`
	Owner      *Profile  `json:"ownerDetails,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CommentQuery struct {
	Pagination
	VideoID  string
	ViewerID string
	SortDesc bool
}

type CommentPage struct {
	CurrentPage   int        `json:"currentPage"`
	Limit         int        `json:"limit"`
	TotalPages    int        `json:"totalPages"`
	TotalComments int64      `json:"totalComments"`
	Comments      []*Comment `json:"comments"`
}
