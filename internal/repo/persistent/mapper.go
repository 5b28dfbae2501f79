package persistent

import (
	"videotube/internal/entity"
	"videotube/internal/model"

	"github.com/lib/pq"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	user := &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FullName:     m.FullName,
		Avatar:       m.Avatar,
		CoverImage:   m.CoverImage,
		Password:     m.Password,
		WatchHistory: append([]string{}, m.WatchHistory...),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.RefreshToken != nil {
		user.RefreshToken = *m.RefreshToken
	}
	return user
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	m := &model.UserModel{
		ID:           e.ID,
		Username:     e.Username,
		Email:        e.Email,
		FullName:     e.FullName,
		Avatar:       e.Avatar,
		CoverImage:   e.CoverImage,
		Password:     e.Password,
		WatchHistory: pq.StringArray(append([]string{}, e.WatchHistory...)),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.RefreshToken != "" {
		token := e.RefreshToken
		m.RefreshToken = &token
	}
	return m
}

func ToChannelEntity(r *model.ChannelRow) *entity.Channel {
	return &entity.Channel{
		ID:                     r.ID,
		Username:               r.Username,
		FullName:               r.FullName,
		Avatar:                 r.Avatar,
		CoverImage:             r.CoverImage,
		SubscribersCount:       r.SubscribersCount,
		ChannelSubscribedCount: r.ChannelSubscribedCount,
		IsSubscribed:           r.IsSubscribed,
	}
}

func ToSubscriptionEntries(rows []model.SubscriptionRow) []*entity.SubscriptionEntry {
	entries := make([]*entity.SubscriptionEntry, len(rows))
	for i, r := range rows {
		entries[i] = &entity.SubscriptionEntry{
			Profile: entity.Profile{
				ID:       r.ID,
				Username: r.Username,
				FullName: r.FullName,
				Avatar:   r.Avatar,
				Email:    r.Email,
			},
			SubscribedAt: r.SubscribedAt,
		}
	}
	return entries
}

func ToVideoEntity(m *model.VideoModel) *entity.Video {
	if m == nil {
		return nil
	}

	return &entity.Video{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		VideoFile:   m.VideoFile,
		Thumbnail:   m.Thumbnail,
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration,
		Views:       m.Views,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToVideoModel(e *entity.Video) *model.VideoModel {
	if e == nil {
		return nil
	}

	return &model.VideoModel{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		VideoFile:   e.VideoFile,
		Thumbnail:   e.Thumbnail,
		Title:       e.Title,
		Description: e.Description,
		Duration:    e.Duration,
		Views:       e.Views,
		IsPublished: e.IsPublished,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToVideoEntityFromRow(r *model.VideoRow) *entity.Video {
	video := ToVideoEntity(&r.VideoModel)
	video.LikesCount = r.LikesCount
	video.Owner = &entity.Profile{
		ID:       r.OwnerID,
		Username: r.OwnerUsername,
		FullName: r.OwnerFullName,
		Avatar:   r.OwnerAvatar,
	}
	return video
}

func ToVideoEntities(rows []model.VideoRow) []*entity.Video {
	videos := make([]*entity.Video, len(rows))
	for i := range rows {
		videos[i] = ToVideoEntityFromRow(&rows[i])
	}
	return videos
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		VideoID:   m.VideoID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        e.ID,
		VideoID:   e.VideoID,
		OwnerID:   e.OwnerID,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToCommentEntityFromRow(r *model.CommentRow) *entity.Comment {
	comment := ToCommentEntity(&r.CommentModel)
	comment.LikesCount = r.LikesCount
	comment.Owner = &entity.Profile{
		ID:       r.OwnerID,
		Username: r.OwnerUsername,
		FullName: r.OwnerFullName,
		Avatar:   r.OwnerAvatar,
	}
	return comment
}

func ToPlaylistEntity(m *model.PlaylistModel) *entity.Playlist {
	if m == nil {
		return nil
	}

	return &entity.Playlist{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		VideoIDs:    append([]string{}, m.Videos...),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToPlaylistModel(e *entity.Playlist) *model.PlaylistModel {
	if e == nil {
		return nil
	}

	return &model.PlaylistModel{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		OwnerID:     e.OwnerID,
		Videos:      pq.StringArray(append([]string{}, e.VideoIDs...)),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToTweetEntity(m *model.TweetModel) *entity.Tweet {
	if m == nil {
		return nil
	}

	return &entity.Tweet{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToTweetModel(e *entity.Tweet) *model.TweetModel {
	if e == nil {
		return nil
	}

	return &model.TweetModel{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
