package http

import (
	"context"
	"mime/multipart"

	"videotube/internal/entity"
	"videotube/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, username, email, password string) (*entity.User, *usecase.Tokens, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.User), args.Get(1).(*usecase.Tokens), args.Error(2)
}

func (m *MockUserUseCase) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserUseCase) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockUserUseCase) GetCurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	return m.Called(ctx, userID, oldPassword, newPassword).Error(0)
}

func (m *MockUserUseCase) UpdateAccount(ctx context.Context, userID string, details entity.UserDetails) (*entity.User, error) {
	args := m.Called(ctx, userID, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateAvatar(ctx context.Context, userID string, avatar *multipart.FileHeader) (*entity.User, error) {
	args := m.Called(ctx, userID, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateCoverImage(ctx context.Context, userID string, cover *multipart.FileHeader) (*entity.User, error) {
	args := m.Called(ctx, userID, cover)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.Channel, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Channel), args.Error(1)
}

func (m *MockUserUseCase) GetWatchHistory(ctx context.Context, userID string) ([]*entity.Video, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

type MockVideoUseCase struct {
	mock.Mock
}

func (m *MockVideoUseCase) ListVideos(ctx context.Context, query entity.VideoQuery) (*entity.VideoPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.VideoPage), args.Error(1)
}

func (m *MockVideoUseCase) PublishVideo(ctx context.Context, ownerID string, input usecase.PublishVideoInput) (*entity.Video, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) GetVideo(ctx context.Context, videoID, viewerID string) (*entity.Video, error) {
	args := m.Called(ctx, videoID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) UpdateVideo(ctx context.Context, videoID, callerID string, input usecase.UpdateVideoInput) (*entity.Video, error) {
	args := m.Called(ctx, videoID, callerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) DeleteVideo(ctx context.Context, videoID, callerID string) error {
	return m.Called(ctx, videoID, callerID).Error(0)
}

func (m *MockVideoUseCase) TogglePublish(ctx context.Context, videoID, callerID string) (*entity.Video, error) {
	args := m.Called(ctx, videoID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

type MockCommentUseCase struct {
	mock.Mock
}

func (m *MockCommentUseCase) ListComments(ctx context.Context, query entity.CommentQuery) (*entity.CommentPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CommentPage), args.Error(1)
}

func (m *MockCommentUseCase) AddComment(ctx context.Context, videoID, userID, content string) (*entity.Comment, error) {
	args := m.Called(ctx, videoID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) UpdateComment(ctx context.Context, commentID, userID, content string) (*entity.Comment, error) {
	args := m.Called(ctx, commentID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) DeleteComment(ctx context.Context, commentID, userID string) error {
	return m.Called(ctx, commentID, userID).Error(0)
}

type MockLikeUseCase struct {
	mock.Mock
}

func (m *MockLikeUseCase) ToggleLike(ctx context.Context, userID string, target entity.LikeTarget, targetID string) (*entity.LikeToggle, error) {
	args := m.Called(ctx, userID, target, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LikeToggle), args.Error(1)
}

func (m *MockLikeUseCase) GetLikedVideos(ctx context.Context, userID string) ([]*entity.Video, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

type MockSubscriptionUseCase struct {
	mock.Mock
}

func (m *MockSubscriptionUseCase) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (*entity.SubscriptionToggle, error) {
	args := m.Called(ctx, subscriberID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SubscriptionToggle), args.Error(1)
}

func (m *MockSubscriptionUseCase) GetSubscribers(ctx context.Context, channelID string) ([]*entity.SubscriptionEntry, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.SubscriptionEntry), args.Error(1)
}

func (m *MockSubscriptionUseCase) GetSubscribedChannels(ctx context.Context, subscriberID string) ([]*entity.SubscriptionEntry, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.SubscriptionEntry), args.Error(1)
}

type MockPlaylistUseCase struct {
	mock.Mock
}

func (m *MockPlaylistUseCase) playlist(args mock.Arguments) (*entity.Playlist, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) CreatePlaylist(ctx context.Context, ownerID, name, description string) (*entity.Playlist, error) {
	return m.playlist(m.Called(ctx, ownerID, name, description))
}

func (m *MockPlaylistUseCase) GetUserPlaylists(ctx context.Context, ownerID string) ([]*entity.Playlist, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) GetPlaylist(ctx context.Context, playlistID, callerID string) (*entity.Playlist, error) {
	return m.playlist(m.Called(ctx, playlistID, callerID))
}

func (m *MockPlaylistUseCase) UpdatePlaylist(ctx context.Context, playlistID, callerID string, update entity.PlaylistUpdate) (*entity.Playlist, error) {
	return m.playlist(m.Called(ctx, playlistID, callerID, update))
}

func (m *MockPlaylistUseCase) DeletePlaylist(ctx context.Context, playlistID, callerID string) error {
	return m.Called(ctx, playlistID, callerID).Error(0)
}

func (m *MockPlaylistUseCase) AddVideos(ctx context.Context, playlistID, callerID string, videoIDs []string) (*entity.Playlist, error) {
	return m.playlist(m.Called(ctx, playlistID, callerID, videoIDs))
}

func (m *MockPlaylistUseCase) RemoveVideos(ctx context.Context, playlistID, callerID string, videoIDs []string) (*entity.Playlist, error) {
	return m.playlist(m.Called(ctx, playlistID, callerID, videoIDs))
}

type MockTweetUseCase struct {
	mock.Mock
}

func (m *MockTweetUseCase) CreateTweet(ctx context.Context, ownerID, content string) (*entity.Tweet, error) {
	args := m.Called(ctx, ownerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tweet), args.Error(1)
}

func (m *MockTweetUseCase) GetUserTweets(ctx context.Context, userID string) ([]*entity.Tweet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Tweet), args.Error(1)
}

func (m *MockTweetUseCase) UpdateTweet(ctx context.Context, tweetID, callerID, content string) (*entity.Tweet, error) {
	args := m.Called(ctx, tweetID, callerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tweet), args.Error(1)
}

func (m *MockTweetUseCase) DeleteTweet(ctx context.Context, tweetID, callerID string) error {
	return m.Called(ctx, tweetID, callerID).Error(0)
}

type MockDashboardUseCase struct {
	mock.Mock
}

func (m *MockDashboardUseCase) GetChannelStats(ctx context.Context, ownerID string) (*entity.ChannelStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChannelStats), args.Error(1)
}

func (m *MockDashboardUseCase) GetChannelVideos(ctx context.Context, ownerID string) ([]*entity.Video, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

type MockHealthUseCase struct {
	mock.Mock
}

func (m *MockHealthUseCase) Check(ctx context.Context) (*usecase.HealthStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.HealthStatus), args.Error(1)
}
