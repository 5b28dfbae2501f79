package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"videotube/internal/entity"
	"videotube/internal/repo/persistent"
	"videotube/pkg/config"
	"videotube/pkg/database"
	"videotube/pkg/logger"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedRepos struct {
	users         persistent.UserRepository
	videos        persistent.VideoRepository
	comments      persistent.CommentRepository
	likes         persistent.LikeRepository
	subscriptions persistent.SubscriptionRepository
	playlists     persistent.PlaylistRepository
	tweets        persistent.TweetRepository
}

func main() {
	var (
		mediaBase      string
		videosPerUser  int
		seedTimeoutSec int
	)
	flag.StringVar(&mediaBase, "media-base", "https://placehold.co", "base URL for placeholder media")
	flag.IntVar(&videosPerUser, "videos", 3, "videos to publish per demo user")
	flag.IntVar(&seedTimeoutSec, "timeout", 60, "seed timeout in seconds")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(seedTimeoutSec)*time.Second)
	defer cancel()

	if err := seedDatabase(ctx, newSeedRepos(db), strings.TrimRight(mediaBase, "/"), videosPerUser, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func newSeedRepos(db *gorm.DB) seedRepos {
	return seedRepos{
		users:         persistent.NewUserRepository(db),
		videos:        persistent.NewVideoRepository(db),
		comments:      persistent.NewCommentRepository(db),
		likes:         persistent.NewLikeRepository(db),
		subscriptions: persistent.NewSubscriptionRepository(db),
		playlists:     persistent.NewPlaylistRepository(db),
		tweets:        persistent.NewTweetRepository(db),
	}
}

func seedDatabase(ctx context.Context, repos seedRepos, mediaBase string, videosPerUser int, log *logger.Logger) error {
	testUsers := []struct {
		username string
		fullName string
	}{
		{"alice", "Alice Walker"},
		{"bob", "Bob Marley"},
		{"charlie", "Charlie Parker"},
		{"diana", "Diana Ross"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash demo password")
	}

	users := make([]*entity.User, 0, len(testUsers))
	for _, u := range testUsers {
		email := u.username + "@videotube.test"
		existing, err := repos.users.FindByLogin(ctx, u.username, email)
		if err == nil {
			log.Info("User %s already exists, skipping", u.username)
			users = append(users, existing)
			continue
		}
		if !errors.Is(err, persistent.ErrNotFound) {
			return errors.Wrapf(err, "look up %s", u.username)
		}

		user := &entity.User{
			Username: u.username,
			Email:    email,
			FullName: u.fullName,
			Avatar:   fmt.Sprintf("%s/256x256?text=%s", mediaBase, u.username),
			Password: string(hash),
		}
		if err := repos.users.Create(ctx, user); err != nil {
			return errors.Wrapf(err, "create user %s", u.username)
		}
		log.Info("Created user: %s (%s)", user.Username, user.Email)
		users = append(users, user)

		if err := seedChannel(ctx, repos, user, mediaBase, videosPerUser); err != nil {
			return err
		}
	}

	return seedInteractions(ctx, repos, users, log)
}

// seedChannel publishes a user's demo videos and a playlist holding them.
func seedChannel(ctx context.Context, repos seedRepos, owner *entity.User, mediaBase string, count int) error {
	videoIDs := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		video := &entity.Video{
			OwnerID:     owner.ID,
			VideoFile:   fmt.Sprintf("%s/videos/%s-%d.mp4", mediaBase, owner.Username, i),
			Thumbnail:   fmt.Sprintf("%s/640x360?text=%s+%d", mediaBase, owner.Username, i),
			Title:       fmt.Sprintf("%s's clip #%d", owner.FullName, i),
			Description: "Demo upload",
			Duration:    float64(30 * i),
			IsPublished: i != count,
		}
		if err := repos.videos.Create(ctx, video); err != nil {
			return errors.Wrapf(err, "create video for %s", owner.Username)
		}
		videoIDs = append(videoIDs, video.ID)
	}

	playlist := &entity.Playlist{
		Name:        "Best of " + owner.Username,
		Description: "Demo playlist",
		OwnerID:     owner.ID,
	}
	if err := repos.playlists.Create(ctx, playlist); err != nil {
		return errors.Wrapf(err, "create playlist for %s", owner.Username)
	}
	if _, err := repos.playlists.AddVideos(ctx, playlist.ID, videoIDs); err != nil {
		return errors.Wrapf(err, "fill playlist for %s", owner.Username)
	}

	tweet := &entity.Tweet{OwnerID: owner.ID, Content: "Hello from " + owner.FullName}
	return errors.Wrapf(repos.tweets.Create(ctx, tweet), "create tweet for %s", owner.Username)
}

// seedInteractions makes every user follow the next one and like and
// comment on their first published video.
func seedInteractions(ctx context.Context, repos seedRepos, users []*entity.User, log *logger.Logger) error {
	for i, user := range users {
		channel := users[(i+1)%len(users)]
		if channel.ID == user.ID {
			continue
		}
		if _, err := repos.subscriptions.Toggle(ctx, user.ID, channel.ID); err != nil {
			return errors.Wrapf(err, "subscribe %s to %s", user.Username, channel.Username)
		}

		videos, _, err := repos.videos.List(ctx, entity.VideoQuery{
			Pagination: entity.Pagination{Page: 1, Limit: 1},
			OwnerID:    channel.ID,
			SortBy:     entity.SortByCreatedAt,
		})
		if err != nil {
			return errors.Wrapf(err, "list videos of %s", channel.Username)
		}
		if len(videos) == 0 {
			continue
		}

		if _, err := repos.likes.Toggle(ctx, user.ID, entity.LikeTargetVideo, videos[0].ID); err != nil {
			return errors.Wrap(err, "like video")
		}
		comment := &entity.Comment{VideoID: videos[0].ID, OwnerID: user.ID, Content: "Great video!"}
		if err := repos.comments.Create(ctx, comment); err != nil {
			return errors.Wrap(err, "create comment")
		}
		log.Info("%s follows %s and liked %q", user.Username, channel.Username, videos[0].Title)
	}
	return nil
}
