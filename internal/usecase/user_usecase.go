package usecase

import (
	"context"
	"mime/multipart"
	"strings"

	"videotube/internal/entity"
	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"
	"videotube/pkg/jwt"
	"videotube/pkg/logger"
	"videotube/pkg/media"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *multipart.FileHeader
	CoverImage *multipart.FileHeader
}

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	Login(ctx context.Context, username, email, password string) (*entity.User, *Tokens, error)
	Logout(ctx context.Context, userID string) error
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	GetCurrentUser(ctx context.Context, userID string) (*entity.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	UpdateAccount(ctx context.Context, userID string, details entity.UserDetails) (*entity.User, error)
	UpdateAvatar(ctx context.Context, userID string, avatar *multipart.FileHeader) (*entity.User, error)
	UpdateCoverImage(ctx context.Context, userID string, cover *multipart.FileHeader) (*entity.User, error)
	GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.Channel, error)
	GetWatchHistory(ctx context.Context, userID string) ([]*entity.Video, error)
}

type userUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	media      MediaService
	logger     *logger.Logger
}

func NewUserUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	media MediaService,
	logger *logger.Logger,
) UserUseCase {
	return &userUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		media:      media,
		logger:     logger,
	}
}

func (uc *userUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := uc.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("user with email or username already exists")
	}
	if input.Avatar == nil {
		return nil, apperror.Validation("avatar file is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(errors.Wrap(err, "hash password"))
	}

	avatarURL, err := uc.media.UploadImage(ctx, input.Avatar, media.FolderAvatars)
	if err != nil {
		return nil, apperror.Internal(errors.WithMessage(err, "upload avatar"))
	}
	var coverURL string
	if input.CoverImage != nil {
		coverURL, err = uc.media.UploadImage(ctx, input.CoverImage, media.FolderCovers)
		if err != nil {
			uc.media.DeleteRemote(avatarURL)
			return nil, apperror.Internal(errors.WithMessage(err, "upload cover image"))
		}
	}

	user := &entity.User{
		Username:   username,
		Email:      email,
		FullName:   strings.TrimSpace(input.FullName),
		Avatar:     avatarURL,
		CoverImage: coverURL,
		Password:   string(hashedPassword),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		uc.media.DeleteRemote(avatarURL)
		uc.media.DeleteRemote(coverURL)
		if errors.Is(err, persistent.ErrConflict) {
			return nil, apperror.Conflict("user with email or username already exists")
		}
		return nil, apperror.Internal(err)
	}

	uc.logger.Info("Registered user %s", user.ID)
	return user, nil
}

func (uc *userUseCase) Login(ctx context.Context, username, email, password string) (*entity.User, *Tokens, error) {
	user, err := uc.userRepo.FindByLogin(ctx,
		strings.ToLower(strings.TrimSpace(username)),
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, nil, storeError(err, "user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperror.Unauthenticated("invalid user credentials")
	}

	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	refreshToken, err := uc.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	if err := uc.userRepo.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, nil, storeError(err, "user")
	}

	user.RefreshToken = refreshToken
	return user, &Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (uc *userUseCase) Logout(ctx context.Context, userID string) error {
	return storeError(uc.userRepo.SetRefreshToken(ctx, userID, ""), "user")
}

// RefreshAccessToken issues a new access token for a refresh token that is
// still the one stored on the account. The refresh token is not rotated.
func (uc *userUseCase) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apperror.Unauthenticated("unauthorized request")
	}
	claims, err := uc.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperror.Unauthenticated("invalid refresh token")
	}

	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", storeError(err, "user")
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return "", apperror.Unauthenticated("refresh token is expired or used")
	}

	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return accessToken, nil
}

func (uc *userUseCase) GetCurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return user, nil
}

func (uc *userUseCase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return storeError(err, "user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperror.Validation("invalid old password")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal(errors.Wrap(err, "hash password"))
	}
	return storeError(uc.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)), "user")
}

func (uc *userUseCase) UpdateAccount(ctx context.Context, userID string, details entity.UserDetails) (*entity.User, error) {
	if details.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*details.Email))
		details.Email = &email
	}
	if details.FullName != nil {
		fullName := strings.TrimSpace(*details.FullName)
		details.FullName = &fullName
	}

	user, err := uc.userRepo.UpdateDetails(ctx, userID, details)
	if err != nil {
		if errors.Is(err, persistent.ErrConflict) {
			return nil, apperror.Conflict("email is already in use")
		}
		return nil, storeError(err, "user")
	}
	return user, nil
}

func (uc *userUseCase) UpdateAvatar(ctx context.Context, userID string, avatar *multipart.FileHeader) (*entity.User, error) {
	return uc.replaceImage(ctx, userID, avatar, media.FolderAvatars, "avatar",
		func(u *entity.User) string { return u.Avatar },
		uc.userRepo.UpdateAvatar)
}

func (uc *userUseCase) UpdateCoverImage(ctx context.Context, userID string, cover *multipart.FileHeader) (*entity.User, error) {
	return uc.replaceImage(ctx, userID, cover, media.FolderCovers, "cover image",
		func(u *entity.User) string { return u.CoverImage },
		uc.userRepo.UpdateCoverImage)
}

// replaceImage uploads the new file, stores its URL and then drops the
// previous asset from storage.
func (uc *userUseCase) replaceImage(
	ctx context.Context,
	userID string,
	file *multipart.FileHeader,
	folder, label string,
	current func(*entity.User) string,
	store func(ctx context.Context, id, url string) (*entity.User, error),
) (*entity.User, error) {
	if file == nil {
		return nil, apperror.Validation(label + " file is missing")
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	previous := current(user)

	url, err := uc.media.UploadImage(ctx, file, folder)
	if err != nil {
		return nil, apperror.Internal(errors.WithMessage(err, "upload "+label))
	}

	updated, err := store(ctx, userID, url)
	if err != nil {
		uc.media.DeleteRemote(url)
		return nil, storeError(err, "user")
	}
	uc.media.DeleteRemote(previous)
	return updated, nil
}

func (uc *userUseCase) GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.Channel, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperror.Validation("username is missing")
	}
	channel, err := uc.userRepo.GetChannelProfile(ctx, username, viewerID)
	if err != nil {
		return nil, storeError(err, "channel")
	}
	return channel, nil
}

func (uc *userUseCase) GetWatchHistory(ctx context.Context, userID string) ([]*entity.Video, error) {
	videos, err := uc.userRepo.GetWatchHistory(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return videos, nil
}
