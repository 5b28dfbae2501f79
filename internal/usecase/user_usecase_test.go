package usecase

import (
	"context"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"videotube/internal/entity"
	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"
	"videotube/pkg/jwt"
	"videotube/pkg/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWT() *jwt.Service {
	return jwt.NewService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newUserUseCase() (UserUseCase, *MockUserRepository, *MockMediaService, *jwt.Service) {
	repo := new(MockUserRepository)
	mediaSvc := new(MockMediaService)
	jwtService := newTestJWT()
	return NewUserUseCase(repo, jwtService, mediaSvc, testLogger()), repo, mediaSvc, jwtService
}

func TestRegister_CreatesAccount(t *testing.T) {
	uc, repo, mediaSvc, _ := newUserUseCase()
	ctx := context.Background()
	avatar := &multipart.FileHeader{Filename: "me.png"}

	repo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(false, nil)
	mediaSvc.On("UploadImage", ctx, avatar, media.FolderAvatars).Return("https://cdn.test/avatars/me.png", nil)
	repo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = "user-1"
	}).Return(nil).Once()

	user, err := uc.Register(ctx, RegisterInput{
		Username: "Alice",
		Email:    "ALICE@example.com",
		FullName: "Alice Liddell",
		Password: "secret123",
		Avatar:   avatar,
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "https://cdn.test/avatars/me.png", user.Avatar)
	assert.Empty(t, user.CoverImage)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	repo.AssertExpectations(t)
	mediaSvc.AssertExpectations(t)
}

func TestRegister_DuplicateIsConflict(t *testing.T) {
	uc, repo, mediaSvc, _ := newUserUseCase()
	ctx := context.Background()

	repo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(true, nil)

	_, err := uc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Avatar:   &multipart.FileHeader{Filename: "me.png"},
	})

	assert.True(t, apperror.IsStatus(err, http.StatusConflict))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mediaSvc.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_RaceOnUniqueIndexRemovesUploads(t *testing.T) {
	uc, repo, mediaSvc, _ := newUserUseCase()
	ctx := context.Background()
	avatar := &multipart.FileHeader{Filename: "me.png"}

	repo.On("ExistsByUsernameOrEmail", ctx, "bob", "bob@example.com").Return(false, nil)
	mediaSvc.On("UploadImage", ctx, avatar, media.FolderAvatars).Return("https://cdn.test/avatars/b.png", nil)
	repo.On("Create", ctx, mock.Anything).Return(persistent.ErrConflict)
	mediaSvc.On("DeleteRemote", mock.Anything).Return()

	_, err := uc.Register(ctx, RegisterInput{Username: "bob", Email: "bob@example.com", Password: "secret123", Avatar: avatar})

	assert.True(t, apperror.IsStatus(err, http.StatusConflict))
	mediaSvc.AssertCalled(t, "DeleteRemote", "https://cdn.test/avatars/b.png")
}

func TestRegister_AvatarRequired(t *testing.T) {
	uc, repo, _, _ := newUserUseCase()
	ctx := context.Background()

	repo.On("ExistsByUsernameOrEmail", ctx, "carol", "carol@example.com").Return(false, nil)

	_, err := uc.Register(ctx, RegisterInput{Username: "carol", Email: "carol@example.com", Password: "secret123"})

	assert.True(t, apperror.IsStatus(err, http.StatusBadRequest))
}

func TestLogin_IssuesAndStoresTokens(t *testing.T) {
	uc, repo, _, jwtService := newUserUseCase()
	ctx := context.Background()
	stored := &entity.User{ID: "user-1", Email: "alice@example.com", Password: hashed(t, "secret123")}

	repo.On("FindByLogin", ctx, "alice", "").Return(stored, nil)
	var persisted string
	repo.On("SetRefreshToken", ctx, "user-1", mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		persisted = args.String(2)
	}).Return(nil)

	user, tokens, err := uc.Login(ctx, "Alice", "", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, tokens.RefreshToken, persisted)

	claims, err := jwtService.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, repo, _, _ := newUserUseCase()
	ctx := context.Background()
	stored := &entity.User{ID: "user-1", Password: hashed(t, "secret123")}

	repo.On("FindByLogin", ctx, "", "alice@example.com").Return(stored, nil)

	user, tokens, err := uc.Login(ctx, "", "alice@example.com", "wrong123")

	assert.Nil(t, user)
	assert.Nil(t, tokens)
	assert.True(t, apperror.IsStatus(err, http.StatusUnauthorized))
	repo.AssertNotCalled(t, "SetRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UnknownUser(t *testing.T) {
	uc, repo, _, _ := newUserUseCase()
	ctx := context.Background()

	repo.On("FindByLogin", ctx, "ghost", "").Return(nil, persistent.ErrNotFound)

	_, _, err := uc.Login(ctx, "ghost", "", "secret123")

	assert.True(t, apperror.IsStatus(err, http.StatusNotFound))
}

func TestRefreshAccessToken(t *testing.T) {
	uc, repo, _, jwtService := newUserUseCase()
	ctx := context.Background()

	refresh, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	repo.On("GetByID", ctx, "user-1").Return(&entity.User{ID: "user-1", Email: "a@example.com", RefreshToken: refresh}, nil)

	access, err := uc.RefreshAccessToken(ctx, refresh)

	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestRefreshAccessToken_StaleToken(t *testing.T) {
	uc, repo, _, jwtService := newUserUseCase()
	ctx := context.Background()

	refresh, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	repo.On("GetByID", ctx, "user-1").Return(&entity.User{ID: "user-1", RefreshToken: "newer"}, nil)

	_, err = uc.RefreshAccessToken(ctx, refresh)

	assert.True(t, apperror.IsStatus(err, http.StatusUnauthorized))
}

func TestRefreshAccessToken_InvalidToken(t *testing.T) {
	uc, _, _, jwtService := newUserUseCase()

	access, err := jwtService.GenerateAccessToken("user-1", "a@example.com")
	require.NoError(t, err)

	_, err = uc.RefreshAccessToken(context.Background(), access)
	assert.True(t, apperror.IsStatus(err, http.StatusUnauthorized))

	_, err = uc.RefreshAccessToken(context.Background(), "")
	assert.True(t, apperror.IsStatus(err, http.StatusUnauthorized))
}

func TestChangePassword(t *testing.T) {
	uc, repo, _, _ := newUserUseCase()
	ctx := context.Background()

	repo.On("GetByID", ctx, "user-1").Return(&entity.User{ID: "user-1", Password: hashed(t, "secret123")}, nil)
	repo.On("UpdatePassword", ctx, "user-1", mock.AnythingOfType("string")).Return(nil)

	assert.True(t, apperror.IsStatus(uc.ChangePassword(ctx, "user-1", "nope1234", "better123"), http.StatusBadRequest))
	require.NoError(t, uc.ChangePassword(ctx, "user-1", "secret123", "better123"))

	hash := repo.Calls[len(repo.Calls)-1].Arguments.String(2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("better123")))
}

func TestUpdateAccount_EmailTaken(t *testing.T) {
	uc, repo, _, _ := newUserUseCase()
	ctx := context.Background()
	email := "taken@example.com"

	repo.On("UpdateDetails", ctx, "user-1", entity.UserDetails{Email: &email}).Return(nil, persistent.ErrConflict)

	_, err := uc.UpdateAccount(ctx, "user-1", entity.UserDetails{Email: &email})

	assert.True(t, apperror.IsStatus(err, http.StatusConflict))
}

func TestUpdateAvatar_DeletesPreviousAsset(t *testing.T) {
	uc, repo, mediaSvc, _ := newUserUseCase()
	ctx := context.Background()
	avatar := &multipart.FileHeader{Filename: "new.png"}

	repo.On("GetByID", ctx, "user-1").Return(&entity.User{ID: "user-1", Avatar: "https://cdn.test/avatars/old.png"}, nil)
	mediaSvc.On("UploadImage", ctx, avatar, media.FolderAvatars).Return("https://cdn.test/avatars/new.png", nil)
	repo.On("UpdateAvatar", ctx, "user-1", "https://cdn.test/avatars/new.png").
		Return(&entity.User{ID: "user-1", Avatar: "https://cdn.test/avatars/new.png"}, nil)
	mediaSvc.On("DeleteRemote", "https://cdn.test/avatars/old.png").Return().Once()

	user, err := uc.UpdateAvatar(ctx, "user-1", avatar)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/avatars/new.png", user.Avatar)
	mediaSvc.AssertExpectations(t)
}

func TestUpdateCoverImage_UploadFailure(t *testing.T) {
	uc, repo, mediaSvc, _ := newUserUseCase()
	ctx := context.Background()
	cover := &multipart.FileHeader{Filename: "c.png"}

	repo.On("GetByID", ctx, "user-1").Return(&entity.User{ID: "user-1"}, nil)
	mediaSvc.On("UploadImage", ctx, cover, media.FolderCovers).Return("", assert.AnError)

	_, err := uc.UpdateCoverImage(ctx, "user-1", cover)

	assert.True(t, apperror.IsStatus(err, http.StatusInternalServerError))
	repo.AssertNotCalled(t, "UpdateCoverImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetChannelProfile_NotFound(t *testing.T) {
	uc, repo, _, _ := newUserUseCase()
	ctx := context.Background()

	repo.On("GetChannelProfile", ctx, "nobody", "").Return(nil, persistent.ErrNotFound)

	_, err := uc.GetChannelProfile(ctx, "Nobody", "")

	assert.True(t, apperror.IsStatus(err, http.StatusNotFound))
}
