package http

import (
	"net/http"

	"videotube/internal/entity"
	"videotube/internal/usecase"
	"videotube/pkg/apperror"
	"videotube/pkg/logger"
	"videotube/pkg/media"
	"videotube/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	session     *Session
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, session *Session, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		session:     session,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Username string `form:"username" binding:"required,min=3,max=50,username"`
	Email    string `form:"email" binding:"required,email,max=255"`
	FullName string `form:"fullName" binding:"required,min=3,max=100,fullname"`
	Password string `form:"password" binding:"required,password"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"omitempty,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,password"`
}

type UpdateAccountRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	FullName *string `json:"fullName" binding:"omitempty,min=3,max=100,fullname"`
}

type LoginResponse struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// Register godoc
// @Summary      Register a new account
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        username formData string true "Username (letters and digits)"
// @Param        email formData string true "Email"
// @Param        fullName formData string true "Full name"
// @Param        password formData string true "Password"
// @Param        avatar formData file true "Avatar image"
// @Param        coverImage formData file false "Cover image"
// @Success      201  {object}  response.Envelope{data=entity.User}
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      409  {object}  response.ErrorEnvelope
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bind(c, &req) {
		return
	}
	avatar, ok := typedFile(c, "avatar", "an image", media.IsImage)
	if !ok {
		return
	}
	cover, ok := typedFile(c, "coverImage", "an image", media.IsImage)
	if !ok {
		return
	}

	user, err := h.userUseCase.Register(c.Request.Context(), usecase.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
		Avatar:     avatar,
		CoverImage: cover,
	})
	if err != nil {
		fail(c, err)
		return
	}

	response.Created(c, "User registered successfully", user)
}

// Login godoc
// @Summary      Log in with username or email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  response.Envelope{data=LoginResponse}
// @Failure      401  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Username == "" && req.Email == "" {
		fail(c, apperror.Validation("username or email is required"))
		return
	}

	user, tokens, err := h.userUseCase.Login(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	h.session.setTokens(c, tokens)
	response.OK(c, "User logged in successfully", LoginResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Logout godoc
// @Summary      Log out and clear the session cookies
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Router       /users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userUseCase.Logout(c.Request.Context(), currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	h.session.clearTokens(c)
	response.OK(c, "User logged out", nil)
}

// RefreshToken godoc
// @Summary      Issue a new access token
// @Description  Reads the refresh token from the refreshToken cookie or the request body.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest false "Refresh token"
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.ErrorEnvelope
// @Router       /users/refresh-token [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(refreshTokenCookie)
	if token == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}

	accessToken, err := h.userUseCase.RefreshAccessToken(c.Request.Context(), token)
	if err != nil {
		fail(c, err)
		return
	}

	h.session.setAccessToken(c, accessToken)
	response.OK(c, "Access token refreshed", gin.H{"accessToken": accessToken})
}

// CurrentUser godoc
// @Summary      Get the signed-in account
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Envelope{data=entity.User}
// @Router       /users/current-user [get]
func (h *UserHandler) CurrentUser(c *gin.Context) {
	account, ok := c.Get(ctxAccount)
	if !ok {
		fail(c, apperror.Unauthenticated("unauthorized request"))
		return
	}
	response.OK(c, "Current user fetched successfully", account)
}

// ChangePassword godoc
// @Summary      Change the account password
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Passwords"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /users/change-password [patch]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.userUseCase.ChangePassword(c.Request.Context(), currentUserID(c), req.OldPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Password changed successfully", nil)
}

// UpdateAccount godoc
// @Summary      Update email and full name
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body UpdateAccountRequest true "Fields to change"
// @Success      200  {object}  response.Envelope{data=entity.User}
// @Failure      409  {object}  response.ErrorEnvelope
// @Router       /users/update-account [patch]
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Email == nil && req.FullName == nil {
		fail(c, apperror.Validation("email or fullName is required"))
		return
	}

	user, err := h.userUseCase.UpdateAccount(c.Request.Context(), currentUserID(c), entity.UserDetails{
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Account details updated successfully", user)
}

// UpdateAvatar godoc
// @Summary      Replace the avatar image
// @Tags         users
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar formData file true "Avatar image"
// @Success      200  {object}  response.Envelope{data=entity.User}
// @Router       /users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	avatar, ok := typedFile(c, "avatar", "an image", media.IsImage)
	if !ok {
		return
	}
	user, err := h.userUseCase.UpdateAvatar(c.Request.Context(), currentUserID(c), avatar)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Avatar updated successfully", user)
}

// UpdateCoverImage godoc
// @Summary      Replace the cover image
// @Tags         users
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        coverImage formData file true "Cover image"
// @Success      200  {object}  response.Envelope{data=entity.User}
// @Router       /users/cover-image [patch]
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	cover, ok := typedFile(c, "coverImage", "an image", media.IsImage)
	if !ok {
		return
	}
	user, err := h.userUseCase.UpdateCoverImage(c.Request.Context(), currentUserID(c), cover)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Cover image updated successfully", user)
}

// ChannelProfile godoc
// @Summary      Get a channel profile
// @Tags         users
// @Produce      json
// @Param        username path string true "Channel username"
// @Success      200  {object}  response.Envelope{data=entity.Channel}
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /users/c/{username} [get]
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	channel, err := h.userUseCase.GetChannelProfile(c.Request.Context(), c.Param("username"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "User channel fetched successfully", channel)
}

// WatchHistory godoc
// @Summary      Get the watch history, most recent first
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]entity.Video}
// @Router       /users/history [get]
func (h *UserHandler) WatchHistory(c *gin.Context) {
	videos, err := h.userUseCase.GetWatchHistory(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Watch history fetched successfully", videos)
}
