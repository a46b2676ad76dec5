package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snejhirpara/tiffin-tracker/internal/audit"
	"github.com/snejhirpara/tiffin-tracker/internal/auth"
	domainuser "github.com/snejhirpara/tiffin-tracker/internal/domain/user"
	"github.com/snejhirpara/tiffin-tracker/internal/httperr"
	"github.com/snejhirpara/tiffin-tracker/internal/httpresp"
	"github.com/snejhirpara/tiffin-tracker/internal/middleware"
	"github.com/snejhirpara/tiffin-tracker/internal/models"
	"github.com/snejhirpara/tiffin-tracker/internal/ratelimit"
	"github.com/snejhirpara/tiffin-tracker/internal/storage"
)

const refreshTokenCookie = "refreshToken"

// AvatarStore abstracts where avatar images live.
type AvatarStore interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
	Update(ctx context.Context, oldURL string, r io.Reader) (string, error)
}

var _ AvatarStore = (*storage.AvatarStorage)(nil)

type AuthHandler struct {
	db      *gorm.DB
	creds   *auth.CredentialService
	avatars AvatarStore
	limiter *ratelimit.LoginLimiter
	audit   *audit.Dispatcher
}

func NewAuthHandler(
	db *gorm.DB,
	creds *auth.CredentialService,
	avatars AvatarStore,
	limiter *ratelimit.LoginLimiter,
	auditDispatcher *audit.Dispatcher,
) *AuthHandler {
	return &AuthHandler{
		db:      db,
		creds:   creds,
		avatars: avatars,
		limiter: limiter,
		audit:   auditDispatcher,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `form:"username" binding:"required"`
	FullName string `form:"full_name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
	Role     string `form:"role" binding:"required"`
	AdminID  *uint  `form:"admin_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "User details are required")
		return
	}

	if !domainuser.IsValidRole(req.Role) {
		httperr.BadRequest(c, "Invalid role. It should be either Admin or User.")
		return
	}

	// Only User-role accounts may reference an administering Admin.
	if domainuser.IsAdmin(req.Role) && req.AdminID != nil {
		httperr.BadRequest(c, "An Admin account must not have an adminId")
		return
	}
	if req.AdminID != nil {
		var admin models.User
		if err := h.db.First(&admin, *req.AdminID).Error; err != nil || !domainuser.IsAdmin(admin.Role) {
			httperr.BadRequest(c, "adminId must reference an Admin account")
			return
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	var count int64
	h.db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "User with email or username already exists")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "Avatar image is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "Avatar image upload on server failed")
		return
	}
	defer file.Close()

	avatarURL, err := h.avatars.Upload(c.Request.Context(), file)
	if err != nil {
		log.Printf("avatar upload failed: %v", err)
		httperr.Internal(c, "Avatar image upload on server failed")
		return
	}

	hashed, err := h.creds.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "Failed to register the user")
		return
	}

	user := models.User{
		Email:        email,
		Username:     username,
		FullName:     req.FullName,
		Avatar:       avatarURL,
		PasswordHash: hashed,
		Role:         req.Role,
		AdminID:      req.AdminID,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "Failed to register the user")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   audit.ActionUserRegistered,
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.Created(c, user.Public(), "User registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	allowed, err := h.limiter.Allow(c.Request.Context(), email)
	if err != nil {
		log.Printf("login limiter unavailable: %v", err)
	}
	if !allowed {
		httperr.Unauthorized(c, "Too many login attempts, try again later")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "User doesn't exist")
			return
		}
		httperr.Internal(c, "Internal Server Error")
		return
	}

	if !h.creds.CheckPassword(user.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "Invalid password")
		return
	}

	accessToken, err := h.creds.GenerateAccessToken(&user)
	if err != nil {
		httperr.Internal(c, "Failed to generate tokens")
		return
	}
	refreshToken, err := h.creds.GenerateRefreshToken(user.ID)
	if err != nil {
		httperr.Internal(c, "Failed to generate tokens")
		return
	}

	// Refresh token rotates on every login.
	if err := h.db.Model(&user).Update("refresh_token", refreshToken).Error; err != nil {
		httperr.Internal(c, "Internal Server Error")
		return
	}

	setAuthCookie(c, middleware.AccessTokenCookie, accessToken)
	setAuthCookie(c, refreshTokenCookie, refreshToken)

	h.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: audit.ActionUserLoggedIn,
		Entity: "user",
	})

	httpresp.OK(c, gin.H{
		"user":          user.Public(),
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	}, "User logged in successfully")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", nil).Error; err != nil {
		httperr.Internal(c, "Internal Server Error")
		return
	}

	clearAuthCookie(c, middleware.AccessTokenCookie)
	clearAuthCookie(c, refreshTokenCookie)

	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: audit.ActionUserLoggedOut,
		Entity: "user",
	})

	httpresp.OK(c, gin.H{}, "User logged out successfully")
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "New Password is required")
		return
	}

	hashed, err := h.creds.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "Internal Server Error")
		return
	}

	res := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hashed)
	if res.Error != nil {
		httperr.Internal(c, "Internal Server Error")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Unauthorized(c, "User doesn't exist")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: audit.ActionPasswordUpdated,
		Entity: "user",
	})

	httpresp.OK(c, gin.H{}, "Password updated successfully")
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Unauthorized(c, "User doesn't exist")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "Avatar file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "Error while uploading the avatar file")
		return
	}
	defer file.Close()

	newURL, err := h.avatars.Update(c.Request.Context(), user.Avatar, file)
	if err != nil {
		log.Printf("avatar update failed: %v", err)
		httperr.Internal(c, "Error while uploading the avatar file")
		return
	}

	if err := h.db.Model(&user).Update("avatar", newURL).Error; err != nil {
		httperr.Internal(c, "Internal Server Error")
		return
	}
	user.Avatar = newURL

	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: audit.ActionAvatarUpdated,
		Entity: "user",
	})

	httpresp.OK(c, user.Public(), "Avatar updated successfully")
}

// --------- Cookies ---------

func setAuthCookie(c *gin.Context, name, value string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, value, 0, "/", "", true, true)
}

func clearAuthCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, "", -1, "/", "", true, true)
}
