package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/service"
)

// Profile images are small; anything bigger than this is not an avatar.
const maxProfileImageSize = 10 << 20 // 10 MiB

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

type UpdateProfileRequest struct {
	Name         string `json:"name"`
	PracticeName string `json:"practiceName"`
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Description Edits the display name and, for admins, the practice name.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} UserResponse "Updated profile"
// @Failure 403 {object} gin.H "Practice name sent by a non-admin"
// @Failure 404 {object} gin.H "User not found"
// @Router /me/profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := contextObjectID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req.Name, req.PracticeName)
	if err != nil {
		h.mapProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UploadAvatar godoc
// @Summary Upload a profile avatar image
// @Description Stores the image and updates the profile's avatar URL.
// @Tags Profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Avatar image"
// @Success 200 {object} UserResponse "Updated profile"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 502 {object} gin.H "Storage upload failed"
// @Router /me/avatar [post]
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	h.uploadImage(c, h.profileService.UploadAvatar)
}

// UploadLogo godoc
// @Summary Upload a practice logo image
// @Description Stores the image and updates the admin profile's logo URL.
// @Tags Profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Logo image"
// @Success 200 {object} UserResponse "Updated profile"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Not an admin account"
// @Failure 502 {object} gin.H "Storage upload failed"
// @Router /me/logo [post]
func (h *ProfileHandler) UploadLogo(c *gin.Context) {
	h.uploadImage(c, h.profileService.UploadLogo)
}

// uploadImage is the shared multipart plumbing for the avatar and logo routes.
func (h *ProfileHandler) uploadImage(c *gin.Context, upload func(ctx context.Context, userID primitive.ObjectID, contentType string, image io.Reader) (*domain.User, error)) {
	userID, ok := contextObjectID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "An image file is required.")
		return
	}
	if fileHeader.Size > maxProfileImageSize {
		abortWithError(c, http.StatusBadRequest, "Image exceeds the maximum allowed size.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read uploaded image.")
		return
	}
	defer file.Close()

	user, err := upload(c.Request.Context(), userID, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.mapProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// mapProfileError maps profile service errors to HTTP responses.
func (h *ProfileHandler) mapProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidImageType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotAdminAccount):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrImageUploadFailed):
		abortWithError(c, http.StatusBadGateway, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to update profile.")
	}
}
