package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/service"
)

// Document uploads (PDFs, worksheets) are capped at a generous size.
const maxDocumentSize = 50 << 20 // 50 MiB

// LibraryHandler holds the content library service dependency.
type LibraryHandler struct {
	libraryService service.LibraryService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(libraryService service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// --- DTOs ---

type VideoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	YouTubeURL  string `json:"youtubeUrl" binding:"required,url"`
	Duration    int    `json:"duration"`
}

type ExerciseRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Instructions  []string `json:"instructions" binding:"required"`
	EstimatedTime int      `json:"estimatedTime"`
}

type UpdateDocumentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// --- Videos ---

// CreateVideo godoc
// @Summary Add a video to the library
// @Tags Library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param video body VideoRequest true "Video details"
// @Success 201 {object} domain.Video "Video created"
// @Failure 400 {object} gin.H "Invalid input"
// @Router /library/videos [post]
func (h *LibraryHandler) CreateVideo(c *gin.Context) {
	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	adminID, ok := contextObjectID(c)
	if !ok {
		return
	}

	video, err := h.libraryService.CreateVideo(c.Request.Context(), adminID, req.Title, req.Description, req.YouTubeURL, req.Duration)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create video.")
		}
		return
	}

	c.JSON(http.StatusCreated, video)
}

// GetVideos godoc
// @Summary List the video library
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Video "Videos"
// @Router /library/videos [get]
func (h *LibraryHandler) GetVideos(c *gin.Context) {
	videos, err := h.libraryService.GetVideos(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve videos.")
		return
	}
	c.JSON(http.StatusOK, videos)
}

// UpdateVideo godoc
// @Summary Update a library video
// @Tags Library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param video body VideoRequest true "Video details"
// @Success 200 {object} domain.Video "Updated video"
// @Failure 404 {object} gin.H "Video not found"
// @Router /library/videos/{id} [put]
func (h *LibraryHandler) UpdateVideo(c *gin.Context) {
	videoID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	video, err := h.libraryService.UpdateVideo(c.Request.Context(), videoID, req.Title, req.Description, req.YouTubeURL, req.Duration)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update video.")
		}
		return
	}

	c.JSON(http.StatusOK, video)
}

// DeleteVideo godoc
// @Summary Delete a library video
// @Tags Library
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Video not found"
// @Router /library/videos/{id} [delete]
func (h *LibraryHandler) DeleteVideo(c *gin.Context) {
	videoID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.libraryService.DeleteVideo(c.Request.Context(), videoID); err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete video.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Exercises ---

// CreateExercise godoc
// @Summary Add an exercise to the library
// @Description Blank instruction steps are dropped; at least one must remain.
// @Tags Library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise "Exercise created"
// @Failure 400 {object} gin.H "Invalid input (including all-blank instructions)"
// @Router /library/exercises [post]
func (h *LibraryHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	adminID, ok := contextObjectID(c)
	if !ok {
		return
	}

	exercise, err := h.libraryService.CreateExercise(c.Request.Context(), adminID, req.Title, req.Description, req.Instructions, req.EstimatedTime)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) || errors.Is(err, service.ErrNoInstructions) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		}
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

// GetExercises godoc
// @Summary List the exercise library
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Exercise "Exercises"
// @Router /library/exercises [get]
func (h *LibraryHandler) GetExercises(c *gin.Context) {
	exercises, err := h.libraryService.GetExercises(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// UpdateExercise godoc
// @Summary Update a library exercise
// @Tags Library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 200 {object} domain.Exercise "Updated exercise"
// @Failure 400 {object} gin.H "Invalid input (including all-blank instructions)"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /library/exercises/{id} [put]
func (h *LibraryHandler) UpdateExercise(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.libraryService.UpdateExercise(c.Request.Context(), exerciseID, req.Title, req.Description, req.Instructions, req.EstimatedTime)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoInstructions):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, exercise)
}

// DeleteExercise godoc
// @Summary Delete a library exercise
// @Tags Library
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /library/exercises/{id} [delete]
func (h *LibraryHandler) DeleteExercise(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.libraryService.DeleteExercise(c.Request.Context(), exerciseID); err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Documents ---

// UploadDocument godoc
// @Summary Upload a document to the library
// @Description Uploads the file to object storage and records its metadata. No record is written if the upload fails.
// @Tags Library
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Success 201 {object} domain.Document "Document created"
// @Failure 400 {object} gin.H "Invalid input"
// @Router /library/documents [post]
func (h *LibraryHandler) UploadDocument(c *gin.Context) {
	adminID, ok := contextObjectID(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	if title == "" {
		abortWithError(c, http.StatusBadRequest, "A document title is required.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "A document file is required.")
		return
	}
	if fileHeader.Size > maxDocumentSize {
		abortWithError(c, http.StatusBadRequest, "Document exceeds the maximum allowed size.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read uploaded file.")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	document, err := h.libraryService.UploadDocument(c.Request.Context(), adminID, title, c.PostForm("description"), fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDocumentUploadFailed):
			abortWithError(c, http.StatusBadGateway, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to save document.")
		}
		return
	}

	c.JSON(http.StatusCreated, document)
}

// GetDocuments godoc
// @Summary List the document library
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Document "Documents"
// @Router /library/documents [get]
func (h *LibraryHandler) GetDocuments(c *gin.Context) {
	documents, err := h.libraryService.GetDocuments(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve documents.")
		return
	}
	c.JSON(http.StatusOK, documents)
}

// UpdateDocument godoc
// @Summary Update a library document's metadata
// @Tags Library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param document body UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} domain.Document "Updated document"
// @Failure 404 {object} gin.H "Document not found"
// @Router /library/documents/{id} [put]
func (h *LibraryHandler) UpdateDocument(c *gin.Context) {
	documentID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	document, err := h.libraryService.UpdateDocument(c.Request.Context(), documentID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update document.")
		}
		return
	}

	c.JSON(http.StatusOK, document)
}

// DeleteDocument godoc
// @Summary Delete a library document
// @Tags Library
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Document not found"
// @Router /library/documents/{id} [delete]
func (h *LibraryHandler) DeleteDocument(c *gin.Context) {
	documentID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.libraryService.DeleteDocument(c.Request.Context(), documentID); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete document.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
