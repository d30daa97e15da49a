package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/analytics"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/service"
)

// Multipart photo uploads are capped well above any phone camera output.
const maxPhotoSize = 20 << 20 // 20 MiB

// ClientHandler holds the client service dependency.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// GetMyTasks godoc
// @Summary List the client's tasks
// @Description Returns the authenticated client's tasks with derived statuses.
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Param filter query string false "all | pending | completed"
// @Success 200 {array} service.TaskView "Tasks"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /client/tasks [get]
func (h *ClientHandler) GetMyTasks(c *gin.Context) {
	clientID, ok := contextObjectID(c)
	if !ok {
		return
	}

	filter := analytics.CompletionFilter(c.DefaultQuery("filter", "all"))
	tasks, err := h.clientService.GetMyTasks(c.Request.Context(), clientID, filter, time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve tasks.")
		return
	}

	if tasks == nil {
		tasks = []service.TaskView{}
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get one of the client's tasks
// @Description Returns a single task with derived status. Missing tasks are a terminal 404.
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} service.TaskView "Task"
// @Failure 403 {object} gin.H "Task belongs to another client"
// @Failure 404 {object} gin.H "Task not found"
// @Router /client/tasks/{id} [get]
func (h *ClientHandler) GetTask(c *gin.Context) {
	clientID, ok := contextObjectID(c)
	if !ok {
		return
	}
	taskID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	task, err := h.clientService.GetTask(c.Request.Context(), clientID, taskID, time.Now())
	if err != nil {
		h.mapTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ToggleTask godoc
// @Summary Toggle a task's completion flag
// @Description Flips completed; calling twice restores the original state.
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} domain.Task "Updated task"
// @Failure 403 {object} gin.H "Task belongs to another client"
// @Failure 404 {object} gin.H "Task not found"
// @Router /client/tasks/{id}/toggle [post]
func (h *ClientHandler) ToggleTask(c *gin.Context) {
	clientID, ok := contextObjectID(c)
	if !ok {
		return
	}
	taskID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	task, err := h.clientService.ToggleTaskCompleted(c.Request.Context(), clientID, taskID)
	if err != nil {
		h.mapTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// SubmitPhoto godoc
// @Summary Submit a photo for a photo task
// @Description Uploads the photo and upserts the single submission record for this task. Does not mark the task completed.
// @Tags Client
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param photo formData file true "Photo file"
// @Param notes formData string false "Notes"
// @Success 200 {object} domain.PhotoSubmission "Submission"
// @Failure 400 {object} gin.H "Invalid input or not a photo task"
// @Failure 404 {object} gin.H "Task not found"
// @Router /client/tasks/{id}/photo [post]
func (h *ClientHandler) SubmitPhoto(c *gin.Context) {
	clientID, ok := contextObjectID(c)
	if !ok {
		return
	}
	taskID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "A photo file is required.")
		return
	}
	if fileHeader.Size > maxPhotoSize {
		abortWithError(c, http.StatusBadRequest, "Photo exceeds the maximum allowed size.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read uploaded photo.")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	submission, err := h.clientService.SubmitPhoto(c.Request.Context(), clientID, taskID, contentType, c.PostForm("notes"), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidImageType), errors.Is(err, service.ErrNotPhotoTask):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrTaskNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTaskNotBelongToClient):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to submit photo.")
		}
		return
	}

	c.JSON(http.StatusOK, submission)
}

// GetProgress godoc
// @Summary The client's progress summary
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ProgressReport "Progress"
// @Router /client/progress [get]
func (h *ClientHandler) GetProgress(c *gin.Context) {
	clientID, ok := contextObjectID(c)
	if !ok {
		return
	}

	report, err := h.clientService.GetProgress(c.Request.Context(), clientID, time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute progress.")
		return
	}

	c.JSON(http.StatusOK, report)
}

// mapTaskError maps shared task lookup errors to HTTP responses.
func (h *ClientHandler) mapTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTaskNotBelongToClient):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process task request.")
	}
}
