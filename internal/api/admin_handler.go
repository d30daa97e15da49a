package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/analytics"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/service"
)

// AdminHandler holds the admin service dependency.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// --- DTOs ---

type CreateClientRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	TherapistNotes string `json:"therapistNotes"`
}

type UpdateClientRequest struct {
	Name           string `json:"name"`
	TherapistNotes string `json:"therapistNotes"`
}

type AssignTaskRequest struct {
	ClientID    string          `json:"clientId" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Type        domain.TaskType `json:"type" binding:"required,oneof=video exercise reading reflection photo_submission document"`
	Text        string          `json:"text"`
	Duration    int             `json:"duration"`
	DueDate     *time.Time      `json:"dueDate"`
	VideoID     string          `json:"videoId"`
	ExerciseID  string          `json:"exerciseId"`
	DocumentID  string          `json:"documentId"`
}

// --- Client Management ---

// CreateClient godoc
// @Summary Create a client account
// @Description Registers a new client on behalf of the practice.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param client body CreateClientRequest true "Client details"
// @Success 201 {object} UserResponse "Client created"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Email already exists"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /admin/clients [post]
func (h *AdminHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	client, err := h.adminService.CreateClient(c.Request.Context(), req.Name, req.Email, req.Password, req.TherapistNotes)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create client.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(client))
}

// GetClients godoc
// @Summary List clients
// @Description Returns the client roster, optionally filtered by a search query over name/email.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Success 200 {array} UserResponse "Clients"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /admin/clients [get]
func (h *AdminHandler) GetClients(c *gin.Context) {
	clients, err := h.adminService.GetClients(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve clients.")
		return
	}

	responses := make([]UserResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, MapUserToResponse(&clients[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetClient godoc
// @Summary Get a client
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} UserResponse "Client"
// @Failure 404 {object} gin.H "Client not found"
// @Router /admin/clients/{id} [get]
func (h *AdminHandler) GetClient(c *gin.Context) {
	clientID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	client, err := h.adminService.GetClient(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) || errors.Is(err, service.ErrClientNotRole) {
			abortWithError(c, http.StatusNotFound, service.ErrClientNotFound.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve client.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(client))
}

// UpdateClient godoc
// @Summary Update a client
// @Description Edits a client's name and therapist notes.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param client body UpdateClientRequest true "Fields to update"
// @Success 200 {object} UserResponse "Updated client"
// @Failure 404 {object} gin.H "Client not found"
// @Router /admin/clients/{id} [put]
func (h *AdminHandler) UpdateClient(c *gin.Context) {
	clientID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	client, err := h.adminService.UpdateClient(c.Request.Context(), clientID, req.Name, req.TherapistNotes)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) || errors.Is(err, service.ErrClientNotRole) {
			abortWithError(c, http.StatusNotFound, service.ErrClientNotFound.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update client.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(client))
}

// DeleteClient godoc
// @Summary Delete a client
// @Description Removes a client and all of their tasks.
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Client not found"
// @Router /admin/clients/{id} [delete]
func (h *AdminHandler) DeleteClient(c *gin.Context) {
	clientID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteClient(c.Request.Context(), clientID); err != nil {
		if errors.Is(err, service.ErrClientNotFound) || errors.Is(err, service.ErrClientNotRole) {
			abortWithError(c, http.StatusNotFound, service.ErrClientNotFound.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete client.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Task Management ---

// AssignTask godoc
// @Summary Assign a task to a client
// @Description Creates a task, snapshotting content from the linked library entity.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body AssignTaskRequest true "Task details"
// @Success 201 {object} domain.Task "Task created"
// @Failure 400 {object} gin.H "Invalid input or missing linked entity reference"
// @Failure 404 {object} gin.H "Client or linked entity not found"
// @Router /admin/tasks [post]
func (h *AdminHandler) AssignTask(c *gin.Context) {
	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	adminID, ok := contextObjectID(c)
	if !ok {
		return
	}

	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format.")
		return
	}

	input := service.AssignTaskInput{
		ClientID:    clientID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Text:        req.Text,
		Duration:    req.Duration,
		DueDate:     req.DueDate,
	}
	if input.VideoID, err = optionalObjectID(req.VideoID); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid video ID format.")
		return
	}
	if input.ExerciseID, err = optionalObjectID(req.ExerciseID); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}
	if input.DocumentID, err = optionalObjectID(req.DocumentID); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid document ID format.")
		return
	}

	task, err := h.adminService.AssignTask(c.Request.Context(), adminID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClientNotFound), errors.Is(err, service.ErrClientNotRole):
			abortWithError(c, http.StatusNotFound, service.ErrClientNotFound.Error())
		case errors.Is(err, service.ErrLinkedEntity):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to assign task.")
		}
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTasks godoc
// @Summary List tasks
// @Description Returns all tasks, optionally narrowed by client and completion state.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param clientId query string false "Client ID"
// @Param filter query string false "all | pending | completed"
// @Success 200 {array} domain.Task "Tasks"
// @Router /admin/tasks [get]
func (h *AdminHandler) GetTasks(c *gin.Context) {
	var clientID *primitive.ObjectID
	if raw := c.Query("clientId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid client ID format.")
			return
		}
		clientID = &id
	}

	tasks, err := h.adminService.GetTasks(c.Request.Context(), clientID, analytics.CompletionFilter(c.DefaultQuery("filter", "all")))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve tasks.")
		return
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// ToggleTask godoc
// @Summary Toggle a task's completion flag
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} domain.Task "Updated task"
// @Failure 404 {object} gin.H "Task not found"
// @Router /admin/tasks/{id}/toggle [post]
func (h *AdminHandler) ToggleTask(c *gin.Context) {
	taskID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	task, err := h.adminService.ToggleTaskCompleted(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update task.")
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Task not found"
// @Router /admin/tasks/{id} [delete]
func (h *AdminHandler) DeleteTask(c *gin.Context) {
	taskID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteTask(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete task.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Analytics ---

// GetAnalytics godoc
// @Summary Analytics dashboard
// @Description Returns practice-wide stats, per-type completion, engagement ranking, and weekly trends.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AnalyticsReport "Report"
// @Router /admin/analytics [get]
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	report, err := h.adminService.GetAnalytics(c.Request.Context(), time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute analytics.")
		return
	}

	c.JSON(http.StatusOK, report)
}

// --- Helpers ---

// pathObjectID parses an ObjectID path parameter, aborting on failure.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ID format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// contextObjectID parses the authenticated user's ID, aborting on failure.
func contextObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// optionalObjectID converts an optional hex string to an ObjectID pointer.
func optionalObjectID(raw string) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
