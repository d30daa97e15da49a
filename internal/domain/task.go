package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskType is the closed set of assignable task kinds. Dispatch over it with
// an exhaustive switch; unknown values are an error, not a fallthrough.
type TaskType string

const (
	TaskTypeVideo           TaskType = "video"
	TaskTypeExercise        TaskType = "exercise"
	TaskTypeReading         TaskType = "reading"
	TaskTypeReflection      TaskType = "reflection"
	TaskTypePhotoSubmission TaskType = "photo_submission"
	TaskTypeDocument        TaskType = "document"
)

// TaskTypes lists every valid TaskType, in display order.
var TaskTypes = []TaskType{
	TaskTypeVideo,
	TaskTypeExercise,
	TaskTypeReading,
	TaskTypeReflection,
	TaskTypePhotoSubmission,
	TaskTypeDocument,
}

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeVideo, TaskTypeExercise, TaskTypeReading,
		TaskTypeReflection, TaskTypePhotoSubmission, TaskTypeDocument:
		return true
	}
	return false
}

// TaskStatus is derived from the completed flag and the due date; it is
// computed at read time and never stored.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusDueSoon   TaskStatus = "due_soon"
	TaskStatusOverdue   TaskStatus = "overdue"
	TaskStatusCompleted TaskStatus = "completed"
)

// Task is a unit of assigned work linking a Client to content.
// Content is a snapshot resolved once at assignment time from the linked
// library entity; later edits to that entity do not propagate here.
type Task struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	Type         TaskType            `bson:"type" json:"type"`
	Content      string              `bson:"content,omitempty" json:"content,omitempty"`
	Duration     int                 `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Completed    bool                `bson:"completed" json:"completed"`
	AssignedDate time.Time           `bson:"assignedDate" json:"assignedDate"`
	DueDate      *time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	ClientID     primitive.ObjectID  `bson:"clientId" json:"clientId"`
	AdminID      primitive.ObjectID  `bson:"adminId" json:"adminId"`
	VideoID      *primitive.ObjectID `bson:"videoId,omitempty" json:"videoId,omitempty"`
	ExerciseID   *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	DocumentID   *primitive.ObjectID `bson:"documentId,omitempty" json:"documentId,omitempty"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// truncateToDay drops the time-of-day component, keeping the location.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// OverdueAt reports whether the task's due date (truncated to day) has
// passed relative to now. A task due today is not overdue, and a completed
// task or a task without a due date is never overdue.
func (t *Task) OverdueAt(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return truncateToDay(*t.DueDate).Before(truncateToDay(now))
}

// DueSoonAt reports whether the task is due within one day of now and is
// neither completed nor already overdue.
func (t *Task) DueSoonAt(now time.Time) bool {
	if t.Completed || t.DueDate == nil || t.OverdueAt(now) {
		return false
	}
	diff := truncateToDay(*t.DueDate).Sub(truncateToDay(now))
	return diff <= 24*time.Hour
}

// StatusAt derives the display status for the task. Completed suppresses
// both the overdue and due-soon states.
func (t *Task) StatusAt(now time.Time) TaskStatus {
	switch {
	case t.Completed:
		return TaskStatusCompleted
	case t.OverdueAt(now):
		return TaskStatusOverdue
	case t.DueSoonAt(now):
		return TaskStatusDueSoon
	default:
		return TaskStatusPending
	}
}

// ToggleCompleted flips the completed flag. Toggling twice restores the
// original state; no other field is touched.
func (t *Task) ToggleCompleted() {
	t.Completed = !t.Completed
}

// ResolveContent produces the content snapshot stored on a Task at
// assignment time. The linked entity for the given type must be present;
// reading and reflection tasks use the admin's free text, and photo
// submission tasks carry informational text only (the evidence lives in
// PhotoSubmission records).
func ResolveContent(taskType TaskType, text string, video *Video, exercise *Exercise, document *Document) (string, error) {
	switch taskType {
	case TaskTypeVideo:
		if video == nil {
			return "", fmt.Errorf("task type %q requires a linked video", taskType)
		}
		return video.YouTubeURL, nil
	case TaskTypeExercise:
		if exercise == nil {
			return "", fmt.Errorf("task type %q requires a linked exercise", taskType)
		}
		return strings.Join(exercise.Instructions, "\n"), nil
	case TaskTypeDocument:
		if document == nil {
			return "", fmt.Errorf("task type %q requires a linked document", taskType)
		}
		return document.FileURL, nil
	case TaskTypeReading, TaskTypeReflection, TaskTypePhotoSubmission:
		return text, nil
	default:
		return "", fmt.Errorf("unknown task type %q", taskType)
	}
}
