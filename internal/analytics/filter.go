// Package analytics holds the pure read-time derivations used by the admin
// dashboard and the client progress screens: predicate filtering over task
// and client collections, completion statistics, engagement ranking, and
// weekly rollups. Everything here operates on already-fetched in-memory
// slices, performs no I/O, and preserves input order unless a sort is part
// of the contract.
package analytics

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
)

// CompletionFilter selects tasks by completion state.
type CompletionFilter string

const (
	FilterAll       CompletionFilter = "all"
	FilterPending   CompletionFilter = "pending"
	FilterCompleted CompletionFilter = "completed"
)

// ByClient returns the tasks belonging to the given client, in input order.
func ByClient(tasks []domain.Task, clientID primitive.ObjectID) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ClientID == clientID {
			out = append(out, t)
		}
	}
	return out
}

// ByCompletion narrows tasks to the given completion state. FilterAll (and
// any unrecognized filter) returns the input unchanged.
func ByCompletion(tasks []domain.Task, f CompletionFilter) []domain.Task {
	switch f {
	case FilterPending, FilterCompleted:
	default:
		return tasks
	}
	want := f == FilterCompleted
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed == want {
			out = append(out, t)
		}
	}
	return out
}

// BySearchText returns the clients whose name or email contains the query,
// case-insensitively. An empty query returns the input unchanged.
func BySearchText(clients []domain.User, query string) []domain.User {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return clients
	}
	out := make([]domain.User, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.Email), query) {
			out = append(out, c)
		}
	}
	return out
}

// Overdue returns the tasks overdue as of now, in input order.
func Overdue(tasks []domain.Task, now time.Time) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.OverdueAt(now) {
			out = append(out, t)
		}
	}
	return out
}

// DueSoon returns the tasks due within one day as of now, in input order.
func DueSoon(tasks []domain.Task, now time.Time) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.DueSoonAt(now) {
			out = append(out, t)
		}
	}
	return out
}
