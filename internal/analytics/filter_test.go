package analytics

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
)

func dueTask(title string, due *time.Time, completed bool) domain.Task {
	return domain.Task{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Type:      domain.TaskTypeReading,
		Completed: completed,
		DueDate:   due,
	}
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
	return &t
}

func TestByClient(t *testing.T) {
	mine := primitive.NewObjectID()
	other := primitive.NewObjectID()

	tasks := []domain.Task{
		{ID: primitive.NewObjectID(), Title: "a", ClientID: mine},
		{ID: primitive.NewObjectID(), Title: "b", ClientID: other},
		{ID: primitive.NewObjectID(), Title: "c", ClientID: mine},
	}

	got := ByClient(tasks, mine)
	if len(got) != 2 || got[0].Title != "a" || got[1].Title != "c" {
		t.Errorf("ByClient order/content wrong: %v", titles(got))
	}
}

func TestByCompletion(t *testing.T) {
	tasks := []domain.Task{
		dueTask("done", nil, true),
		dueTask("open1", nil, false),
		dueTask("open2", nil, false),
	}

	tests := []struct {
		name   string
		filter CompletionFilter
		want   []string
	}{
		{"pending", FilterPending, []string{"open1", "open2"}},
		{"completed", FilterCompleted, []string{"done"}},
		{"all returns input unchanged", FilterAll, []string{"done", "open1", "open2"}},
		{"unknown filter returns input unchanged", CompletionFilter("bogus"), []string{"done", "open1", "open2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(ByCompletion(tasks, tt.filter))
			if !equalStrings(got, tt.want) {
				t.Errorf("ByCompletion(%q) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestBySearchText(t *testing.T) {
	clients := []domain.User{
		{ID: primitive.NewObjectID(), Name: "Alice Smith", Email: "alice@example.com"},
		{ID: primitive.NewObjectID(), Name: "Bob Jones", Email: "bob@example.com"},
		{ID: primitive.NewObjectID(), Name: "Carol", Email: "carol.smith@example.com"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns all", "", []string{"Alice Smith", "Bob Jones", "Carol"}},
		{"whitespace query returns all", "   ", []string{"Alice Smith", "Bob Jones", "Carol"}},
		{"name match is case-insensitive", "SMITH", []string{"Alice Smith", "Carol"}},
		{"email match", "bob@", []string{"Bob Jones"}},
		{"no match", "zelda", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BySearchText(clients, tt.query)
			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name)
			}
			if !equalStrings(names, tt.want) {
				t.Errorf("BySearchText(%q) = %v, want %v", tt.query, names, tt.want)
			}
		})
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tasks := []domain.Task{
		dueTask("yesterday", dayPtr(2026, 8, 27), false),
		dueTask("today is not overdue", dayPtr(2026, 8, 28), false),
		dueTask("tomorrow", dayPtr(2026, 8, 29), false),
		dueTask("no due date", nil, false),
		dueTask("completed yesterday", dayPtr(2026, 8, 27), true),
	}

	got := titles(Overdue(tasks, now))
	want := []string{"yesterday"}
	if !equalStrings(got, want) {
		t.Errorf("Overdue = %v, want %v", got, want)
	}
}

func TestDueSoon(t *testing.T) {
	now := time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC)

	tasks := []domain.Task{
		dueTask("due today", dayPtr(2026, 8, 28), false),
		dueTask("due tomorrow", dayPtr(2026, 8, 29), false),
		dueTask("due in two days", dayPtr(2026, 8, 30), false),
		dueTask("overdue", dayPtr(2026, 8, 27), false),
		dueTask("completed today", dayPtr(2026, 8, 28), true),
		dueTask("no due date", nil, false),
	}

	// Day truncation means the late hour on the clock does not push the
	// tomorrow task out of the window.
	got := titles(DueSoon(tasks, now))
	want := []string{"due today", "due tomorrow"}
	if !equalStrings(got, want) {
		t.Errorf("DueSoon = %v, want %v", got, want)
	}
}

func titles(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
