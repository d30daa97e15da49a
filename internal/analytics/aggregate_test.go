package analytics

import (
	"math"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
)

func newTask(clientID primitive.ObjectID, taskType domain.TaskType, completed bool) domain.Task {
	return domain.Task{
		ID:           primitive.NewObjectID(),
		Title:        "task",
		Type:         taskType,
		Completed:    completed,
		ClientID:     clientID,
		AssignedDate: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
	}
}

func TestCompletionRate(t *testing.T) {
	clientID := primitive.NewObjectID()

	tests := []struct {
		name  string
		tasks []domain.Task
		want  float64
	}{
		{name: "empty collection is zero, not NaN", tasks: nil, want: 0},
		{
			name: "half completed",
			tasks: []domain.Task{
				newTask(clientID, domain.TaskTypeReading, true),
				newTask(clientID, domain.TaskTypeReading, false),
			},
			want: 50,
		},
		{
			name: "all completed",
			tasks: []domain.Task{
				newTask(clientID, domain.TaskTypeVideo, true),
				newTask(clientID, domain.TaskTypeVideo, true),
			},
			want: 100,
		},
		{
			name: "one third",
			tasks: []domain.Task{
				newTask(clientID, domain.TaskTypeVideo, true),
				newTask(clientID, domain.TaskTypeVideo, false),
				newTask(clientID, domain.TaskTypeVideo, false),
			},
			want: 100.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletionRate(tt.tasks)
			if math.IsNaN(got) {
				t.Fatalf("CompletionRate returned NaN")
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CompletionRate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountsByTypeSumEqualsTotal(t *testing.T) {
	clientID := primitive.NewObjectID()
	tasks := []domain.Task{
		newTask(clientID, domain.TaskTypeVideo, true),
		newTask(clientID, domain.TaskTypeVideo, false),
		newTask(clientID, domain.TaskTypeExercise, true),
		newTask(clientID, domain.TaskTypeReading, false),
		newTask(clientID, domain.TaskTypePhotoSubmission, false),
	}

	counts := CountsByType(tasks)

	sum := 0
	for _, n := range counts {
		sum += n
	}
	if sum != len(tasks) {
		t.Errorf("sum of CountsByType = %d, want %d", sum, len(tasks))
	}

	// Absent types are absent from the map, and the zero value covers lookups.
	if _, ok := counts[domain.TaskTypeDocument]; ok {
		t.Errorf("expected document type to be absent from counts")
	}
	if counts[domain.TaskTypeDocument] != 0 {
		t.Errorf("absent type lookup = %d, want 0", counts[domain.TaskTypeDocument])
	}
}

func TestCompletedCountsByType(t *testing.T) {
	clientID := primitive.NewObjectID()
	tasks := []domain.Task{
		newTask(clientID, domain.TaskTypeVideo, true),
		newTask(clientID, domain.TaskTypeVideo, false),
		newTask(clientID, domain.TaskTypeExercise, false),
	}

	completed := CompletedCountsByType(tasks)
	if completed[domain.TaskTypeVideo] != 1 {
		t.Errorf("completed video count = %d, want 1", completed[domain.TaskTypeVideo])
	}
	if _, ok := completed[domain.TaskTypeExercise]; ok {
		t.Errorf("exercise has no completions, should be absent")
	}
}

func TestPerTypeRate(t *testing.T) {
	clientID := primitive.NewObjectID()
	tasks := []domain.Task{
		newTask(clientID, domain.TaskTypeVideo, true),
		newTask(clientID, domain.TaskTypeVideo, false),
	}

	if got := PerTypeRate(tasks, domain.TaskTypeVideo); got != 50 {
		t.Errorf("PerTypeRate(video) = %v, want 50", got)
	}
	// Absent denominator is 0, not a division error.
	if got := PerTypeRate(tasks, domain.TaskTypeReflection); got != 0 {
		t.Errorf("PerTypeRate(reflection) = %v, want 0", got)
	}
}

func TestRankClientEngagementSortedAndStable(t *testing.T) {
	high := domain.User{ID: primitive.NewObjectID(), Name: "High", Role: domain.RoleClient}
	tieFirst := domain.User{ID: primitive.NewObjectID(), Name: "TieFirst", Role: domain.RoleClient}
	tieSecond := domain.User{ID: primitive.NewObjectID(), Name: "TieSecond", Role: domain.RoleClient}

	tasks := []domain.Task{
		newTask(high.ID, domain.TaskTypeReading, true),
		newTask(tieFirst.ID, domain.TaskTypeReading, true),
		newTask(tieFirst.ID, domain.TaskTypeReading, false),
		newTask(tieSecond.ID, domain.TaskTypeVideo, true),
		newTask(tieSecond.ID, domain.TaskTypeVideo, false),
	}
	clients := []domain.User{tieFirst, high, tieSecond}

	// Repeated runs must agree: the tie between TieFirst and TieSecond keeps
	// their relative input order every time.
	for run := 0; run < 5; run++ {
		ranked := RankClientEngagement(clients, tasks)
		if len(ranked) != 3 {
			t.Fatalf("len(ranked) = %d, want 3", len(ranked))
		}
		if ranked[0].Name != "High" {
			t.Errorf("run %d: ranked[0] = %s, want High", run, ranked[0].Name)
		}
		if ranked[1].Name != "TieFirst" || ranked[2].Name != "TieSecond" {
			t.Errorf("run %d: tie order = [%s %s], want [TieFirst TieSecond]", run, ranked[1].Name, ranked[2].Name)
		}
	}
}

func TestRankClientEngagementCountsAndRates(t *testing.T) {
	alice := domain.User{ID: primitive.NewObjectID(), Name: "Alice", Role: domain.RoleClient}
	tasks := []domain.Task{
		newTask(alice.ID, domain.TaskTypeReading, true),
		newTask(alice.ID, domain.TaskTypeReading, false),
	}

	ranked := RankClientEngagement([]domain.User{alice}, tasks)
	if len(ranked) != 1 {
		t.Fatalf("len(ranked) = %d, want 1", len(ranked))
	}
	got := ranked[0]
	if got.Name != "Alice" || got.TotalTasks != 2 || got.CompletedTasks != 1 || got.CompletionRate != 50 {
		t.Errorf("engagement = %+v, want {Alice 2 1 50}", got)
	}
}

func TestSummarize(t *testing.T) {
	alice := domain.User{ID: primitive.NewObjectID(), Name: "Alice", Role: domain.RoleClient}
	done := domain.User{ID: primitive.NewObjectID(), Name: "Done", Role: domain.RoleClient}
	idle := domain.User{ID: primitive.NewObjectID(), Name: "Idle", Role: domain.RoleClient}

	tasks := []domain.Task{
		newTask(alice.ID, domain.TaskTypeReading, true),
		newTask(alice.ID, domain.TaskTypeReading, false),
		newTask(done.ID, domain.TaskTypeVideo, true),
	}

	stats := Summarize([]domain.User{alice, done, idle}, tasks)

	if stats.TotalClients != 3 {
		t.Errorf("TotalClients = %d, want 3", stats.TotalClients)
	}
	if stats.TotalTasks != 3 {
		t.Errorf("TotalTasks = %d, want 3", stats.TotalTasks)
	}
	if stats.CompletedTasks != 2 {
		t.Errorf("CompletedTasks = %d, want 2", stats.CompletedTasks)
	}
	// Only Alice has an incomplete task; Done finished everything and Idle
	// has nothing assigned.
	if stats.ActiveClients != 1 {
		t.Errorf("ActiveClients = %d, want 1", stats.ActiveClients)
	}
}

func TestWeeklyRollup(t *testing.T) {
	clientID := primitive.NewObjectID()

	at := func(day time.Time, completed bool) domain.Task {
		task := newTask(clientID, domain.TaskTypeReading, completed)
		task.AssignedDate = day
		return task
	}

	// Monday 2026-08-17 and Sunday 2026-08-23 share an ISO week; Monday
	// 2026-08-24 starts the next one.
	week1Mon := time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC)
	week1Sun := time.Date(2026, 8, 23, 22, 0, 0, 0, time.UTC)
	week2Mon := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	buckets := WeeklyRollup([]domain.Task{
		at(week2Mon, false),
		at(week1Mon, true),
		at(week1Sun, false),
	})

	if len(buckets) != 2 {
		t.Fatalf("len(buckets) = %d, want 2", len(buckets))
	}
	if !buckets[0].WeekStart.Before(buckets[1].WeekStart) {
		t.Errorf("buckets not in ascending week order")
	}
	first := buckets[0]
	if first.Week != "2026-W34" || first.Assigned != 2 || first.Completed != 1 {
		t.Errorf("first bucket = %+v, want 2026-W34 assigned=2 completed=1", first)
	}
	second := buckets[1]
	if second.Week != "2026-W35" || second.Assigned != 1 || second.Completed != 0 {
		t.Errorf("second bucket = %+v, want 2026-W35 assigned=1 completed=0", second)
	}
}

func TestWeeklyRollupEmpty(t *testing.T) {
	if got := WeeklyRollup(nil); len(got) != 0 {
		t.Errorf("WeeklyRollup(nil) = %v, want empty", got)
	}
}

func TestRoundRate(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{49.4, 49},
		{49.5, 50}, // half rounds up
		{100.0 / 3.0, 33},
		{200.0 / 3.0, 67},
		{100, 100},
	}
	for _, tt := range tests {
		if got := RoundRate(tt.in); got != tt.want {
			t.Errorf("RoundRate(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
