package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
)

// CompletionRate returns the percentage of completed tasks in [0,100].
// An empty collection has a rate of 0, not NaN.
func CompletionRate(tasks []domain.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100
}

// CountsByType tallies tasks grouped by type. Types absent from the input
// are absent from the map; callers rely on the zero value on lookup.
func CountsByType(tasks []domain.Task) map[domain.TaskType]int {
	counts := make(map[domain.TaskType]int)
	for _, t := range tasks {
		counts[t.Type]++
	}
	return counts
}

// CompletedCountsByType tallies completed tasks grouped by type.
func CompletedCountsByType(tasks []domain.Task) map[domain.TaskType]int {
	counts := make(map[domain.TaskType]int)
	for _, t := range tasks {
		if t.Completed {
			counts[t.Type]++
		}
	}
	return counts
}

// PerTypeRate returns the completion percentage for a single task type,
// 0 when no tasks of that type exist.
func PerTypeRate(tasks []domain.Task, taskType domain.TaskType) float64 {
	total := CountsByType(tasks)[taskType]
	if total == 0 {
		return 0
	}
	return float64(CompletedCountsByType(tasks)[taskType]) / float64(total) * 100
}

// ClientEngagement is one row of the engagement ranking.
type ClientEngagement struct {
	ClientID       string  `json:"clientId"`
	Name           string  `json:"name"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
}

// RankClientEngagement produces one engagement record per client, sorted
// descending by completion rate. The sort is explicitly stable: clients
// with equal rates keep their relative input order.
func RankClientEngagement(clients []domain.User, tasks []domain.Task) []ClientEngagement {
	out := make([]ClientEngagement, 0, len(clients))
	for _, c := range clients {
		clientTasks := ByClient(tasks, c.ID)
		completed := len(ByCompletion(clientTasks, FilterCompleted))
		out = append(out, ClientEngagement{
			ClientID:       c.ID.Hex(),
			Name:           c.Name,
			TotalTasks:     len(clientTasks),
			CompletedTasks: completed,
			CompletionRate: CompletionRate(clientTasks),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletionRate > out[j].CompletionRate
	})
	return out
}

// OverallStats summarizes the practice-wide dashboard numbers.
// ActiveClients counts clients with at least one incomplete task.
type OverallStats struct {
	TotalClients   int `json:"totalClients"`
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	ActiveClients  int `json:"activeClients"`
}

// Summarize computes OverallStats over the full client and task collections.
func Summarize(clients []domain.User, tasks []domain.Task) OverallStats {
	stats := OverallStats{
		TotalClients: len(clients),
		TotalTasks:   len(tasks),
	}
	pendingByClient := make(map[string]bool)
	for _, t := range tasks {
		if t.Completed {
			stats.CompletedTasks++
		} else {
			pendingByClient[t.ClientID.Hex()] = true
		}
	}
	for _, c := range clients {
		if pendingByClient[c.ID.Hex()] {
			stats.ActiveClients++
		}
	}
	return stats
}

// WeekBucket is one row of the weekly trend rollup.
type WeekBucket struct {
	Week      string    `json:"week"` // ISO week label, e.g. "2026-W35"
	WeekStart time.Time `json:"weekStart"`
	Assigned  int       `json:"assigned"`
	Completed int       `json:"completed"`
}

// WeeklyRollup buckets tasks by the ISO calendar week of their assignment
// date. Assigned counts every task in the bucket; Completed counts those
// whose completed flag is set (the model stores no separate completion
// timestamp). Buckets are returned in ascending week order and weeks with
// no tasks are omitted.
func WeeklyRollup(tasks []domain.Task) []WeekBucket {
	buckets := make(map[string]*WeekBucket)
	for _, t := range tasks {
		start := weekStart(t.AssignedDate)
		year, week := t.AssignedDate.ISOWeek()
		label := fmt.Sprintf("%d-W%02d", year, week)
		b, ok := buckets[label]
		if !ok {
			b = &WeekBucket{Week: label, WeekStart: start}
			buckets[label] = b
		}
		b.Assigned++
		if t.Completed {
			b.Completed++
		}
	}
	out := make([]WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekStart.Before(out[j].WeekStart)
	})
	return out
}

// weekStart returns midnight on the Monday of t's ISO week.
func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	weekday := int(day.Weekday())
	if weekday == 0 { // Sunday belongs to the week that started 6 days ago
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

// RoundRate rounds a percentage half-up to the nearest integer for display.
// Stored and compared rates stay unrounded.
func RoundRate(rate float64) int {
	return int(math.Floor(rate + 0.5))
}
