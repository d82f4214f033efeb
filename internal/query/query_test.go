package query

import (
	"fmt"
	"testing"
	"time"

	"todocore/internal/models"
)

func noon(day int) *time.Time {
	t := time.Date(2023, 10, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func fixture() []models.Todo {
	base := time.Date(2023, 10, 1, 9, 0, 0, 0, time.UTC)
	mk := func(i int, title string, status models.Status, due *time.Time) models.Todo {
		return models.Todo{
			ID:        fmt.Sprintf("todo-%02d", i),
			UserID:    "owner",
			Title:     title,
			Status:    status,
			DueDate:   due,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return []models.Todo{
		mk(0, "Write report", models.StatusPending, noon(5)),
		mk(1, "buy groceries", models.StatusBacklog, nil),
		mk(2, "Review PR", models.StatusInProgress, noon(3)),
		mk(3, "Ship release", models.StatusCompleted, noon(9)),
		mk(4, "Groceries list cleanup", models.StatusBacklog, noon(3)),
	}
}

func ids(items []models.Todo) []string {
	out := make([]string, len(items))
	for i, t := range items {
		out[i] = t.ID
	}
	return out
}

func TestParseSortField(t *testing.T) {
	for _, valid := range []string{"", "created_at", "title", "status", "due_date"} {
		if _, err := ParseSortField(valid); err != nil {
			t.Fatalf("ParseSortField(%q): %v", valid, err)
		}
	}
	for _, invalid := range []string{"duration", "CREATED_AT", "id", "owner"} {
		if _, err := ParseSortField(invalid); err == nil {
			t.Fatalf("ParseSortField(%q) should fail", invalid)
		}
	}
}

func TestStatusSortIsAlphabetical(t *testing.T) {
	res := Run(fixture(), Params{SortBy: SortByStatus, Size: 100})

	want := []models.Status{
		models.StatusBacklog,
		models.StatusBacklog,
		models.StatusCompleted,
		models.StatusInProgress,
		models.StatusPending,
	}
	for i, item := range res.Items {
		if item.Status != want[i] {
			t.Fatalf("ascending status order at %d = %s, want %s", i, item.Status, want[i])
		}
	}

	res = Run(fixture(), Params{SortBy: SortByStatus, SortDesc: true, Size: 100})
	for i, item := range res.Items {
		if item.Status != want[len(want)-1-i] {
			t.Fatalf("descending status order at %d = %s, want %s", i, item.Status, want[len(want)-1-i])
		}
	}
}

func TestStatusSortScenario(t *testing.T) {
	// Three todos created as PENDING, BACKLOG, COMPLETED come back
	// BACKLOG, COMPLETED, PENDING when sorted ascending by status.
	base := time.Now().UTC()
	todos := []models.Todo{
		{ID: "a", Status: models.StatusPending, CreatedAt: base},
		{ID: "b", Status: models.StatusBacklog, CreatedAt: base.Add(time.Second)},
		{ID: "c", Status: models.StatusCompleted, CreatedAt: base.Add(2 * time.Second)},
	}

	res := Run(todos, Params{SortBy: SortByStatus})
	got := []models.Status{res.Items[0].Status, res.Items[1].Status, res.Items[2].Status}
	want := []models.Status{models.StatusBacklog, models.StatusCompleted, models.StatusPending}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("status order = %v, want %v", got, want)
		}
	}
}

func TestSortStability(t *testing.T) {
	// All five share a key under title sorting only where titles tie;
	// use equal statuses instead: the two BACKLOG todos must keep
	// their input order.
	res := Run(fixture(), Params{SortBy: SortByStatus, Size: 100})
	if res.Items[0].ID != "todo-01" || res.Items[1].ID != "todo-04" {
		t.Fatalf("equal-key records reordered: %v", ids(res.Items))
	}
}

func TestDueDateSortUnsetFirstAscending(t *testing.T) {
	res := Run(fixture(), Params{SortBy: SortByDueDate, Size: 100})
	if res.Items[0].DueDate != nil {
		t.Fatalf("ascending: first item should have no due date, got %v", res.Items[0].DueDate)
	}
	for i := 1; i < len(res.Items)-1; i++ {
		a, b := res.Items[i].DueDate, res.Items[i+1].DueDate
		if a != nil && b != nil && a.After(*b) {
			t.Fatalf("ascending due dates out of order at %d: %v > %v", i, a, b)
		}
	}

	res = Run(fixture(), Params{SortBy: SortByDueDate, SortDesc: true, Size: 100})
	last := res.Items[len(res.Items)-1]
	if last.DueDate != nil {
		t.Fatalf("descending: last item should have no due date, got %v", last.DueDate)
	}
}

func TestFiltersAreConjunctive(t *testing.T) {
	res := Run(fixture(), Params{
		Search: "groceries",
		Status: models.StatusBacklog,
		Size:   100,
	})
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Total)
	}

	res = Run(fixture(), Params{
		Search:       "groceries",
		Status:       models.StatusBacklog,
		DueDateStart: noon(1),
		DueDateEnd:   noon(31),
		Size:         100,
	})
	// The undated groceries todo drops out once a bound is set.
	if res.Total != 1 || res.Items[0].ID != "todo-04" {
		t.Fatalf("total = %d items = %v, want just todo-04", res.Total, ids(res.Items))
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	res := Run(fixture(), Params{Search: "GROCERIES", Size: 100})
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Total)
	}
}

func TestDueDateBoundsInclusive(t *testing.T) {
	res := Run(fixture(), Params{
		DueDateStart: noon(3),
		DueDateEnd:   noon(5),
		Size:         100,
	})
	// Due dates 3, 3 and 5 match; 9 and the unset one do not.
	if res.Total != 3 {
		t.Fatalf("total = %d, want 3", res.Total)
	}
}

func TestPaginationPartitionsSortedSequence(t *testing.T) {
	var todos []models.Todo
	base := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 23; i++ {
		todos = append(todos, models.Todo{
			ID:        fmt.Sprintf("t-%02d", i),
			Title:     fmt.Sprintf("task %02d", i),
			Status:    models.StatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	const size = 5
	full := Run(todos, Params{SortBy: SortByCreatedAt, Size: len(todos)})
	if full.Total != 23 {
		t.Fatalf("total = %d, want 23", full.Total)
	}

	var collected []string
	for page := 1; ; page++ {
		res := Run(todos, Params{SortBy: SortByCreatedAt, Page: page, Size: size})
		if res.Total != 23 {
			t.Fatalf("page %d total = %d, want 23", page, res.Total)
		}
		if len(res.Items) == 0 {
			// ceil(23/5) = 5 pages, so page 6 is the first empty one.
			if page != 6 {
				t.Fatalf("first empty page = %d, want 6", page)
			}
			break
		}
		collected = append(collected, ids(res.Items)...)
	}

	want := ids(full.Items)
	if len(collected) != len(want) {
		t.Fatalf("concatenated pages have %d items, want %d", len(collected), len(want))
	}
	for i := range want {
		if collected[i] != want[i] {
			t.Fatalf("concatenated pages diverge at %d: %s != %s", i, collected[i], want[i])
		}
	}
}

func TestOutOfRangePageReturnsEmptyWithTotal(t *testing.T) {
	res := Run(fixture(), Params{Page: 99, Size: 10})
	if len(res.Items) != 0 {
		t.Fatalf("items = %v, want empty", ids(res.Items))
	}
	if res.Total != 5 {
		t.Fatalf("total = %d, want 5", res.Total)
	}
}

func TestDefaultSortIsCreatedAt(t *testing.T) {
	res := Run(fixture(), Params{SortDesc: true, Size: 100})
	for i := 0; i < len(res.Items)-1; i++ {
		if res.Items[i].CreatedAt.Before(res.Items[i+1].CreatedAt) {
			t.Fatalf("descending created_at out of order at %d", i)
		}
	}
}
