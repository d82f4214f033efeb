// Package query evaluates list requests over an owner-scoped todo
// collection: conjunctive filters, field sorting with a stable
// tie-break, and 1-indexed pagination.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"todocore/internal/models"
)

const DefaultPageSize = 10

// SortField is the closed set of sortable columns. Unknown wire values
// are rejected by ParseSortField instead of falling back silently.
type SortField int

const (
	SortByCreatedAt SortField = iota
	SortByTitle
	SortByStatus
	SortByDueDate
)

func ParseSortField(s string) (SortField, error) {
	switch s {
	case "", "created_at":
		return SortByCreatedAt, nil
	case "title":
		return SortByTitle, nil
	case "status":
		return SortByStatus, nil
	case "due_date":
		return SortByDueDate, nil
	}
	return 0, fmt.Errorf("unknown sort field: %q", s)
}

type Params struct {
	// Search matches case-insensitively against the title.
	Search string
	// Status filters on exact status; empty matches all.
	Status models.Status
	// DueDateStart and DueDateEnd are inclusive bounds. Todos without
	// a due date never match when either bound is set.
	DueDateStart *time.Time
	DueDateEnd   *time.Time

	SortBy   SortField
	SortDesc bool

	// Page is 1-indexed. Non-positive Page and Size fall back to the
	// first page and DefaultPageSize.
	Page int
	Size int
}

type Result struct {
	Items []models.Todo
	Total int
}

// Run filters, sorts and paginates todos. Total counts all matches
// before pagination. Sorting is stable, so records with equal keys
// keep the store's iteration order and results are reproducible.
func Run(todos []models.Todo, p Params) Result {
	search := strings.ToLower(p.Search)

	matched := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if matches(t, p, search) {
			matched = append(matched, t)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if p.SortDesc {
			return less(matched[j], matched[i], p.SortBy)
		}
		return less(matched[i], matched[j], p.SortBy)
	})

	page, size := p.Page, p.Size
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	total := len(matched)
	start := (page - 1) * size
	if start >= total {
		return Result{Items: []models.Todo{}, Total: total}
	}
	end := start + size
	if end > total {
		end = total
	}
	return Result{Items: matched[start:end], Total: total}
}

func matches(t models.Todo, p Params, search string) bool {
	if search != "" && !strings.Contains(strings.ToLower(t.Title), search) {
		return false
	}
	if p.Status != "" && t.Status != p.Status {
		return false
	}
	if p.DueDateStart != nil || p.DueDateEnd != nil {
		if t.DueDate == nil {
			return false
		}
		if p.DueDateStart != nil && t.DueDate.Before(*p.DueDateStart) {
			return false
		}
		if p.DueDateEnd != nil && t.DueDate.After(*p.DueDateEnd) {
			return false
		}
	}
	return true
}

func less(a, b models.Todo, field SortField) bool {
	switch field {
	case SortByTitle:
		return a.Title < b.Title
	case SortByStatus:
		// Lexical on the status name: BACKLOG < COMPLETED <
		// IN_PROGRESS < PENDING. Alphabetical, not workflow order.
		return a.Status < b.Status
	case SortByDueDate:
		return dueBefore(a.DueDate, b.DueDate)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

// dueBefore orders unset due dates as the lowest value, so they come
// first ascending and last descending.
func dueBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	default:
		return a.Before(*b)
	}
}
