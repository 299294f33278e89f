// internal/paging/paging.go

// Package paging derives ordered, paged views over the full record set. Pure
// functions, no I/O; the store hands over an unordered slice and the caller
// renders the result.
package paging

import (
	"sort"
	"strings"
	"time"

	"competition-intake/internal/models"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Page is one slice of the sorted record set plus its paging envelope.
type Page struct {
	Data       []models.Application `json:"data"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	TotalPages int                  `json:"totalPages"`
}

// SortByCreatedAtDesc orders records newest first. Ties keep their input order;
// equal timestamps carry no ordering contract.
func SortByCreatedAtDesc(apps []models.Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		return parseCreatedAt(apps[i].CreatedAt).After(parseCreatedAt(apps[j].CreatedAt))
	})
}

func parseCreatedAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Paginate sorts and slices the record set. page is 1-based; non-positive page
// or pageSize falls back to the defaults. A page past the end yields an empty
// slice, not an error.
func Paginate(apps []models.Application, page, pageSize int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	sorted := make([]models.Application, len(apps))
	copy(sorted, apps)
	SortByCreatedAtDesc(sorted)

	total := len(sorted)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	// Past-the-end pages resolve before any index arithmetic, so arbitrarily
	// large page or pageSize values cannot wrap into a negative slice index.
	data := sorted[total:]
	if page <= totalPages {
		start := (page - 1) * pageSize
		end := total
		if total-start > pageSize {
			end = start + pageSize
		}
		data = sorted[start:end]
	}

	return Page{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Filter keeps records whose email, Discord ID, name or team name contains the
// query, case-insensitively. An empty query keeps everything.
func Filter(apps []models.Application, query string) []models.Application {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return apps
	}

	out := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.Email), q) ||
			strings.Contains(strings.ToLower(app.DiscordID), q) ||
			strings.Contains(strings.ToLower(app.Name), q) ||
			strings.Contains(strings.ToLower(app.TeamName), q) {
			out = append(out, app)
		}
	}
	return out
}
