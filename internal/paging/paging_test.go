// internal/paging/paging_test.go
package paging

import (
	"fmt"
	"math"
	"testing"
	"time"

	"competition-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeApps(n int) []models.Application {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	apps := make([]models.Application, n)
	for i := 0; i < n; i++ {
		apps[i] = models.Application{
			ID:        fmt.Sprintf("id-%02d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
			Email:     fmt.Sprintf("user%02d@example.com", i),
			DiscordID: fmt.Sprintf("user%02d#0001", i),
		}
	}
	return apps
}

func TestSortByCreatedAtDesc(t *testing.T) {
	apps := makeApps(3) // T1 < T2 < T3 in input order
	SortByCreatedAtDesc(apps)

	assert.Equal(t, "id-02", apps[0].ID)
	assert.Equal(t, "id-01", apps[1].ID)
	assert.Equal(t, "id-00", apps[2].ID)
}

func TestPaginate_25Records(t *testing.T) {
	apps := makeApps(25)

	page1 := Paginate(apps, 1, 10)
	page2 := Paginate(apps, 2, 10)
	page3 := Paginate(apps, 3, 10)
	page4 := Paginate(apps, 4, 10)

	assert.Len(t, page1.Data, 10)
	assert.Len(t, page2.Data, 10)
	assert.Len(t, page3.Data, 5)
	assert.Empty(t, page4.Data)

	assert.Equal(t, 25, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)

	// No overlap between pages.
	seen := map[string]bool{}
	for _, p := range [][]models.Application{page1.Data, page2.Data, page3.Data} {
		for _, app := range p {
			require.False(t, seen[app.ID], "record %s appeared twice", app.ID)
			seen[app.ID] = true
		}
	}
	assert.Len(t, seen, 25)
}

func TestPaginate_Defaults(t *testing.T) {
	apps := makeApps(15)

	page := Paginate(apps, 0, 0)
	assert.Equal(t, DefaultPage, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Len(t, page.Data, 10)
	assert.Equal(t, 2, page.TotalPages)
}

func TestPaginate_ExtremePageValues(t *testing.T) {
	apps := makeApps(5)

	// Values large enough that naive (page-1)*pageSize arithmetic would wrap.
	huge := Paginate(apps, math.MaxInt/10, 10)
	assert.Empty(t, huge.Data)
	assert.Equal(t, 5, huge.Total)
	assert.Equal(t, 1, huge.TotalPages)

	maxBoth := Paginate(apps, math.MaxInt, math.MaxInt)
	assert.Empty(t, maxBoth.Data)

	onePageOfEverything := Paginate(apps, 1, math.MaxInt)
	assert.Len(t, onePageOfEverything.Data, 5)
	assert.Equal(t, 1, onePageOfEverything.TotalPages)
}

func TestPaginate_DoesNotMutateInput(t *testing.T) {
	apps := makeApps(5)
	firstBefore := apps[0].ID

	_ = Paginate(apps, 1, 2)
	assert.Equal(t, firstBefore, apps[0].ID)
}

func TestFilter(t *testing.T) {
	apps := []models.Application{
		{ID: "1", Email: "alice@example.com", DiscordID: "alice#1111", Name: "Alice", TeamName: "Red"},
		{ID: "2", Email: "bob@example.com", DiscordID: "bob#2222", Name: "Bob", TeamName: "Blue"},
	}

	assert.Len(t, Filter(apps, ""), 2)
	assert.Len(t, Filter(apps, "ALICE"), 1)
	assert.Len(t, Filter(apps, "bob#"), 1)
	assert.Len(t, Filter(apps, "blue"), 1)
	assert.Empty(t, Filter(apps, "charlie"))
}
