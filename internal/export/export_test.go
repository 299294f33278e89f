// internal/export/export_test.go
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"competition-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	assert.Equal(t, "text/csv", f.ContentType())
	assert.Equal(t, "applications.csv", f.Filename())

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)

	_, err = ParseFormat("")
	assert.Error(t, err)
}

func TestMarshalCSV_RoundTripsSpecialCharacters(t *testing.T) {
	tricky := "plan with, commas \"quotes\"\nand a newline"
	apps := []models.Application{
		{
			ID:            "id-1",
			CreatedAt:     "2026-03-01T12:00:00Z",
			Name:          "Jane",
			Email:         "jane@example.com",
			DiscordID:     "jane#1234",
			PromotionPlan: tricky,
			ProjectedDAU:  5000,
		},
	}

	out, err := Marshal(apps, FormatCSV)
	require.NoError(t, err)

	// A standard reader must reproduce the original value exactly.
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	row := records[1]
	require.Equal(t, len(header), len(row))

	byColumn := map[string]string{}
	for i, col := range header {
		byColumn[col] = row[i]
	}
	assert.Equal(t, tricky, byColumn["promotionPlan"])
	assert.Equal(t, "jane@example.com", byColumn["email"])
	assert.Equal(t, "5000", byColumn["projectedDAU"])
	assert.Equal(t, "2026-03-01T12:00:00Z", byColumn["createdAt"])
}

func TestMarshalCSV_ColumnOrderStable(t *testing.T) {
	apps := []models.Application{{ID: "a"}, {ID: "b"}}

	out, err := Marshal(apps, FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "createdAt", records[0][1])
	// Empty fields serialize as empty cells, not errors.
	assert.Equal(t, "", records[1][2])
}

func TestMarshalJSON_Identity(t *testing.T) {
	apps := []models.Application{
		{ID: "id-1", CreatedAt: "2026-03-01T12:00:00Z", Email: "jane@example.com"},
	}

	out, err := Marshal(apps, FormatJSON)
	require.NoError(t, err)

	var decoded []models.Application
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, apps, decoded)
}

func TestMarshalJSON_EmptySet(t *testing.T) {
	out, err := Marshal(nil, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(out))
}
