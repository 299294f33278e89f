// internal/export/export.go

// Package export serializes the full record set for admin download. Pure over
// its input; the HTTP layer picks the format and sets the attachment headers.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"competition-intake/internal/common/errors"
	"competition-intake/internal/models"
)

// Format selects the serialization mode.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a caller-supplied format selector.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.NewExportFormatInvalidError(s)
	}
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

func (f Format) Filename() string {
	return fmt.Sprintf("applications.%s", string(f))
}

// columns is the fixed export column order, matching the record's wire field
// set. Every record is mapped over this list; a field absent from a record
// serializes as an empty cell.
var columns = []string{
	"id", "createdAt",
	"name", "email", "discordId",
	"teamName", "teamMembers", "teamExperience",
	"previousProjects", "teamExperienceDescription",
	"gameTitle", "gameConcept", "whyWin", "whyPlayersLike",
	"promotionPlan", "monetizationPlan",
	"projectedDAU", "dayOneRetention",
	"developmentTimeline", "resourcesTools",
}

// Marshal serializes the record set in the requested format.
func Marshal(apps []models.Application, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return marshalCSV(apps)
	case FormatJSON:
		return marshalJSON(apps)
	default:
		return nil, errors.NewExportFormatInvalidError(string(format))
	}
}

// marshalCSV writes one row per record. Fields containing the delimiter, a
// quote or a newline are quoted with internal quotes doubled, so standard
// spreadsheet readers round-trip the values exactly.
func marshalCSV(apps []models.Application) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}

	for i := range apps {
		fields, err := recordFields(&apps[i])
		if err != nil {
			return nil, err
		}

		row := make([]string, len(columns))
		for j, col := range columns {
			if v, ok := fields[col]; ok {
				row[j] = cellString(v)
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// marshalJSON is the identity mapping of the record sequence; timestamps are
// already carried as RFC3339 text.
func marshalJSON(apps []models.Application) ([]byte, error) {
	if apps == nil {
		apps = []models.Application{}
	}
	return json.MarshalIndent(apps, "", "  ")
}

func recordFields(app *models.Application) (map[string]interface{}, error) {
	raw, err := json.Marshal(app)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// Whole numbers (the only numeric fields) print without a decimal part.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
