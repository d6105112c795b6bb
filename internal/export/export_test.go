package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roipulse/internal/models"
)

func sample() []models.ROIRecord {
	return []models.ROIRecord{
		{
			ID:             "roi_1",
			Date:           models.NewDate(2024, 5, 1),
			Costs:          100.5,
			Revenue:        250,
			AutomationTool: "zapflow",
			LeadsGenerated: 4,
			CreatedAt:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:             "roi_2",
			Date:           models.NewDate(2024, 5, 2),
			Costs:          0,
			Revenue:        80,
			AutomationTool: "leadbot, inc",
			LeadsGenerated: 0,
			CreatedAt:      time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Date,Costs,Revenue,Automation Tool,Leads Generated,Created At", lines[0])
	assert.Contains(t, lines[2], `"leadbot, inc"`, "tool names with commas are quoted")

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}

func TestReadCSVWithoutHeader(t *testing.T) {
	in := "roi_9,2024-01-15,10,20,zapflow,2,2024-01-15T10:00:00Z\n"
	got, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "roi_9", got[0].ID)
	assert.Equal(t, 10.0, got[0].Costs)
}

func TestReadCSVBadRow(t *testing.T) {
	in := "roi_9,not-a-date,10,20,zapflow,2,\n"
	_, err := ReadCSV(strings.NewReader(in))
	assert.Error(t, err)
}

func TestWriteJSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, WriteJSON(&buf, sample(), now))

	var env Envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.Equal(t, now, env.ExportedAt)
	assert.Equal(t, 2, env.TotalRecords)
	require.Len(t, env.Data, 2)
	assert.Equal(t, "roi_1", env.Data[0].ID)
}
