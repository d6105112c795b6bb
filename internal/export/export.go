// Package export encodes record collections for download and decodes CSV
// imports. The CSV column order matches the dashboard's export format.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"roipulse/internal/models"
)

var csvHeader = []string{"ID", "Date", "Costs", "Revenue", "Automation Tool", "Leads Generated", "Created At"}

// Envelope wraps a JSON export with its metadata.
type Envelope struct {
	ExportedAt   time.Time          `json:"exportedAt"`
	TotalRecords int                `json:"totalRecords"`
	Data         []models.ROIRecord `json:"data"`
}

func WriteJSON(w io.Writer, records []models.ROIRecord, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Envelope{ExportedAt: now, TotalRecords: len(records), Data: records})
}

func WriteCSV(w io.Writer, records []models.ROIRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Date.String(),
			strconv.FormatFloat(r.Costs, 'f', -1, 64),
			strconv.FormatFloat(r.Revenue, 'f', -1, 64),
			r.AutomationTool,
			strconv.Itoa(r.LeadsGenerated),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses records in the export column order. The header row is
// optional; blank ids and creation timestamps are left empty for the store
// to fill in.
func ReadCSV(r io.Reader) ([]models.ROIRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	records := make([]models.ROIRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == csvHeader[0] {
			continue
		}
		if len(row) < 6 {
			return nil, fmt.Errorf("row %d: want at least 6 columns, got %d", i+1, len(row))
		}
		date, err := models.ParseDate(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		costs, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad costs %q", i+1, row[2])
		}
		revenue, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad revenue %q", i+1, row[3])
		}
		leads, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad leads %q", i+1, row[5])
		}
		rec := models.ROIRecord{
			ID:             row[0],
			Date:           date,
			Costs:          costs,
			Revenue:        revenue,
			AutomationTool: row[4],
			LeadsGenerated: leads,
		}
		if len(row) > 6 && row[6] != "" {
			if t, err := time.Parse(time.RFC3339, row[6]); err == nil {
				rec.CreatedAt = t
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
