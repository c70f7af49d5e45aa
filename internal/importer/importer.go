// Package importer ingests collected-title exports from CSV and XLSX files.
// The crawler writes CSV with a "No, Title, URL" header in UTF-8 with BOM;
// spreadsheet exports follow the same column layout.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/twinssn/blogdex/internal/logger"
	"github.com/twinssn/blogdex/internal/models"
)

// chunkSize bounds the rows per insert transaction so a large upload reports
// progress and fails no later than one chunk behind.
const chunkSize = 500

// TitleSink persists parsed titles.
type TitleSink interface {
	BulkInsertTitles(ctx context.Context, titles []models.TitleInput) (int64, error)
}

// ChunkProgress reports one committed chunk of an import.
type ChunkProgress struct {
	Chunk    int   `json:"chunk"`
	Rows     int   `json:"rows"`
	Inserted int64 `json:"inserted"`
}

// Result summarizes a completed file import.
type Result struct {
	ImportID string          `json:"import_id"`
	Filename string          `json:"filename"`
	Parsed   int             `json:"parsed"`
	Inserted int64           `json:"inserted"`
	Skipped  int64           `json:"skipped"`
	Chunks   []ChunkProgress `json:"chunks"`
}

// Importer parses title export files and writes them through a sink.
type Importer struct {
	sink   TitleSink
	logger logger.Logger
}

// New creates an importer.
func New(sink TitleSink, log logger.Logger) *Importer {
	return &Importer{sink: sink, logger: log}
}

// ImportTitles parses the upload by file extension and inserts the titles in
// chunks. Rows already on file count as skipped. A chunk failure aborts the
// import; earlier chunks stay committed and the error reports how far the
// import got.
func (im *Importer) ImportTitles(ctx context.Context, filename, source string, r io.Reader) (*Result, error) {
	var (
		titles []models.TitleInput
		err    error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		titles, err = parseCSV(r, source)
	case ".xlsx":
		titles, err = parseXLSX(r, source)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	result := &Result{
		ImportID: uuid.New().String(),
		Filename: filename,
		Parsed:   len(titles),
		Chunks:   []ChunkProgress{},
	}

	for start := 0; start < len(titles); start += chunkSize {
		end := start + chunkSize
		if end > len(titles) {
			end = len(titles)
		}
		chunk := titles[start:end]

		inserted, insertErr := im.sink.BulkInsertTitles(ctx, chunk)
		if insertErr != nil {
			return nil, fmt.Errorf("import %s chunk %d (%d rows committed): %w",
				result.ImportID, len(result.Chunks)+1, result.Inserted, insertErr)
		}

		result.Inserted += inserted
		result.Chunks = append(result.Chunks, ChunkProgress{
			Chunk:    len(result.Chunks) + 1,
			Rows:     len(chunk),
			Inserted: inserted,
		})

		im.logger.Info("import chunk committed",
			logger.String("import_id", result.ImportID),
			logger.Int("chunk", len(result.Chunks)),
			logger.Int64("inserted", inserted))
	}

	result.Skipped = int64(result.Parsed) - result.Inserted
	return result, nil
}

// parseCSV reads crawler CSV exports. The BOM the crawler writes is
// stripped, a header row is detected by a "title" column, and rows without a
// recognizable title are skipped.
func parseCSV(r io.Reader, source string) ([]models.TitleInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	titleCol, urlCol, start := detectColumns(records[0])

	titles := make([]models.TitleInput, 0, len(records))
	for _, rec := range records[start:] {
		titles = appendRow(titles, rec, titleCol, urlCol, source)
	}
	return titles, nil
}

// parseXLSX reads the first sheet of a spreadsheet export with the same
// column layout as the CSV.
func parseXLSX(r io.Reader, source string) ([]models.TitleInput, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	titleCol, urlCol, start := detectColumns(rows[0])

	titles := make([]models.TitleInput, 0, len(rows))
	for _, rec := range rows[start:] {
		titles = appendRow(titles, rec, titleCol, urlCol, source)
	}
	return titles, nil
}

// detectColumns finds the title and url columns from a header row. Files
// without a header are treated as single-column title lists.
func detectColumns(header []string) (titleCol, urlCol, start int) {
	titleCol, urlCol = 0, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "title", "제목":
			titleCol = i
			start = 1
		case "url", "link", "링크":
			urlCol = i
			start = 1
		}
	}
	return titleCol, urlCol, start
}

func appendRow(titles []models.TitleInput, rec []string, titleCol, urlCol int, source string) []models.TitleInput {
	if titleCol >= len(rec) {
		return titles
	}
	title := strings.TrimSpace(rec[titleCol])
	if title == "" {
		return titles
	}

	url := ""
	if urlCol >= 0 && urlCol < len(rec) {
		url = strings.TrimSpace(rec[urlCol])
	}

	return append(titles, models.TitleInput{Title: title, URL: url, Source: source})
}
