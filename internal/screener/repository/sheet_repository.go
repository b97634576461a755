package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"golang-swing-screener/internal/screener/config"
	"golang-swing-screener/internal/screener/pipeline"
	"golang-swing-screener/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
	"golang.org/x/time/rate"
)

// SheetRepository loads the raw tabular snapshot from the configured source.
// A load failure is terminal for the whole run; retry is the caller's
// concern.
type SheetRepository interface {
	Fetch(ctx context.Context) (*pipeline.RawTable, error)
	Source() string
}

type sheetRepository struct {
	cfg        *config.Config
	logger     *logger.Logger
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSheetRepository creates a new SheetRepository.
func NewSheetRepository(cfg *config.Config, log *logger.Logger) (SheetRepository, error) {
	timeout := 30 * time.Second
	if cfg.Sheet.RequestTimeout != "" {
		parsed, err := time.ParseDuration(cfg.Sheet.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid sheet request_timeout: %w", err)
		}
		timeout = parsed
	}

	limit := rate.Inf
	if cfg.Sheet.MaxRequestPerMinute > 0 {
		limit = rate.Limit(float64(cfg.Sheet.MaxRequestPerMinute) / 60.0)
	}

	return &sheetRepository{
		cfg:        cfg,
		logger:     log,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}, nil
}

// Source returns the configured source identifier.
func (r *sheetRepository) Source() string {
	return r.cfg.Sheet.Source
}

// Fetch loads and parses the source into a RawTable. The format is chosen
// by file extension (or export format hint for spreadsheet URLs).
func (r *sheetRepository) Fetch(ctx context.Context) (*pipeline.RawTable, error) {
	source := r.cfg.Sheet.Source
	if source == "" {
		return nil, fmt.Errorf("sheet source is not configured")
	}

	reader, err := r.open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load sheet source: %w", err)
	}
	defer reader.Close()

	var table *pipeline.RawTable
	switch detectFormat(source) {
	case formatXLSX:
		table, err = parseXLSX(reader)
	case formatHTML:
		table, err = parseHTML(reader)
	default:
		table, err = parseCSV(reader)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet source: %w", err)
	}

	r.logger.Debug("Sheet source loaded",
		logger.StringField("source", source),
		logger.IntField("columns", len(table.Columns)),
		logger.IntField("records", len(table.Records)),
	)
	return table, nil
}

func (r *sheetRepository) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !isURL(source) {
		return os.Open(source)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from sheet source", resp.StatusCode)
	}
	return resp.Body, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
	formatHTML = "html"
)

func detectFormat(source string) string {
	if u, err := url.Parse(source); err == nil && u.Scheme != "" {
		// Spreadsheet export URLs carry the format as a query parameter.
		switch u.Query().Get("format") {
		case "csv":
			return formatCSV
		case "xlsx":
			return formatXLSX
		case "html":
			return formatHTML
		}
		if strings.Contains(u.Path, "pubhtml") {
			return formatHTML
		}
		source = u.Path
	}

	switch strings.ToLower(path.Ext(source)) {
	case ".xlsx", ".xls":
		return formatXLSX
	case ".html", ".htm":
		return formatHTML
	default:
		return formatCSV
	}
}

func parseCSV(r io.Reader) (*pipeline.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet source is empty")
	}
	return &pipeline.RawTable{Columns: records[0], Records: records[1:]}, nil
}

func parseXLSX(r io.Reader) (*pipeline.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet source is empty")
	}
	return &pipeline.RawTable{Columns: rows[0], Records: rows[1:]}, nil
}

func parseHTML(r io.Reader) (*pipeline.RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table found in HTML source")
	}

	var out pipeline.RawTable
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		if out.Columns == nil {
			out.Columns = cells
			return
		}
		out.Records = append(out.Records, cells)
	})

	if out.Columns == nil {
		return nil, fmt.Errorf("sheet source is empty")
	}
	return &out, nil
}
