package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
	"github.com/noah-isme/school-dashboard-api/pkg/export"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// DatasetSource renders the visible records of a view as a table.
type DatasetSource interface {
	Entity() string
	Dataset(viewID string) (export.Dataset, error)
}

// ExportFile is a rendered export ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService turns view datasets into downloadable files.
type ExportService struct {
	exporters map[string]export.Exporter
	enabled   bool
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs the export service with CSV and PDF renderers.
func NewExportService(enabled bool, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		exporters: map[string]export.Exporter{
			FormatCSV: export.NewCSVExporter(),
			FormatPDF: export.NewPDFExporter(),
		},
		enabled: enabled,
		logger:  logger,
		now:     time.Now,
	}
}

// Export renders every visible record of the view, not only the current page.
func (s *ExportService) Export(source DatasetSource, viewID, format string) (*ExportFile, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	data, err := source.Dataset(viewID)
	if err != nil {
		return nil, err
	}
	body, err := exporter.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("view exported",
		zap.String("entity", source.Entity()), zap.String("format", format), zap.Int("rows", len(data.Rows)))
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", source.Entity(), s.now().UTC().Format("20060102-150405"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Body:        body,
	}, nil
}
