package export

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for formats without a renderer
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Service picks the renderer for a format and renders reports in memory
type Service struct {
	exporters map[ExportFormat]Exporter
}

// NewService creates a service with the PDF and Excel renderers
func NewService() *Service {
	return &Service{
		exporters: map[ExportFormat]Exporter{
			FormatPDF:   NewPDFExporter(),
			FormatExcel: NewExcelExporter(),
		},
	}
}

// Rendered is a finished document held in memory
type Rendered struct {
	Content     []byte
	ContentType string
	Extension   string
}

// Render renders the report in the given format into a buffer. Nothing is
// returned unless rendering completed.
func (s *Service) Render(report *Report, format ExportFormat) (*Rendered, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var buf bytes.Buffer
	if err := exporter.Export(report, &buf); err != nil {
		return nil, fmt.Errorf("%s export failed: %w", format, err)
	}

	return &Rendered{
		Content:     buf.Bytes(),
		ContentType: exporter.GetContentType(),
		Extension:   exporter.GetFileExtension(),
	}, nil
}
