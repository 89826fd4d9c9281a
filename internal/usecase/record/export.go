package record

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/aadb-project/aadb/internal/domain"
	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/request"
	"github.com/aadb-project/aadb/internal/logger"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ParseFormat validates an export format; empty means JSON.
func ParseFormat(s string) (string, error) {
	switch s {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", domain.NewInvalid("unsupported export format %q", s)
	}
}

// Export writes every record matching req in ranked order, capped at the export limit.
// It returns the number of rows written.
func (s *Service) Export(ctx context.Context, w io.Writer, format string, req request.List) (int, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return 0, err
	}
	recs, total, err := s.ranker.Ranked(ctx, req, s.exportMaxRows)
	if err != nil {
		return 0, fmt.Errorf("rank records: %w", err)
	}
	if total > len(recs) {
		logger.FromContext(ctx).Warn("export truncated",
			zap.Int("matched", total),
			zap.Int("exported", len(recs)),
		)
	}

	switch format {
	case FormatCSV:
		err = s.writeCSV(w, recs)
	default:
		err = writeJSON(w, recs)
	}
	if err != nil {
		return 0, fmt.Errorf("write %s export: %w", format, err)
	}
	return len(recs), nil
}

func writeJSON(w io.Writer, recs []*domrec.Record) error {
	if recs == nil {
		recs = []*domrec.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(recs) //nolint:wrapcheck // wrapped by Export
}

func (s *Service) writeCSV(w io.Writer, recs []*domrec.Record) error {
	names := s.reg.Names()
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(names)+2)
	header = append(header, "id")
	header = append(header, names...)
	header = append(header, "priority")
	if err := cw.Write(header); err != nil {
		return err //nolint:wrapcheck // wrapped by Export
	}

	row := make([]string, len(header))
	for _, r := range recs {
		row[0] = r.ID
		for i, name := range names {
			row[i+1] = r.FieldValue(name)
		}
		row[len(row)-1] = r.Priority.String()
		if err := cw.Write(row); err != nil {
			return err //nolint:wrapcheck // wrapped by Export
		}
	}
	cw.Flush()
	return cw.Error() //nolint:wrapcheck // wrapped by Export
}
