// Package ingest reads opening records from the CSV dataset.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/openings/internal/domain/eco"
	"github.com/okian/openings/internal/domain/model"
	"github.com/okian/openings/pkg/logger"
	"github.com/okian/openings/pkg/metrics"
)

// Loader turns dataset rows into records.
type Loader struct {
	columns   Columns
	hasHeader bool
	logger    logger.Logger
}

// NewLoader creates a loader with the default column layout.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		columns:   DefaultColumns(),
		hasHeader: true,
		logger:    logger.GetOrNop().Named("ingest"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads every record of the dataset at path.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]model.Opening, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrDatasetNotFound, path, err)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := l.Load(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Load reads every record from r. Rows with an unknown color or a malformed
// ECO code are dropped. Any other malformed row fails the whole load.
func (l *Loader) Load(ctx context.Context, r io.Reader) ([]model.Opening, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	row := 0
	if l.hasHeader {
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: header: %w", ErrParse, err)
		}
		row++
	}

	var (
		out     []model.Opening
		dropped int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrParse, row, err)
		}
		metrics.RecordRowRead()

		rec, reason, err := l.parseRow(row, fields)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			dropped++
			metrics.RecordRowDropped(reason)
			l.logger.Debug(ctx, "row dropped",
				logger.Int("row", row),
				logger.String("reason", reason),
			)
			continue
		}
		out = append(out, rec)
	}

	l.logger.Info(ctx, "dataset loaded",
		logger.Int("records", len(out)),
		logger.Int("dropped", dropped),
	)
	return out, nil
}

// parseRow builds a record from fields. A non-empty reason means the row is
// dropped rather than failed.
func (l *Loader) parseRow(row int, fields []string) (model.Opening, string, error) {
	c := l.columns
	if len(fields) < c.width() {
		return model.Opening{}, "", fmt.Errorf("%w: row %d: %d fields, need %d", ErrParse, row, len(fields), c.width())
	}

	color := model.ParseColor(fields[c.Color])
	if color == model.ColorUnknown {
		return model.Opening{}, DropReasonColor, nil
	}
	code, err := eco.Parse(strings.TrimSpace(fields[c.ECO]))
	if err != nil {
		return model.Opening{}, DropReasonECO, nil
	}

	games, err := parseInt(row, c.NumGames, fields)
	if err != nil {
		return model.Opening{}, "", err
	}
	rating, err := parseInt(row, c.AvgRating, fields)
	if err != nil {
		return model.Opening{}, "", err
	}
	win, err := strconv.ParseFloat(strings.TrimSpace(fields[c.WinPercent]), 64)
	if err != nil {
		return model.Opening{}, "", fmt.Errorf("%w: row %d column %d: %w", ErrParse, row, c.WinPercent, err)
	}

	return model.Opening{
		Name:       strings.ReplaceAll(fields[c.Name], `"`, ""),
		Color:      color,
		ECO:        code,
		NumGames:   games,
		AvgRating:  rating,
		WinPercent: win,
		Moves:      ParseMoves(fields[c.Moves]),
	}, "", nil
}

func parseInt(row, col int, fields []string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(fields[col]))
	if err != nil {
		return 0, fmt.Errorf("%w: row %d column %d: %w", ErrParse, row, col, err)
	}
	return v, nil
}

// ParseMoves splits a serialized move list such as "['1.e4', 'e5']" into its
// tokens. An empty list has no moves.
func ParseMoves(s string) []string {
	s = strings.NewReplacer(`"`, "", "[", "", "]", "", "'", "").Replace(s)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ", ")
}
