package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driven"
)

// Ensure FeedbackLog implements the interface.
var _ driven.FeedbackLog = (*FeedbackLog)(nil)

// Header is the column row of the feedback file.
var Header = []string{"method", "query", "rating"}

// FeedbackLog is a CSV-backed feedback log.
type FeedbackLog struct {
	mu      sync.Mutex
	path    string
	records []domain.FeedbackRecord
	loaded  bool
}

// NewFeedbackLog creates a log stored at path. Nothing is read or
// written until first use.
func NewFeedbackLog(path string) *FeedbackLog {
	return &FeedbackLog{path: path}
}

// Load reads the file, creating it with just the header if absent.
func (l *FeedbackLog) Load(ctx context.Context) ([]domain.FeedbackRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.load(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(l.records), nil
}

// Append rewrites the file with record added. On error the file and the
// cached records are unchanged.
func (l *FeedbackLog) Append(ctx context.Context, record domain.FeedbackRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		if err := l.load(ctx); err != nil {
			return err
		}
	}

	next := append(slices.Clone(l.records), record)
	if err := l.write(next); err != nil {
		return err
	}
	l.records = next
	return nil
}

// Reset replaces the file with a header-only one.
func (l *FeedbackLog) Reset(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.write(nil); err != nil {
		return err
	}
	l.records = nil
	l.loaded = true
	return nil
}

// Path returns the file path.
func (l *FeedbackLog) Path() string {
	return l.path
}

// load reads the file into the cache (mu held).
func (l *FeedbackLog) load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := l.write(nil); err != nil {
			return err
		}
		l.records = nil
		l.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("open feedback log: %w", err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", l.path, err)
	}

	l.records = records
	l.loaded = true
	return nil
}

// write atomically replaces the file with records (mu held).
func (l *FeedbackLog) write(records []domain.FeedbackRecord) error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create feedback dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(l.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if err := Encode(tmp, records); err != nil {
		tmp.Close()
		return fmt.Errorf("write feedback log: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync feedback log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close feedback log: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		return fmt.Errorf("replace feedback log: %w", err)
	}
	return nil
}

// Encode writes the header followed by records.
func Encode(w io.Writer, records []domain.FeedbackRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Method.String(), r.Query, strconv.Itoa(r.Rating)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode parses a feedback file. A missing or wrong header, a row of the
// wrong width, an unknown method or a rating outside 1..5 is reported as
// domain.ErrMalformedInput. An empty input decodes to no records.
func Decode(r io.Reader) ([]domain.FeedbackRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", domain.ErrMalformedInput, err)
	}
	if !slices.Equal(trimAll(header), Header) {
		return nil, fmt.Errorf("%w: header %q, want %q", domain.ErrMalformedInput, header, Header)
	}

	var records []domain.FeedbackRecord
	for n := 1; ; n++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedInput, err)
		}

		rating, err := parseRating(row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: rating %q", domain.ErrMalformedInput, n, row[2])
		}
		rec := domain.FeedbackRecord{Method: domain.Method(row[0]), Query: row[1], Rating: rating}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", domain.ErrMalformedInput, n, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseRating accepts "4" and the float spelling "4.0".
func parseRating(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole number: %s", s)
	}
	return int(f), nil
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(strings.TrimPrefix(f, "\ufeff"))
	}
	return out
}
