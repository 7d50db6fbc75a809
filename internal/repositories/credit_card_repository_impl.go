package repositories

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	domainerrors "cardfolio/internal/errors"
	"cardfolio/internal/schema"

	"github.com/google/uuid"
)

// StoreOptions tunes the sidecar lock.
type StoreOptions struct {
	LockTimeout time.Duration
	LockRetry   time.Duration
}

type creditCardRepository struct {
	path string
	lock *fileLock
}

// NewCreditCardRepository returns a store backed by the CSV file at path.
// The file does not need to exist yet.
func NewCreditCardRepository(path string, opts StoreOptions) CreditCardRepository {
	return &creditCardRepository{
		path: path,
		lock: newFileLock(path, opts.LockTimeout, opts.LockRetry),
	}
}

func (r *creditCardRepository) Load(ctx context.Context) (*RecordSet, error) {
	var data []byte
	err := r.lock.with(ctx, false, func() error {
		var err error
		data, err = readFileIfExists(r.path)
		return err
	})
	if err != nil {
		return nil, domainerrors.IO("read data file", err)
	}
	return r.parse(data)
}

func (r *creditCardRepository) Save(ctx context.Context, set *RecordSet) error {
	data, err := r.encode(set)
	if err != nil {
		return domainerrors.IO("encode data file", err)
	}
	err = r.lock.with(ctx, true, func() error {
		return writeFileAtomic(r.path, data, 0o644)
	})
	if err != nil {
		log.Printf("⚠️ Failed to save %s: %v", r.path, err)
		return domainerrors.IO("write data file", err)
	}
	return nil
}

func (r *creditCardRepository) Update(ctx context.Context, fn func(set *RecordSet) error) error {
	var fnErr error
	err := r.lock.with(ctx, true, func() error {
		data, err := readFileIfExists(r.path)
		if err != nil {
			return domainerrors.IO("read data file", err)
		}
		set, err := r.parse(data)
		if err != nil {
			return err
		}
		if fnErr = fn(set); fnErr != nil {
			return nil
		}
		out, err := r.encode(set)
		if err != nil {
			return domainerrors.IO("encode data file", err)
		}
		if err := writeFileAtomic(r.path, out, 0o644); err != nil {
			return domainerrors.IO("write data file", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return fnErr
}

func (r *creditCardRepository) Export(ctx context.Context, w io.Writer) error {
	var data []byte
	err := r.lock.with(ctx, false, func() error {
		var err error
		data, err = readFileIfExists(r.path)
		return err
	})
	if err != nil {
		return domainerrors.IO("read data file", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data, err = r.encode(&RecordSet{})
		if err != nil {
			return domainerrors.IO("encode data file", err)
		}
	}
	_, err = w.Write(data)
	return err
}

// parse never fails on bad cell values; those become warnings.
func (r *creditCardRepository) parse(data []byte) (*RecordSet, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	set := &RecordSet{}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		header []string
		rows   [][]string
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				set.Warnings = append(set.Warnings, Warning{Row: pe.StartLine, Column: "*", Value: pe.Err.Error()})
				continue
			}
			return nil, domainerrors.IO("parse data file", err)
		}
		if header == nil {
			header = rec
			continue
		}
		if blankRow(rec) {
			continue
		}
		rows = append(rows, rec)
	}

	cards, warnings := decodeRows(header, rows)
	set.Cards = cards
	set.Warnings = append(set.Warnings, warnings...)
	if len(set.Warnings) > 0 {
		log.Printf("⚠️ %s: %d unreadable value(s) replaced with defaults (first: %s)",
			r.path, len(set.Warnings), set.Warnings[0])
	}
	return set, nil
}

func (r *creditCardRepository) encode(set *RecordSet) ([]byte, error) {
	for i := range set.Cards {
		if set.Cards[i].ID == "" {
			set.Cards[i].ID = uuid.NewString()
		}
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(encodeRows(set.Cards)); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func blankRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Columns is the header row every saved file starts with.
func Columns() []string {
	return schema.Columns()
}
