package records

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/torii/internal/apperr"
	"github.com/starford/torii/internal/models"
)

//go:embed dataset.yaml
var defaultDataset []byte

// document is the on-disk layout of a dataset file. Records stay undecoded
// so one malformed entry cannot fail the whole file.
type document struct {
	Temples []yaml.Node `yaml:"temples"`
}

// position mirrors models.Coordinates with pointers, so a missing lat or
// lng is told apart from 0.
type position struct {
	Lat *float64 `yaml:"lat" json:"lat"`
	Lng *float64 `yaml:"lng" json:"lng"`
}

func (p position) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Lat, validation.NotNil),
		validation.Field(&p.Lng, validation.NotNil),
	)
}

// presence holds the parts of a record whose absence the decoded
// models.Temple cannot show.
type presence struct {
	Coordinates *position `yaml:"coordinates" json:"coordinates"`
}

// RecordError describes a record that was rejected at load time.
type RecordError struct {
	Index int // position in the source document
	Line  int // line of the record in the source document
	ID    int
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record #%d (id %d, line %d): %v", e.Index, e.ID, e.Line, e.Err)
}

func (e RecordError) Unwrap() error {
	return apperr.ErrInvalidRecord
}

// Load decodes a YAML dataset. Records that fail to decode or validate are
// dropped and reported; the returned store holds only valid records. An
// error is returned only when the document itself cannot be decoded.
func Load(data []byte) (*Store, []RecordError, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("records: decode: %w", err)
	}

	var (
		valid    = make([]models.Temple, 0, len(doc.Temples))
		rejected []RecordError
		seen     = make(map[int]struct{}, len(doc.Temples))
	)
	for i := range doc.Temples {
		node := &doc.Temples[i]
		t, err := decodeRecord(node)
		if err == nil {
			if _, dup := seen[t.ID]; dup {
				err = fmt.Errorf("duplicate id %d", t.ID)
			}
		}
		if err != nil {
			rejected = append(rejected, RecordError{Index: i, Line: node.Line, ID: t.ID, Err: err})
			continue
		}
		seen[t.ID] = struct{}{}
		valid = append(valid, t)
	}

	s := NewStore(valid)
	s.checksum = sum(data)
	return s, rejected, nil
}

// LoadFile reads and decodes the dataset at path. An empty path selects the
// bundled sample dataset. Any failure yields an empty store so the caller
// can keep serving a zero-result view.
func LoadFile(path string, logger *slog.Logger) *Store {
	data := defaultDataset
	source := "embedded"
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			logger.Warn("records: read failed", slog.String("path", path), slog.String("error", err.Error()))
			return Empty()
		}
		source = path
	}

	s, rejected, err := Load(data)
	if err != nil {
		logger.Warn("records: load failed", slog.String("source", source), slog.String("error", err.Error()))
		return Empty()
	}
	for _, re := range rejected {
		logger.Warn("records: rejected record",
			slog.String("source", source),
			slog.Int("index", re.Index),
			slog.Int("line", re.Line),
			slog.Int("id", re.ID),
			slog.String("error", re.Err.Error()))
	}
	logger.Info("records: loaded", slog.String("source", source), slog.Int("count", s.Len()))
	return s
}

// Default returns the bundled sample dataset.
func Default() *Store {
	s, _, err := Load(defaultDataset)
	if err != nil {
		panic(fmt.Sprintf("records: embedded dataset: %v", err))
	}
	return s
}

// decodeRecord decodes and validates one list entry. On failure the
// returned record carries whatever id could be read.
func decodeRecord(node *yaml.Node) (models.Temple, error) {
	var t models.Temple
	if err := node.Decode(&t); err != nil {
		return t, fmt.Errorf("decode: %w", err)
	}
	var p presence
	if err := node.Decode(&p); err != nil {
		return t, fmt.Errorf("decode: %w", err)
	}
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.Coordinates, validation.NotNil),
	); err != nil {
		return t, err
	}
	return t, Validate(&t)
}

// Validate checks a single record's fields.
func Validate(t *models.Temple) error {
	if err := validation.ValidateStruct(t,
		validation.Field(&t.ID, validation.Required, validation.Min(1)),
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Type, validation.Required, validation.In(models.TypeBuddhist, models.TypeShinto)),
		validation.Field(&t.Category, validation.Required,
			validation.In(models.CategoryFamous, models.CategoryBuddhist, models.CategoryShinto)),
	); err != nil {
		return err
	}
	c := &t.Coordinates
	return validation.ValidateStruct(c,
		validation.Field(&c.Lat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&c.Lng, validation.Min(-180.0), validation.Max(180.0)),
	)
}
