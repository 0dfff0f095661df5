package dataprep

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var (
	// ErrUnseenCategory is returned when transforming a value the encoder was not fitted on.
	ErrUnseenCategory = errors.New("dataprep: unseen category")
	// ErrUnknownCode is returned when decoding a code outside the fitted range.
	ErrUnknownCode = errors.New("dataprep: unknown code")
	// ErrMissingColumn is returned when a required column is absent from the frame.
	ErrMissingColumn = errors.New("dataprep: missing column")
)

// LabelEncoder maps the distinct values of one column to dense integer codes.
// Codes follow the sorted order of the observed values, starting at 0.
type LabelEncoder struct {
	Column  string
	classes []string
	index   map[string]int
}

// NewLabelEncoder returns an unfitted encoder for the named column.
func NewLabelEncoder(column string) *LabelEncoder {
	return &LabelEncoder{Column: column}
}

// Fit learns the code table from the observed values.
func (e *LabelEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("dataprep: fit %q: no values", e.Column)
	}
	seen := make(map[string]struct{}, len(values))
	classes := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			classes = append(classes, v)
		}
	}
	sort.Strings(classes)

	e.classes = classes
	e.index = make(map[string]int, len(classes))
	for i, c := range classes {
		e.index[c] = i
	}
	return nil
}

// Transform encodes values using the fitted table.
func (e *LabelEncoder) Transform(values []string) ([]int, error) {
	out := make([]int, len(values))
	for i, v := range values {
		code, ok := e.index[v]
		if !ok {
			return nil, fmt.Errorf("%w: %q in column %q", ErrUnseenCategory, v, e.Column)
		}
		out[i] = code
	}
	return out, nil
}

// FitTransform fits the encoder on values and returns their codes.
func (e *LabelEncoder) FitTransform(values []string) ([]int, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}

// Inverse returns the original value for a code.
func (e *LabelEncoder) Inverse(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("%w: %d in column %q", ErrUnknownCode, code, e.Column)
	}
	return e.classes[code], nil
}

// Classes returns the fitted values in code order.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

func (e *LabelEncoder) Len() int { return len(e.classes) }

// EncoderTable keeps one fitted encoder per categorical column.
type EncoderTable struct {
	Columns  []string
	Encoders map[string]*LabelEncoder
}

func newEncoderTable() *EncoderTable {
	return &EncoderTable{Encoders: map[string]*LabelEncoder{}}
}

func (t *EncoderTable) add(e *LabelEncoder) {
	t.Columns = append(t.Columns, e.Column)
	t.Encoders[e.Column] = e
}

// Get returns the encoder for a column.
func (t *EncoderTable) Get(column string) (*LabelEncoder, bool) {
	e, ok := t.Encoders[column]
	return e, ok
}

// EncodeColumns label-encodes each listed column in place and returns the fitted encoders.
func EncodeColumns(df dataframe.DataFrame, cols []string) (dataframe.DataFrame, *EncoderTable, error) {
	table := newEncoderTable()
	for _, col := range cols {
		if !HasColumn(df, col) {
			return df, nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
		enc := NewLabelEncoder(col)
		codes, err := enc.FitTransform(df.Col(col).Records())
		if err != nil {
			return df, nil, err
		}
		df = df.Mutate(series.New(codes, series.Int, col))
		if df.Err != nil {
			return df, nil, fmt.Errorf("dataprep: replace %q: %w", col, df.Err)
		}
		table.add(enc)
	}
	return df, table, nil
}
