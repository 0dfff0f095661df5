package data

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrFileNotFound is returned by LoadCSV when the input path does not exist.
var ErrFileNotFound = errors.New("data: file not found")

// LoadCSV reads a CSV file with a header row into a DataFrame.
// Columns named in stringCols are kept as text even if their values look numeric,
// every other column goes through gota's type detection.
func LoadCSV(path string, stringCols []string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return dataframe.DataFrame{}, fmt.Errorf("data: open %s: %w", path, err)
	}
	defer file.Close()

	df, err := Read(bufio.NewReader(file), stringCols)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("data: read %s: %w", path, err)
	}
	return df, nil
}

// Read parses CSV content from r. See LoadCSV.
func Read(r io.Reader, stringCols []string) (dataframe.DataFrame, error) {
	types := make(map[string]series.Type, len(stringCols))
	for _, c := range stringCols {
		types[c] = series.String
	}
	df := dataframe.ReadCSV(r, dataframe.HasHeader(true), dataframe.WithTypes(types))
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, errors.New("data: no data rows")
	}
	return df, nil
}
