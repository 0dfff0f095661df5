package dataprep

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelEncoderSortedDenseCodes(t *testing.T) {
	values := []string{"Small", "Medium", "Large", "Medium", "Small"}
	enc := NewLabelEncoder("Size")

	codes, err := enc.FitTransform(values)
	require.NoError(t, err)
	assert.Equal(t, []string{"Large", "Medium", "Small"}, enc.Classes())
	assert.Equal(t, []int{2, 1, 0, 1, 2}, codes)
	assert.Equal(t, 3, enc.Len())

	// every code decodes to the value it came from
	for i, c := range codes {
		got, err := enc.Inverse(c)
		require.NoError(t, err)
		assert.Equal(t, values[i], got)
	}
	// codes are 0..n-1 with no gaps
	all, err := enc.Transform(enc.Classes())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, all)
}

func TestLabelEncoderErrors(t *testing.T) {
	enc := NewLabelEncoder("Color")
	require.Error(t, enc.Fit(nil))

	require.NoError(t, enc.Fit([]string{"Red", "Blue"}))
	_, err := enc.Transform([]string{"Red", "Green"})
	require.ErrorIs(t, err, ErrUnseenCategory)

	_, err = enc.Inverse(2)
	require.ErrorIs(t, err, ErrUnknownCode)
	_, err = enc.Inverse(-1)
	require.ErrorIs(t, err, ErrUnknownCode)
}

func TestClassesReturnsCopy(t *testing.T) {
	enc := NewLabelEncoder("Season")
	require.NoError(t, enc.Fit([]string{"Winter", "Fall"}))
	c := enc.Classes()
	c[0] = "changed"
	assert.Equal(t, []string{"Fall", "Winter"}, enc.Classes())
}

func frame() dataframe.DataFrame {
	return dataframe.New(
		series.New([]int{101, 102, 103}, series.Int, "Customer ID"),
		series.New([]string{"Male", "Female", "Male"}, series.String, "Gender"),
		series.New([]int{20, 30, 40}, series.Int, "Age"),
		series.New([]string{"Yes", "No", "No"}, series.String, "Promo Code Used"),
		series.New([]string{"Clothing", "Footwear", "Clothing"}, series.String, "Category"),
	)
}

func TestEncodeColumns(t *testing.T) {
	df, table, err := EncodeColumns(frame(), []string{"Gender", "Promo Code Used"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Gender", "Promo Code Used"}, table.Columns)
	assert.Equal(t, series.Int, df.Col("Gender").Type())
	gender, err := df.Col("Gender").Int()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, gender)

	promo, err := df.Col("Promo Code Used").Int()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0}, promo)

	enc, ok := table.Get("Gender")
	require.True(t, ok)
	assert.Equal(t, []string{"Female", "Male"}, enc.Classes())

	// column order is preserved
	assert.Equal(t, []string{"Customer ID", "Gender", "Age", "Promo Code Used", "Category"}, df.Names())
}

func TestEncodeColumnsMissing(t *testing.T) {
	_, _, err := EncodeColumns(frame(), []string{"Gender", "Location"})
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestDropColumn(t *testing.T) {
	df := DropColumn(frame(), "Customer ID")
	assert.False(t, HasColumn(df, "Customer ID"))
	assert.Equal(t, 4, df.Ncol())

	same := DropColumn(df, "Customer ID")
	assert.Equal(t, df.Names(), same.Names())
}
