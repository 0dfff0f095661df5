package dataprep

import "github.com/go-gota/gota/dataframe"

// HasColumn reports whether df has a column with the given name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// DropColumn removes the named column. It is a no-op when the column is absent.
func DropColumn(df dataframe.DataFrame, name string) dataframe.DataFrame {
	if !HasColumn(df, name) {
		return df
	}
	return df.Drop(name)
}
