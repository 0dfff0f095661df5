package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingInputExitsCleanly(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "shopping.csv")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--input", missing})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "❌ File not found. Please make sure '"+missing+"' is in the same folder.")
}

func TestRunsPipeline(t *testing.T) {
	var b strings.Builder
	b.WriteString("Customer ID,Age,Gender,Item Purchased,Category,Location,Size,Color,Season," +
		"Subscription Status,Shipping Type,Discount Applied,Promo Code Used,Payment Method,Frequency of Purchases\n")
	cats := []string{"Clothing", "Footwear"}
	for i := range 30 {
		c := i % 2
		fmt.Fprintf(&b, "%d,%d,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			i+1, 20+c, []string{"Male", "Female"}[c], []string{"Shirt", "Boots"}[c], cats[c],
			[]string{"Iowa", "Utah"}[c], []string{"M", "L"}[c], []string{"Red", "Blue"}[c],
			[]string{"Fall", "Spring"}[c], []string{"Yes", "No"}[c], []string{"Express", "Standard"}[c],
			[]string{"Yes", "No"}[c], []string{"No", "Yes"}[c], []string{"Cash", "PayPal"}[c],
			[]string{"Weekly", "Annually"}[c])
	}
	path := filepath.Join(t.TempDir(), "shopping.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--input", path, "--trees", "5", "--top", "3"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "🎯 Model Accuracy: 100.00%")
	assert.Contains(t, out.String(), "--- Feature Importance ---")
}

func TestInvalidConfig(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"--test-size", "1.5"})
	require.Error(t, cmd.Execute())
}
