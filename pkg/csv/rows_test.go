package csv

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowScanner(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  ReaderOptions
		want  [][]string
	}{
		{
			name:  "simple rows",
			input: "a,b,c\n1,2,3",
			want:  [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:  "trailing separator adds no row",
			input: "a,b\n",
			want:  [][]string{{"a", "b"}},
		},
		{
			name:  "blank line is skipped but empty cells survive",
			input: "a,b\n\n,,\nc,d",
			want:  [][]string{{"a", "b"}, {"", "", ""}, {"c", "d"}},
		},
		{
			name:  "quoted multi-line cell",
			input: "a,\"b\nc\"\nd,e",
			want:  [][]string{{"a", "b\nc"}, {"d", "e"}},
		},
		{
			name:  "line range window",
			input: "a,b\nc,d\ne,f\ng,h",
			opts:  ReaderOptions{FromLine: 1, ToLine: 3},
			want:  [][]string{{"c", "d"}, {"e", "f"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner, err := NewRowScanner(strings.NewReader(tt.input), tt.opts)
			require.NoError(t, err)

			var rows [][]string
			for scanner.Scan() {
				rows = append(rows, scanner.Row())
			}
			require.NoError(t, scanner.Err())
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestRowScannerError(t *testing.T) {
	scanner, err := NewRowScanner(strings.NewReader("a,b\nc,\"d"), ReaderOptions{})
	require.NoError(t, err)

	var rows [][]string
	for scanner.Scan() {
		rows = append(rows, scanner.Row())
	}

	require.Error(t, scanner.Err())
	assert.True(t, errors.Is(scanner.Err(), ErrUnterminatedQuote))
	assert.Equal(t, [][]string{{"a", "b"}}, rows)
	assert.False(t, scanner.Scan())
}

func TestRowScannerRowsAreIndependent(t *testing.T) {
	scanner, err := NewRowScanner(strings.NewReader("a,b\nc,d"), ReaderOptions{})
	require.NoError(t, err)

	require.True(t, scanner.Scan())
	first := scanner.Row()
	require.True(t, scanner.Scan())
	second := scanner.Row()

	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, []string{"c", "d"}, second)
}

func TestRowScannerStats(t *testing.T) {
	opts := ReaderOptions{
		ReaderBufferSize:        1,
		InputBufferIndexLimit:   1,
		ColumnBufferMinStepSize: 1,
		ColumnBufferReserve:     1,
	}
	scanner, err := NewRowScanner(strings.NewReader("aaaa,bbbb\ncccc,dddd"), opts)
	require.NoError(t, err)

	for scanner.Scan() {
	}
	require.NoError(t, scanner.Err())

	stats := scanner.Stats()
	assert.Greater(t, stats.Reads, 0)
	assert.Greater(t, stats.InputBufferShrinks, 0)
	assert.Greater(t, stats.ColumnBufferExpands, 0)
}
