package csv

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, input string, opts ReaderOptions) ([]Token, error) {
	t.Helper()
	scanner, err := NewTokenScanner(strings.NewReader(input), opts)
	require.NoError(t, err)

	var tokens []Token
	for scanner.Scan() {
		tokens = append(tokens, scanner.Token())
	}
	return tokens, scanner.Err()
}

func TestTokenScanner(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "cells and boundaries in input order",
			input: "a,b\n1,2",
			want: []Token{
				{Value: "a"}, {Value: "b"}, {NewLine: true},
				{Value: "1"}, {Value: "2"}, {NewLine: true},
			},
		},
		{
			name:  "final row is always closed",
			input: "a,b\n",
			want:  []Token{{Value: "a"}, {Value: "b"}, {NewLine: true}},
		},
		{
			name:  "empty cells are tokens",
			input: ",,",
			want:  []Token{{Value: ""}, {Value: ""}, {Value: ""}, {NewLine: true}},
		},
		{
			name:  "blank lines produce no tokens",
			input: "a\n\n\nb",
			want:  []Token{{Value: "a"}, {NewLine: true}, {Value: "b"}, {NewLine: true}},
		},
		{
			name:  "empty input produces no tokens",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := collectTokens(t, tt.input, ReaderOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tokens)
		})
	}
}

func TestTokenScannerError(t *testing.T) {
	scanner, err := NewTokenScanner(strings.NewReader("a,\"b"), ReaderOptions{})
	require.NoError(t, err)

	var tokens []Token
	for scanner.Scan() {
		tokens = append(tokens, scanner.Token())
	}

	require.Error(t, scanner.Err())
	assert.True(t, errors.Is(scanner.Err(), ErrUnterminatedQuote))
	// The first cell was delivered before the fault.
	assert.Equal(t, []Token{{Value: "a"}}, tokens)

	// Single-use: Scan stays false.
	assert.False(t, scanner.Scan())
}

func TestTokenScannerSingleUse(t *testing.T) {
	scanner, err := NewTokenScanner(strings.NewReader("a"), ReaderOptions{})
	require.NoError(t, err)

	for scanner.Scan() {
	}
	require.NoError(t, scanner.Err())
	assert.False(t, scanner.Scan())
	assert.False(t, scanner.Scan())
}
