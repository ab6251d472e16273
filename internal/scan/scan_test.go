package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelimiters(t *testing.T) {
	tests := []struct {
		name      string
		slice     string
		limit     int
		lineSep   string
		colSep    string
		quote     string
		wantIndex int
		wantHit   Hit
	}{
		{
			name:  "no delimiter before limit",
			slice: "abcdef", limit: 6,
			lineSep: "\n", colSep: ",", quote: `"`,
			wantIndex: 6, wantHit: HitLimit,
		},
		{
			name:  "column separator",
			slice: "abc,def", limit: 7,
			lineSep: "\n", colSep: ",", quote: `"`,
			wantIndex: 3, wantHit: HitColumn,
		},
		{
			name:  "line separator",
			slice: "ab\ncd", limit: 5,
			lineSep: "\n", colSep: ",", quote: `"`,
			wantIndex: 2, wantHit: HitLine,
		},
		{
			name:  "quote",
			slice: `ab"cd`, limit: 5,
			lineSep: "\n", colSep: ",", quote: `"`,
			wantIndex: 2, wantHit: HitQuote,
		},
		{
			name:  "delimiter at limit is not reported",
			slice: "abc,def", limit: 3,
			lineSep: "\n", colSep: ",", quote: `"`,
			wantIndex: 3, wantHit: HitLimit,
		},
		{
			name:  "limit clamped to slice length",
			slice: "ab", limit: 100,
			lineSep: "\n", colSep: ",", quote: `"`,
			wantIndex: 2, wantHit: HitLimit,
		},
		{
			name:  "long run exercises the SWAR fast path",
			slice: strings.Repeat("x", 40) + ",tail", limit: 45,
			lineSep: "\n", colSep: ",", quote: `"`,
			wantIndex: 40, wantHit: HitColumn,
		},
		{
			name:  "multi-byte line separator",
			slice: "ab\r\ncd", limit: 6,
			lineSep: "\r\n", colSep: "\t", quote: "$",
			wantIndex: 2, wantHit: HitLine,
		},
		{
			name:  "multi-byte match may extend past the limit",
			slice: "ab\r\ncd", limit: 3,
			lineSep: "\r\n", colSep: "\t", quote: "$",
			wantIndex: 2, wantHit: HitLine,
		},
		{
			name:  "multi-byte partial match is no match",
			slice: "ab\rcd", limit: 5,
			lineSep: "\r\n", colSep: "\t", quote: "$",
			wantIndex: 5, wantHit: HitLimit,
		},
		{
			name:  "multi-byte column separator",
			slice: "a::b", limit: 4,
			lineSep: ";;", colSep: "::", quote: "$",
			wantIndex: 1, wantHit: HitColumn,
		},
		{
			name:  "earliest of several",
			slice: "a,b\nc", limit: 5,
			lineSep: "\n", colSep: ",", quote: `"`,
			wantIndex: 1, wantHit: HitColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, hit := Delimiters([]byte(tt.slice), tt.limit, []byte(tt.lineSep), []byte(tt.colSep), []byte(tt.quote))
			assert.Equal(t, tt.wantIndex, index)
			assert.Equal(t, tt.wantHit, hit)
		})
	}
}

func TestQuoted(t *testing.T) {
	tests := []struct {
		name         string
		slice        string
		limit        int
		quote        string
		lineSep      string
		wantIndex    int
		wantNewLines int
		wantLastEnd  int
	}{
		{
			name:  "quote without newlines",
			slice: `abc"def`, limit: 7, quote: `"`, lineSep: "\n",
			wantIndex: 3, wantNewLines: 0, wantLastEnd: 0,
		},
		{
			name:  "no quote before limit",
			slice: "abcdef", limit: 6, quote: `"`, lineSep: "\n",
			wantIndex: 6, wantNewLines: 0, wantLastEnd: 0,
		},
		{
			name:  "newlines are counted",
			slice: "a\nb\nc\"d", limit: 7, quote: `"`, lineSep: "\n",
			wantIndex: 5, wantNewLines: 2, wantLastEnd: 4,
		},
		{
			name:  "newline after limit is not counted",
			slice: "ab\ncd", limit: 2, quote: `"`, lineSep: "\n",
			wantIndex: 2, wantNewLines: 0, wantLastEnd: 0,
		},
		{
			name:  "long run exercises the SWAR fast path",
			slice: strings.Repeat("x", 20) + "\n" + strings.Repeat("y", 20) + `"z`, limit: 43, quote: `"`, lineSep: "\n",
			wantIndex: 41, wantNewLines: 1, wantLastEnd: 21,
		},
		{
			name:  "multi-byte line separator",
			slice: "a\r\nb$c", limit: 6, quote: "$", lineSep: "\r\n",
			wantIndex: 4, wantNewLines: 1, wantLastEnd: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, newLines, lastEnd := Quoted([]byte(tt.slice), tt.limit, []byte(tt.quote), []byte(tt.lineSep))
			assert.Equal(t, tt.wantIndex, index)
			assert.Equal(t, tt.wantNewLines, newLines)
			assert.Equal(t, tt.wantLastEnd, lastEnd)
		})
	}
}

func TestLineSeparator(t *testing.T) {
	tests := []struct {
		name    string
		slice   string
		lineSep string
		want    int
	}{
		{name: "found", slice: "ab\ncd", lineSep: "\n", want: 2},
		{name: "not found", slice: "abcd", lineSep: "\n", want: -1},
		{name: "at start", slice: "\nabcd", lineSep: "\n", want: 0},
		{name: "empty slice", slice: "", lineSep: "\n", want: -1},
		{name: "long run exercises the SWAR fast path", slice: strings.Repeat("q", 33) + "\n", lineSep: "\n", want: 33},
		{name: "multi-byte found", slice: "ab\r\ncd", lineSep: "\r\n", want: 2},
		{name: "multi-byte partial at tail", slice: "abcd\r", lineSep: "\r\n", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineSeparator([]byte(tt.slice), []byte(tt.lineSep)))
		})
	}
}

func TestHitString(t *testing.T) {
	assert.Equal(t, "limit", HitLimit.String())
	assert.Equal(t, "line", HitLine.String())
	assert.Equal(t, "column", HitColumn.String())
	assert.Equal(t, "quote", HitQuote.String())
}
