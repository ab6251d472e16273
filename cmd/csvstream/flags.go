package main

import (
	"strings"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vslinko/csvstream/pkg/csv"
)

// readerFlags returns the CLI flags shared by every subcommand that
// parses CSV input. Delimiter values accept the escape sequences \t,
// \r, \n and \\.
func readerFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "comma",
			Usage: "Column separator byte sequence",
			Value: ",",
		},
		cli.StringFlag{
			Name:  "line-sep",
			Usage: `Line separator byte sequence (e.g. \n or \r\n)`,
			Value: `\n`,
		},
		cli.StringFlag{
			Name:  "quote",
			Usage: "Quote byte sequence",
			Value: `"`,
		},
		cli.IntFlag{
			Name:  "from-line",
			Usage: "First line index to read (inclusive, counted from 0)",
		},
		cli.IntFlag{
			Name:  "to-line",
			Usage: "First line index not to read (0 = read to the end)",
		},
		cli.IntFlag{
			Name:  "buffer-size",
			Usage: "Chunk size in bytes requested from the input",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
}

// readerOptions builds csv.ReaderOptions from the command's flags.
func readerOptions(c *cli.Context) csv.ReaderOptions {
	return csv.ReaderOptions{
		ColumnSeparator:  unescape(c.String("comma")),
		LineSeparator:    unescape(c.String("line-sep")),
		Quote:            unescape(c.String("quote")),
		FromLine:         c.Int("from-line"),
		ToLine:           c.Int("to-line"),
		ReaderBufferSize: c.Int("buffer-size"),
	}
}

// unescape interprets the backslash escapes useful on a command line.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
