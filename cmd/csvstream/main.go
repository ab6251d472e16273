// Command csvstream streams CSV files with configurable multi-byte
// delimiters, printing rows, header-keyed objects or parse statistics.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vslinko/csvstream/pkg/csv"
)

var log = logrus.New()

func main() {
	app := cli.NewApp()
	app.Name = "csvstream"
	app.Usage = "Stream CSV data with custom column, line and quote delimiters"
	app.Version = "1.0.0"
	app.Writer = os.Stdout
	app.Commands = []cli.Command{
		catCommand(),
		objectsCommand(),
		statsCommand(),
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// input opens the file named by the first argument, or stdin for "-" or
// no argument. The returned closer is a no-op for stdin.
func input(c *cli.Context) (io.Reader, func(), error) {
	name := c.Args().First()
	if name == "" || name == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func setupLogging(c *cli.Context) {
	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}
}

func catCommand() cli.Command {
	return cli.Command{
		Name:      "cat",
		Usage:     "Print every row, one JSON array per line",
		ArgsUsage: "[file]",
		Flags:     readerFlags(),
		Action: func(c *cli.Context) error {
			setupLogging(c)
			r, done, err := input(c)
			if err != nil {
				return err
			}
			defer done()

			scanner, err := csv.NewRowScanner(r, readerOptions(c))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			for scanner.Scan() {
				if err := enc.Encode(scanner.Row()); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
}

func objectsCommand() cli.Command {
	return cli.Command{
		Name:      "objects",
		Usage:     "Treat the first row as a header and print one JSON object per row",
		ArgsUsage: "[file]",
		Flags:     readerFlags(),
		Action: func(c *cli.Context) error {
			setupLogging(c)
			r, done, err := input(c)
			if err != nil {
				return err
			}
			defer done()

			scanner, err := csv.NewObjectScanner(r, readerOptions(c))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			for scanner.Scan() {
				if err := enc.Encode(scanner.Object()); err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}
			log.WithField("headers", scanner.Headers()).Debug("stream finished")
			return nil
		},
	}
}

func statsCommand() cli.Command {
	return cli.Command{
		Name:      "stats",
		Usage:     "Count rows and cells and report parser buffer activity",
		ArgsUsage: "[file]",
		Flags:     readerFlags(),
		Action: func(c *cli.Context) error {
			setupLogging(c)
			r, done, err := input(c)
			if err != nil {
				return err
			}
			defer done()

			scanner, err := csv.NewRowScanner(r, readerOptions(c))
			if err != nil {
				return err
			}
			rows, cells := 0, 0
			for scanner.Scan() {
				rows++
				cells += len(scanner.Row())
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			stats := scanner.Stats()
			log.WithFields(logrus.Fields{
				"reads":   stats.Reads,
				"shrinks": stats.InputBufferShrinks,
				"expands": stats.ColumnBufferExpands,
			}).Debug("parser buffer activity")

			fmt.Fprintf(os.Stdout, "rows\t%d\ncells\t%d\nreads\t%d\ninput buffer shrinks\t%d\ncolumn buffer expands\t%d\n",
				rows, cells, stats.Reads, stats.InputBufferShrinks, stats.ColumnBufferExpands)
			return nil
		},
	}
}
