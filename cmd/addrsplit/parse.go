package main

import (
	"errors"
	"fmt"
	"io"

	addrsplit "github.com/elliotwutingfeng/go-addrsplit"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatCSV  = "csv"
)

var (
	errNoInputs       = errors.New("no inputs, pass them as arguments or with --input-file")
	errTextFileOutput = errors.New("--output requires --format json or csv")
)

// parseOptions are the flags shared by the email and url commands
type parseOptions struct {
	inputFile string
	delimiter string
	format    string
	compact   bool
	output    string
	workers   int
}

func addParseFlags(c *cobra.Command, o *parseOptions) {
	c.Flags().StringVarP(&o.inputFile, "input-file", "i", "",
		"read inputs from file (.txt, .csv, .zip, .gz, .bz2, .xz, .lzma)")
	c.Flags().StringVarP(&o.delimiter, "delimiter", "d", addrsplit.DefaultDelimiter, "input file delimiter")
	c.Flags().StringVarP(&o.format, "format", "f", formatText, "output format (text, json, csv)")
	c.Flags().BoolVar(&o.compact, "compact", false, "don't indent JSON output")
	c.Flags().StringVarP(&o.output, "output", "o", "", "write results to <output>.json or <output>.csv")
	c.Flags().IntVarP(&o.workers, "workers", "w", 1, "number of inputs parsed at a time, 0 for one per CPU")
}

func (o *parseOptions) validate() error {
	switch o.format {
	case formatText:
		if len(o.output) != 0 {
			return errTextFileOutput
		}
	case formatJSON, formatCSV:
	default:
		return fmt.Errorf("format should be '%s', '%s' or '%s', got '%s'", formatText, formatJSON, formatCSV, o.format)
	}
	return nil
}

func (o *parseOptions) concurrent() bool {
	return o.workers != 1
}

// readInputs returns args followed by the inputs read from the input file
func (a *app) readInputs(args []string, o *parseOptions) ([]string, error) {
	inputs := append([]string(nil), args...)
	if len(o.inputFile) != 0 {
		fromFile, err := addrsplit.ReadInputFile(a.fs, o.inputFile, o.delimiter)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, fromFile...)
	}
	if len(inputs) == 0 {
		return nil, errNoInputs
	}
	return inputs, nil
}

// render writes results to the output file, or to the standard output of cmd
func render[T addrsplit.Record](a *app, cmd *cobra.Command, o *parseOptions,
	results *addrsplit.Results[T], printRecord func(io.Writer, T)) error {
	if len(o.output) != 0 {
		var name string
		var err error
		if o.format == formatCSV {
			name, err = addrsplit.WriteCSVFile(a.fs, o.output, results)
		} else {
			name, err = addrsplit.WriteJSONFile(a.fs, o.output, results, !o.compact)
		}
		if err != nil {
			return fmt.Errorf("can't write results: %w", err)
		}
		addrsplit.PrefixedLog("cli").WithField("path", name).Infof("%d results written", results.Len())
		return nil
	}

	out := cmd.OutOrStdout()
	switch o.format {
	case formatJSON:
		s, err := addrsplit.ToJSON(results, !o.compact)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	case formatCSV:
		s, err := addrsplit.ToCSV(results)
		if err != nil {
			return err
		}
		fmt.Fprint(out, s)
	default:
		for _, rec := range results.Records() {
			printRecord(out, rec)
		}
	}
	return nil
}
