package addrsplit

import (
	"bytes"
	"encoding/csv"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/afero"
)

const jsonIndent string = "    "

// ToJSON returns a JSON object mapping each input of results
// to its record, in input order.
//
// If prettify is true, the object is indented by 4 spaces per level.
func ToJSON[T Record](results *Results[T], prettify bool) (string, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, results, prettify); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToCSV returns results as CSV, starting with a header row.
func ToCSV[T Record](results *Results[T]) (string, error) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, results); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteJSONFile writes ToJSON(results, prettify) to baseName + ".json" in fsys
// and returns the name of the file written.
func WriteJSONFile[T Record](fsys afero.Fs, baseName string, results *Results[T], prettify bool) (string, error) {
	if isEmpty(results) {
		return "", ErrNoResults
	}
	name := baseName + ".json"
	return name, writeFile(fsys, name, func(w io.Writer) error {
		return writeJSON(w, results, prettify)
	})
}

// WriteCSVFile writes ToCSV(results) to baseName + ".csv" in fsys
// and returns the name of the file written.
func WriteCSVFile[T Record](fsys afero.Fs, baseName string, results *Results[T]) (string, error) {
	if isEmpty(results) {
		return "", ErrNoResults
	}
	name := baseName + ".csv"
	return name, writeFile(fsys, name, func(w io.Writer) error {
		return writeCSV(w, results)
	})
}

func isEmpty[T Record](results *Results[T]) bool {
	return results == nil || results.Len() == 0
}

func writeFile(fsys afero.Fs, name string, write func(io.Writer) error) error {
	file, err := fsys.Create(name)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeJSON[T Record](w io.Writer, results *Results[T], prettify bool) error {
	if isEmpty(results) {
		return ErrNoResults
	}
	opening, separator, closing := "{", ", ", "}"
	indent := ""
	if prettify {
		opening, separator, closing = "{\n"+jsonIndent, ",\n"+jsonIndent, "\n}"
		indent = jsonIndent
	}

	var buf bytes.Buffer
	buf.WriteString(opening)
	for i, rec := range results.Records() {
		if i > 0 {
			buf.WriteString(separator)
		}
		key, err := encodeJSON(rec.Key(), "")
		if err != nil {
			return err
		}
		value, err := encodeJSON(rec, indent)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	buf.WriteString(closing)
	_, err := w.Write(buf.Bytes())
	return err
}

// encodeJSON encodes v without escaping HTML characters, so that queries
// like a=1&b=2 stay readable. Every line after the first is prefixed with
// indent, as v is nested one level inside the results object.
func encodeJSON(v interface{}, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if len(indent) != 0 {
		enc.SetIndent(indent, indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func writeCSV[T Record](w io.Writer, results *Results[T]) error {
	if isEmpty(results) {
		return ErrNoResults
	}
	var zero T
	cw := csv.NewWriter(w)
	if err := cw.Write(zero.Columns()); err != nil {
		return err
	}
	for _, rec := range results.Records() {
		if err := cw.Write(rec.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
