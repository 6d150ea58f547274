package addrsplit

import (
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// DefaultDelimiter separates inputs in input files.
const DefaultDelimiter string = "\n"

var (
	// ErrNoTextMembers is returned when a zip archive has no .txt, .csv or .log member.
	ErrNoTextMembers = errors.New("no supported text files found in zip archive")
	// ErrInvalidUTF8 is returned when input is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")
)

// Extensions of zip archive members that are read as inputs.
var zipTextExtensions = []string{".txt", ".csv", ".log"}

// ReadInputFile reads inputs separated by delimiter from the file name in fsys.
//
// Files ending in .gz, .bz2, .xz and .lzma are decompressed. For .zip
// archives, every member ending in .txt, .csv or .log is read; members
// that cannot be read are skipped.
//
// Inputs are trimmed of whitespace, and empty inputs are dropped.
// If delimiter is empty, DefaultDelimiter is used.
func ReadInputFile(fsys afero.Fs, name string, delimiter string) ([]string, error) {
	if len(delimiter) == 0 {
		delimiter = DefaultDelimiter
	}

	file, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip":
		return readZipInput(file, delimiter)
	case ".gz":
		gr, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		defer gr.Close()
		r = gr
	case ".bz2":
		r = bzip2.NewReader(file)
	case ".xz":
		if r, err = xz.NewReader(file); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	case ".lzma":
		if r, err = lzma.NewReader(file); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	inputs, err := readInputs(r, delimiter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return inputs, nil
}

func readInputs(r io.Reader, delimiter string) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	return splitNonEmpty(string(data), delimiter), nil
}

func readZipInput(file afero.File, delimiter string) ([]string, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	archive, err := zip.NewReader(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name(), err)
	}

	log := PrefixedLog("input")
	var hasTextMembers bool
	var inputs []string
	for _, member := range archive.File {
		if !isTextMember(member.Name) {
			continue
		}
		hasTextMembers = true
		memberInputs, err := readZipMember(member, delimiter)
		if err != nil {
			log.WithField("member", member.Name).Warnf("can't read file in archive: %s", err)
			continue
		}
		inputs = append(inputs, memberInputs...)
	}
	if !hasTextMembers {
		return nil, fmt.Errorf("%s: %w", file.Name(), ErrNoTextMembers)
	}
	return inputs, nil
}

func readZipMember(member *zip.File, delimiter string) ([]string, error) {
	rc, err := member.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return readInputs(rc, delimiter)
}

func isTextMember(name string) bool {
	for _, ext := range zipTextExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
