package addrsplit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/creasty/defaults"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"golang.org/x/net/idna"
)

// IANATLDSource is the list of top level domains published by IANA.
const IANATLDSource string = "https://data.iana.org/TLD/tlds-alpha-by-domain.txt"

const tldFileTimeLayout string = "02 January 2006 15:04"

// Lines before the first TLD in a local TLD file.
const tldFileHeaderLines int = 4

var (
	// ErrEmptyTLDList is returned when a TLD list contains no TLDs.
	ErrEmptyTLDList = errors.New("TLD list contains no TLDs")
	// ErrMalformedTLDFile is returned when a local TLD file has an incomplete header.
	ErrMalformedTLDFile = errors.New("malformed TLD file")
	// ErrFallbackTLDSet is returned by LoadTLDSet together with DefaultTLDSet()
	// when no TLD list could be retrieved.
	ErrFallbackTLDSet = errors.New("using fallback TLD list")
)

// TLDSourceParams specifies where LoadTLDSet retrieves TLDs from.
type TLDSourceParams struct {
	// CacheFilePath is the local TLD file. Leave empty to disable caching.
	CacheFilePath string `yaml:"cacheFilePath"`
	// Sources are tried in order until one of them can be downloaded.
	Sources []string `yaml:"sources" default:"[\"https://data.iana.org/TLD/tlds-alpha-by-domain.txt\"]"`
	// Timeout of each download attempt.
	Timeout time.Duration `yaml:"timeout" default:"10s"`
	// Attempts per source.
	Attempts uint `yaml:"attempts" default:"3"`
	// Cooldown between attempts.
	Cooldown time.Duration `yaml:"cooldown" default:"500ms"`
	// MaxAge is how old the local TLD file may be before it is refreshed.
	MaxAge time.Duration `yaml:"maxAge" default:"72h"`
	// Offline disables downloads.
	Offline bool `yaml:"offline"`

	Fs     afero.Fs     `yaml:"-"`
	Client *http.Client `yaml:"-"`
}

// LoadTLDSet retrieves a TLDSet, trying in order
//
//   - the local TLD file, if it is younger than MaxAge
//   - each of the Sources, saving the first list downloaded to the local TLD file
//   - the local TLD file, regardless of age
//
// If all of them fail, DefaultTLDSet() is returned with an error that
// wraps ErrFallbackTLDSet and every failure encountered.
//
// The returned TLDSet is never nil.
func LoadTLDSet(ctx context.Context, params TLDSourceParams) (*TLDSet, error) {
	if err := defaults.Set(&params); err != nil {
		return DefaultTLDSet(), err
	}
	if params.Fs == nil {
		params.Fs = afero.NewOsFs()
	}
	if params.Client == nil {
		params.Client = &http.Client{Timeout: params.Timeout}
	}
	log := PrefixedLog("tld")

	var errs *multierror.Error
	var triedCache bool

	if len(params.CacheFilePath) != 0 {
		if info, err := params.Fs.Stat(params.CacheFilePath); err == nil && fileAge(info) < params.MaxAge {
			triedCache = true
			set, err := ReadTLDFile(params.Fs, params.CacheFilePath)
			if err == nil {
				log.WithField("path", params.CacheFilePath).Debug("using cached TLD list")
				return set, nil
			}
			errs = multierror.Append(errs, err)
		}
	}

	if !params.Offline {
		for _, source := range params.Sources {
			set, err := fetchWithRetry(ctx, params, source)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", source, err))
				continue
			}
			log.WithField("source", source).Info("TLD list updated")
			if len(params.CacheFilePath) != 0 {
				if err := WriteTLDFile(params.Fs, params.CacheFilePath, set, time.Now()); err != nil {
					log.Warnf("can't write TLD file: %s", err)
				}
			}
			return set, nil
		}
	}

	if len(params.CacheFilePath) != 0 && !triedCache {
		log.WithField("path", params.CacheFilePath).Info("retrieving locally stored TLDs")
		set, err := ReadTLDFile(params.Fs, params.CacheFilePath)
		if err == nil {
			return set, nil
		}
		errs = multierror.Append(errs, err)
	}

	log.Warn("using fallback TLD list")
	errs = multierror.Append(errs, ErrFallbackTLDSet)
	return DefaultTLDSet(), errs.ErrorOrNil()
}

// FetchTLDSet downloads and parses a TLD list in IANA format from source.
func FetchTLDSet(ctx context.Context, client *http.Client, source string) (*TLDSet, error) {
	body, err := downloadFile(ctx, client, source)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return parseTLDList(body)
}

func fetchWithRetry(ctx context.Context, params TLDSourceParams, source string) (*TLDSet, error) {
	var set *TLDSet
	err := retry.Do(
		func() error {
			body, err := downloadFile(ctx, params.Client, source)
			if err != nil {
				return err
			}
			defer body.Close()
			if set, err = parseTLDList(body); err != nil {
				// a bad list will not get any better by downloading it again
				return retry.Unrecoverable(err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(params.Attempts),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(params.Cooldown),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			PrefixedLog("tld").WithField("source", source).
				WithField("attempt", fmt.Sprintf("%d/%d", n+1, params.Attempts)).
				Warnf("can't download TLD list: %s", err)
		}))
	return set, err
}

// downloadFile downloads the file at url
func downloadFile(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download failed, HTTP status code : %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// parseTLDList parses a TLD list in IANA format: an optional
// "# Version ..." line followed by one TLD per line.
func parseTLDList(r io.Reader) (*TLDSet, error) {
	var version string
	var labels []string

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)
	for first := true; scanner.Scan(); first = false {
		line := strings.TrimSpace(scanner.Text())
		if first && strings.HasPrefix(line, "#") {
			version = line
			continue
		}
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		labels = appendLabel(labels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, ErrEmptyTLDList
	}
	return NewTLDSet(version, labels), nil
}

// appendLabel appends the lowercase punycode form of label to labels,
// followed by its Unicode form if that is different.
func appendLabel(labels []string, label string) []string {
	label = strings.ToLower(label)
	asPunyCode, err := idna.ToASCII(label)
	if err != nil {
		// skip label if unable to convert to ascii
		PrefixedLog("tld").WithField("label", label).Warnf("skipping TLD: %s", err)
		return labels
	}
	labels = append(labels, asPunyCode)
	if asPunyCode != label {
		labels = append(labels, label)
	}
	return labels
}

// ReadTLDFile reads a local TLD file written by WriteTLDFile.
//
// The version of the returned TLDSet is "<version>, <date>", taken
// from the second and third line of the file.
func ReadTLDFile(fsys afero.Fs, path string) (*TLDSet, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) < tldFileHeaderLines {
		return nil, fmt.Errorf("%s: %w", path, ErrMalformedTLDFile)
	}
	version := strings.TrimSpace(lines[1])
	if dated := strings.TrimSpace(lines[2]); len(dated) != 0 {
		version += ", " + dated
	}
	var labels []string
	for _, line := range lines[tldFileHeaderLines:] {
		if line = strings.TrimSpace(line); len(line) != 0 {
			labels = appendLabel(labels, line)
		}
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyTLDList)
	}
	return NewTLDSet(version, labels), nil
}

// WriteTLDFile writes set to a local TLD file at path.
//
// The file starts with its creation time, the version of set split at
// its first comma into two lines, and a blank line. The TLDs follow,
// one per line.
func WriteTLDFile(fsys afero.Fs, path string, set *TLDSet, created time.Time) error {
	version, dated, _ := strings.Cut(set.Version(), ",")

	var sb strings.Builder
	sb.WriteString("File Created: ")
	sb.WriteString(created.Format(tldFileTimeLayout))
	sb.WriteString("\n")
	sb.WriteString(version)
	sb.WriteString("\n")
	sb.WriteString(dated)
	sb.WriteString("\n\n")
	for _, label := range set.Labels() {
		sb.WriteString(label)
		sb.WriteString("\n")
	}
	return afero.WriteFile(fsys, path, []byte(sb.String()), 0644)
}

// Time elapsed since last modified time of fileinfo.
func fileAge(fileinfo fs.FileInfo) time.Duration {
	return time.Since(fileinfo.ModTime())
}
