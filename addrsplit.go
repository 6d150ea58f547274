// Package addrsplit splits human-typed email addresses and URLs into
// their component parts.
//
// Email addresses are split into username, plus address, mail server
// and domain. URLs are split into scheme, subdomain, second level domain,
// top level domain, port, path, query and fragment, using a set of known
// top level domains (TLDs) to decide where the host ends.
package addrsplit

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyInput is returned for an empty input string.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidEmail is returned when an email address does not contain exactly one '@'.
	ErrInvalidEmail = errors.New("email address must contain exactly one '@'")
	// ErrTooManyDomainLabels is returned when the part of an email address
	// after '@' has more than 3 labels.
	ErrTooManyDomainLabels = errors.New("too many labels after '@'")
	// ErrUnsupportedScheme is returned when a URL scheme is neither http nor https.
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	// ErrNoResults is returned by batch operations when no input could be parsed.
	ErrNoResults = errors.New("no parsable inputs")
)

// Record is a parsed EmailRecord or URLRecord.
type Record interface {
	// Key returns the original, unmodified input the record was parsed from.
	Key() string
	// Columns returns the names of the input column followed by the record fields.
	Columns() []string
	// Values returns the input followed by the record fields, in Columns order.
	Values() []string
}

// EmailRecord contains components extracted from an email address.
type EmailRecord struct {
	Input       string `json:"-"`
	Username    string `json:"username"`
	PlusAddress string `json:"plus_address"`
	MailServer  string `json:"mail_server"`
	Domain      string `json:"domain"`
}

var emailColumns = []string{"email", "username", "plus_address", "mail_server", "domain"}

// Key returns the email address r was parsed from.
func (r EmailRecord) Key() string { return r.Input }

// Columns returns the CSV header of email records.
func (r EmailRecord) Columns() []string {
	return append([]string(nil), emailColumns...)
}

// Values returns the email address followed by its components.
func (r EmailRecord) Values() []string {
	return []string{r.Input, r.Username, r.PlusAddress, r.MailServer, r.Domain}
}

// URLRecord contains components extracted from a URL.
//
// A URLRecord with an empty TopLevelDomain has every other component
// empty too. It is returned for inputs shaped like a URL whose host
// matches no known TLD.
type URLRecord struct {
	Input             string `json:"-"`
	Scheme            string `json:"scheme"`
	SubDomain         string `json:"subdomain"`
	SecondLevelDomain string `json:"second_level_domain"`
	TopLevelDomain    string `json:"top_level_domain"`
	Port              string `json:"port"`
	Path              string `json:"path"`
	Query             string `json:"query"`
	Fragment          string `json:"fragment"`
}

var urlColumns = []string{"url", "scheme", "subdomain", "second_level_domain",
	"top_level_domain", "port", "path", "query", "fragment"}

// Key returns the URL r was parsed from.
func (r URLRecord) Key() string { return r.Input }

// Columns returns the CSV header of URL records.
func (r URLRecord) Columns() []string {
	return append([]string(nil), urlColumns...)
}

// Values returns the URL followed by its components.
func (r URLRecord) Values() []string {
	return []string{r.Input, r.Scheme, r.SubDomain, r.SecondLevelDomain,
		r.TopLevelDomain, r.Port, r.Path, r.Query, r.Fragment}
}

// IsEmpty reports whether no TLD was recognized in r.Input.
func (r URLRecord) IsEmpty() bool {
	return len(r.TopLevelDomain) == 0
}

// String reassembles the components of r into a URL.
//
// The port is only written when it differs from the scheme's default port.
func (r URLRecord) String() string {
	if r.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	if len(r.Scheme) != 0 {
		sb.WriteString(r.Scheme)
		sb.WriteString("://")
	}
	for _, label := range []string{r.SubDomain, r.SecondLevelDomain} {
		if len(label) != 0 {
			sb.WriteString(label)
			sb.WriteByte('.')
		}
	}
	sb.WriteString(r.TopLevelDomain)
	if len(r.Port) != 0 && r.Port != schemePorts[r.Scheme] {
		sb.WriteByte(':')
		sb.WriteString(r.Port)
	}
	if len(r.Path) != 0 || len(r.Query) != 0 || len(r.Fragment) != 0 {
		sb.WriteByte('/')
		sb.WriteString(r.Path)
	}
	if len(r.Query) != 0 {
		sb.WriteByte('?')
		sb.WriteString(r.Query)
	}
	if len(r.Fragment) != 0 {
		sb.WriteByte('#')
		sb.WriteString(r.Fragment)
	}
	return sb.String()
}
