package addrsplit

import (
	"fmt"
	"strings"
)

// Default ports of supported schemes.
var schemePorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// authority contains the host components found by classifyAuthority
// and the '/'-separated segments after the top level domain.
type authority struct {
	subDomain, secondLevelDomain, topLevelDomain string
	tail                                         []string
}

// ParseURL splits a URL into scheme, subdomain, second level domain,
// top level domain, port, path, query and fragment.
//
// Matching is case-insensitive and every component is lowercased,
// but the returned record is keyed by the original input.
//
// An error is returned if input is empty or has a scheme other than
// http or https. If no TLD from tlds can be matched, an empty URLRecord
// carrying only the input is returned without error.
//
// If tlds is nil, DefaultTLDSet() is used.
func ParseURL(input string, tlds *TLDSet) (URLRecord, error) {
	if len(input) == 0 {
		return URLRecord{}, ErrEmptyInput
	}
	if tlds == nil {
		tlds = DefaultTLDSet()
	}

	lowered := strings.ToLower(input)
	netloc := lowered
	emptyRecord := URLRecord{Input: input}
	res := URLRecord{Input: input}

	// Extract URL scheme
	if scheme, rest, found := strings.Cut(netloc, "://"); found {
		port, ok := schemePorts[scheme]
		if !ok {
			return URLRecord{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
		}
		res.Scheme = scheme
		res.Port = port
		netloc = rest
	}

	// Extract Port, if any, from the host
	host, afterHost, _ := strings.Cut(netloc, "/")
	if hostname, port, found := strings.Cut(host, ":"); found {
		res.Port = port
		host = hostname
		netloc = host + "/" + afterHost
	}

	var auth authority
	if ip, ok := ipv4Literal(host); ok {
		_, tail := splitSegments(netloc)
		auth = authority{topLevelDomain: ip, tail: tail}
	} else {
		if !tlds.occursIn(lowered) {
			return emptyRecord, nil
		}
		if auth, ok = classifyAuthority(strings.Split(netloc, "."), tlds); !ok {
			return emptyRecord, nil
		}
	}

	res.SubDomain = auth.subDomain
	res.SecondLevelDomain = auth.secondLevelDomain
	res.TopLevelDomain = auth.topLevelDomain
	res.Path, res.Query, res.Fragment = splitPathQueryFragment(strings.Join(auth.tail, "/"))
	return res, nil
}

// classifyAuthority decides which of the '.'-separated labels are subdomain,
// second level domain and top level domain.
//
// The last label may carry a path, which can itself contain dots
// (e.g. example.org/directory.txt), so the label count alone does not
// tell where the host ends.
func classifyAuthority(labels []string, tlds *TLDSet) (authority, bool) {
	switch len(labels) {
	case 2:
		// example.org or example.org/directory
		tld, tail := splitSegments(labels[1])
		if tlds.Contains(tld) {
			return authority{secondLevelDomain: labels[0], topLevelDomain: tld, tail: tail}, true
		}
	case 3:
		if tld, tail := splitSegments(labels[2]); tlds.Contains(tld) {
			if IsCompoundPrefix(labels[1]) {
				// example.gov.bs or example.gov.bs/directory
				return authority{secondLevelDomain: labels[0],
					topLevelDomain: labels[1] + "." + tld, tail: tail}, true
			}
			// www.example.com or www.example.com/directory
			return authority{subDomain: labels[0], secondLevelDomain: labels[1],
				topLevelDomain: tld, tail: tail}, true
		}
		// example.org/directory.txt
		//
		// Only labels[1] is tested, labels[0] is never considered a subdomain here.
		if tld, _ := splitSegments(labels[1]); tlds.Contains(tld) {
			tld, tail := splitSegments(strings.Join(labels[1:], "."))
			return authority{secondLevelDomain: labels[0], topLevelDomain: tld, tail: tail}, true
		}
	case 4:
		tld, tail := splitSegments(strings.Join(labels[2:], "."))
		switch {
		case tlds.Contains(tld) && IsCompoundPrefix(labels[1]):
			// example.gov.bs/directory.xhtml
			return authority{secondLevelDomain: labels[0],
				topLevelDomain: labels[1] + "." + tld, tail: tail}, true
		case tlds.Contains(tld):
			// www.example.org/directory.xhtml
			return authority{subDomain: labels[0], secondLevelDomain: labels[1],
				topLevelDomain: tld, tail: tail}, true
		default:
			// www.bahamas.gov.bs/directory
			if prefix, cc, found := strings.Cut(tld, "."); found && IsCompoundPrefix(prefix) && tlds.Contains(cc) {
				return authority{subDomain: labels[0], secondLevelDomain: labels[1],
					topLevelDomain: tld, tail: tail}, true
			}
		}
	case 5:
		// www.example.gov.bs/directory.xhtml
		cc, tail := splitSegments(strings.Join(labels[3:], "."))
		if IsCompoundPrefix(labels[2]) && tlds.Contains(cc) {
			return authority{subDomain: labels[0], secondLevelDomain: labels[1],
				topLevelDomain: labels[2] + "." + cc, tail: tail}, true
		}
	}
	return authority{}, false
}

// splitPathQueryFragment splits everything after the top level domain
// into path, query and fragment, all trimmed of leading and trailing '/'.
//
// Separators beyond the first '?' or '#' are dropped and the pieces
// around them concatenated.
func splitPathQueryFragment(s string) (path, query, fragment string) {
	if strings.IndexByte(s, '?') == -1 {
		pieces := trimEachSlashes(strings.Split(s, "#"))
		return pieces[0], "", strings.Join(pieces[1:], "")
	}
	pieces := trimEachSlashes(strings.Split(s, "?"))
	if fragments := strings.Split(pieces[1], "#"); len(fragments) > 1 {
		return pieces[0], trimSlashes(fragments[0]), trimSlashes(strings.Join(fragments[1:], ""))
	}
	return pieces[0], strings.Join(pieces[1:], ""), ""
}

func trimEachSlashes(pieces []string) []string {
	for i := range pieces {
		pieces[i] = trimSlashes(pieces[i])
	}
	return pieces
}
