package addrsplit

import "strings"

// IPv4len is the number of dot-separated octets in an IPv4 address.
const IPv4len = 4

// Bigger than we need, not too big to worry about overflow
const big = 0xFFFFFF

// Decimal to integer.
// Returns number, characters consumed, success.
func dtoi(s string) (n int, i int, ok bool) {
	n = 0
	for i = 0; i < len(s) && '0' <= s[i] && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n >= big {
			return big, i, false
		}
	}
	if i == 0 {
		return 0, 0, false
	}
	return n, i, true
}

// isOctet returns true if s consists only of decimal digits
// and its value is between 0 and 255.
//
// Leading zeroes are accepted.
func isOctet(s string) bool {
	n, c, ok := dtoi(s)
	return ok && c == len(s) && n <= 0xFF
}

// ipv4Literal returns the first IPv4len dot-separated labels of host joined by '.'
// if each of them is an octet.
//
// Labels after the first IPv4len are ignored.
func ipv4Literal(host string) (string, bool) {
	// Ensure first byte is numeric before splitting
	if len(host) == 0 || !numericSet.contains(host[0]) {
		return "", false
	}
	labels := strings.SplitN(host, ".", IPv4len+1)
	if len(labels) < IPv4len {
		return "", false
	}
	for _, label := range labels[0:IPv4len] {
		if !isOctet(label) {
			return "", false
		}
	}
	return strings.Join(labels[0:IPv4len], "."), true
}
