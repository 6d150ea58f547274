package addrsplit

import "strings"

// maxEmailDomainLabels is the largest number of labels accepted after '@',
// enough for government addresses like user@treasury.gov.bs.
const maxEmailDomainLabels int = 3

// ParseEmail splits an email address into username, plus address,
// mail server and domain.
//
// The plus address is only extracted when the part before '@' contains
// exactly one '+'. No TLD validation is done on the domain.
//
// An error is returned if input is empty, does not contain exactly
// one '@', or has more than 3 labels after '@'.
func ParseEmail(input string) (EmailRecord, error) {
	if len(input) == 0 {
		return EmailRecord{}, ErrEmptyInput
	}
	parts := strings.Split(input, "@")
	if len(parts) != 2 {
		return EmailRecord{}, ErrInvalidEmail
	}

	res := EmailRecord{Input: input}
	if local := strings.Split(parts[0], "+"); len(local) == 2 {
		res.Username = local[0]
		res.PlusAddress = local[1]
	} else {
		res.Username = parts[0]
	}

	labels := strings.Split(parts[1], ".")
	if len(labels) > maxEmailDomainLabels {
		return EmailRecord{}, ErrTooManyDomainLabels
	}
	res.MailServer = labels[0]
	res.Domain = strings.Join(labels[1:], ".")
	return res, nil
}
