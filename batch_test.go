package addrsplit

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmails(t *testing.T) {
	inputs := []string{
		"user@example.com",
		"invalid",
		"user+tag@mail.example.com",
		"user@example.com",
		"user@a.b.c.d",
	}
	results, err := ParseEmails(inputs)
	require.NoError(t, err)
	assert.Equal(t, []string{"user@example.com", "user+tag@mail.example.com"}, results.Inputs())
	assert.Equal(t, 2, results.Len())

	rec, ok := results.Get("user+tag@mail.example.com")
	require.True(t, ok)
	assert.Equal(t, EmailRecord{Input: "user+tag@mail.example.com", Username: "user",
		PlusAddress: "tag", MailServer: "mail", Domain: "example.com"}, rec)

	_, ok = results.Get("invalid")
	assert.False(t, ok)
}

func TestParseEmailsNoResults(t *testing.T) {
	for _, inputs := range [][]string{nil, {}, {"", "  ", "\n"}, {"invalid", "a@b@c"}} {
		results, err := ParseEmails(inputs)
		assert.ErrorIs(t, err, ErrNoResults, "inputs %q", inputs)
		assert.Nil(t, results)
	}
}

func TestParseURLs(t *testing.T) {
	inputs := []string{
		"https://www.example.com",
		"ftp://example.com",
		"example.invalidtld",
		"https://WWW.example.com",
		"https://www.example.com",
	}
	results, err := ParseURLs(inputs, testTLDs)
	require.NoError(t, err)

	// keyed by original input, so case variants are distinct
	assert.Equal(t, []string{"https://www.example.com", "example.invalidtld", "https://WWW.example.com"},
		results.Inputs())

	rec, ok := results.Get("example.invalidtld")
	require.True(t, ok)
	assert.True(t, rec.IsEmpty())

	first, _ := results.Get("https://www.example.com")
	second, _ := results.Get("https://WWW.example.com")
	first.Input, second.Input = "", ""
	assert.Equal(t, first, second)

	records := results.Records()
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, results.Inputs()[i], rec.Key())
	}
}

func TestParseURLsNoResults(t *testing.T) {
	_, err := ParseURLs([]string{" ", ""}, testTLDs)
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = ParseURLs([]string{"ftp://example.com", "gopher://example.com"}, testTLDs)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestParseURLsNilTLDSet(t *testing.T) {
	results, err := ParseURLs([]string{"example.gov"}, nil)
	require.NoError(t, err)
	rec, _ := results.Get("example.gov")
	assert.Equal(t, "gov", rec.TopLevelDomain)
}

func TestParseURLsConcurrent(t *testing.T) {
	var inputs []string
	for i := 0; i < 500; i++ {
		inputs = append(inputs, fmt.Sprintf("https://host%d.example.com/%d", i%100, i%100))
	}
	inputs = append(inputs, "ftp://example.com", "example.comx")

	sequential, err := ParseURLs(inputs, testTLDs)
	require.NoError(t, err)

	for _, workers := range []int{-1, 0, 1, 3, 16} {
		concurrent, err := ParseURLsConcurrent(context.Background(), inputs, testTLDs, workers)
		require.NoError(t, err)
		assert.Equal(t, 101, concurrent.Len())
		if !reflect.DeepEqual(sequential, concurrent) {
			t.Errorf("workers = %d: concurrent results differ from sequential results", workers)
		}
	}
}

func TestParseEmailsConcurrent(t *testing.T) {
	inputs := []string{"b@example.com", "a@example.com", "b@example.com", "bad"}
	results, err := ParseEmailsConcurrent(context.Background(), inputs, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b@example.com", "a@example.com"}, results.Inputs())

	_, err = ParseEmailsConcurrent(context.Background(), []string{"bad"}, 2)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestParseConcurrentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseURLsConcurrent(ctx, []string{"example.com", "example.org"}, testTLDs, 1)
	assert.True(t, errors.Is(err, context.Canceled))
}
