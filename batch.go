package addrsplit

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Results maps inputs to their parsed records, in input order.
//
// When an input occurs more than once, only its first occurrence is kept.
type Results[T Record] struct {
	inputs  []string
	records map[string]T
}

func newResults[T Record](capacity int) *Results[T] {
	return &Results[T]{
		inputs:  make([]string, 0, capacity),
		records: make(map[string]T, capacity),
	}
}

// add stores rec under its key unless the key is already present.
func (r *Results[T]) add(rec T) {
	key := rec.Key()
	if _, ok := r.records[key]; ok {
		return
	}
	r.inputs = append(r.inputs, key)
	r.records[key] = rec
}

// Len returns the number of records in r.
func (r *Results[T]) Len() int {
	return len(r.inputs)
}

// Inputs returns the inputs of r in order.
func (r *Results[T]) Inputs() []string {
	return append([]string(nil), r.inputs...)
}

// Get returns the record parsed from input.
func (r *Results[T]) Get(input string) (T, bool) {
	rec, ok := r.records[input]
	return rec, ok
}

// Records returns the records of r in input order.
func (r *Results[T]) Records() []T {
	records := make([]T, 0, len(r.inputs))
	for _, input := range r.inputs {
		records = append(records, r.records[input])
	}
	return records
}

// ParseEmails parses each email address in inputs with ParseEmail.
//
// Addresses that fail to parse are left out. ErrNoResults is returned
// if inputs has no non-blank address, or if no address could be parsed.
func ParseEmails(inputs []string) (*Results[EmailRecord], error) {
	return parseEach(inputs, ParseEmail)
}

// ParseURLs parses each URL in inputs with ParseURL using tlds.
//
// URLs that fail to parse are left out. URLs with no recognized TLD are
// kept as empty records. ErrNoResults is returned if inputs has no
// non-blank URL, or if no URL could be parsed.
func ParseURLs(inputs []string, tlds *TLDSet) (*Results[URLRecord], error) {
	if tlds == nil {
		tlds = DefaultTLDSet()
	}
	return parseEach(inputs, func(input string) (URLRecord, error) {
		return ParseURL(input, tlds)
	})
}

// ParseEmailsConcurrent is like ParseEmails but parses up to workers
// addresses at a time. If workers < 1, runtime.GOMAXPROCS(0) is used.
func ParseEmailsConcurrent(ctx context.Context, inputs []string, workers int) (*Results[EmailRecord], error) {
	return parseEachConcurrent(ctx, inputs, workers, ParseEmail)
}

// ParseURLsConcurrent is like ParseURLs but parses up to workers
// URLs at a time. If workers < 1, runtime.GOMAXPROCS(0) is used.
func ParseURLsConcurrent(ctx context.Context, inputs []string, tlds *TLDSet, workers int) (*Results[URLRecord], error) {
	if tlds == nil {
		tlds = DefaultTLDSet()
	}
	return parseEachConcurrent(ctx, inputs, workers, func(input string) (URLRecord, error) {
		return ParseURL(input, tlds)
	})
}

func allBlank(inputs []string) bool {
	for _, input := range inputs {
		if !isBlank(input) {
			return false
		}
	}
	return true
}

func parseEach[T Record](inputs []string, parse func(string) (T, error)) (*Results[T], error) {
	if allBlank(inputs) {
		return nil, ErrNoResults
	}
	results := newResults[T](len(inputs))
	for _, input := range inputs {
		rec, err := parse(input)
		if err != nil {
			logDropped(input, err)
			continue
		}
		results.add(rec)
	}
	if results.Len() == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}

func parseEachConcurrent[T Record](ctx context.Context, inputs []string, workers int,
	parse func(string) (T, error)) (*Results[T], error) {
	if allBlank(inputs) {
		return nil, ErrNoResults
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Records are stored by input index, so that duplicates are
	// resolved by input order rather than by completion order.
	parsed := make([]T, len(inputs))
	ok := make([]bool, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := parse(input)
			if err != nil {
				logDropped(input, err)
				return nil
			}
			parsed[i], ok[i] = rec, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := newResults[T](len(inputs))
	for i := range parsed {
		if ok[i] {
			results.add(parsed[i])
		}
	}
	if results.Len() == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}

func logDropped(input string, err error) {
	PrefixedLog("batch").WithField("input", input).Debugf("skipping input: %s", err)
}
