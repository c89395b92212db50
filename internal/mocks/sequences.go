package mocks

import (
	"iter"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// QuoteSeq returns a sequence yielding quotes in order, then err if non-nil.
func QuoteSeq(quotes []domain.Quote, err error) iter.Seq2[domain.Quote, error] {
	return func(yield func(domain.Quote, error) bool) {
		for _, q := range quotes {
			if !yield(q, nil) {
				return
			}
		}

		if err != nil {
			yield(domain.Quote{}, err)
		}
	}
}
