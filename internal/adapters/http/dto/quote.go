package dto

import "github.com/jsamuelsen/quotes-service/internal/domain"

// QuoteResponse is the transport shape of a quote.
type QuoteResponse struct {
	ID     string `json:"id"`
	Text   string `json:"quoteText"`
	Author string `json:"quoteAuthor"`
	Genre  string `json:"quoteGenre"`
}

// NewQuoteResponse converts a domain Quote to its transport shape.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:     q.ID,
		Text:   q.Text,
		Author: q.Author,
		Genre:  q.Genre,
	}
}

// AuthorQuery is the query string of GET /quotes?author=.
// Only bound when the author key is present; an empty value is rejected
// and any other value, whitespace included, is passed through untouched.
type AuthorQuery struct {
	Author string `form:"author" json:"author" validate:"required"`
}
