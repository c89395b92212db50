package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

const (
	// DefaultFlushEvery is how many array elements are written between flushes.
	DefaultFlushEvery = 64

	contentTypeJSON = "application/json; charset=utf-8"
)

// QuoteHandler handles quote lookup endpoints.
type QuoteHandler struct {
	service    *app.QuoteService
	flushEvery int
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service:    service,
		flushEvery: DefaultFlushEvery,
	}
}

// GetQuoteByID handles GET /quotes/:id
// Returns a specific quote by its identifier.
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID (24 hex characters)"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	id := c.Param("id")

	quote, found, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if !found {
		dto.HandleError(c, domain.NewQuoteNotFoundError(id))
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// ListQuotes handles GET /quotes and GET /quotes?author=
// With an author key present the quotes by that author are returned;
// without one, every quote is. An empty author value is rejected.
//
// @Summary List quotes, optionally by author
// @Tags quotes
// @Produce json
// @Param author query string false "Author name, matched ignoring case"
// @Success 200 {array} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	ctx := c.Request.Context()

	if _, present := c.GetQuery("author"); !present {
		h.writeArray(c, h.service.FindAll(ctx))
		return
	}

	var query dto.AuthorQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.HandleError(c, err)
		return
	}

	h.writeArray(c, h.service.FindByAuthor(ctx, query.Author))
}

// RegisterQuoteRoutes registers quote routes on the given router.
func (h *QuoteHandler) RegisterQuoteRoutes(r gin.IRoutes) {
	r.GET("/quotes", h.ListQuotes)
	r.GET("/quotes/:id", h.GetQuoteByID)
}

// writeArray streams seq as a JSON array, pulling one quote at a time.
//
// The status line is not committed until the first element (or the end of
// an empty sequence) arrives, so a failure before that is answered with a
// normal error response. A failure after that cannot be reported in-band:
// it is logged and the connection is dropped, leaving the client with a
// truncated body rather than a well-formed short array.
func (h *QuoteHandler) writeArray(c *gin.Context, seq iter.Seq2[domain.Quote, error]) {
	ctx := c.Request.Context()
	w := c.Writer

	var (
		started bool
		count   int
	)

	begin := func() {
		c.Header("Content-Type", contentTypeJSON)
		c.Status(http.StatusOK)
		_, _ = w.WriteString("[")
		started = true
	}

	for quote, err := range seq {
		if err != nil {
			if !started {
				dto.HandleError(c, err)
				return
			}

			abortStream(ctx, err, count)
		}

		if !started {
			begin()
		} else if _, werr := w.WriteString(","); werr != nil {
			return
		}

		b, err := json.Marshal(dto.NewQuoteResponse(quote))
		if err != nil {
			abortStream(ctx, err, count)
		}

		if _, err := w.Write(b); err != nil {
			// The client has gone; returning stops the sequence.
			return
		}

		count++
		if count%h.flushEvery == 0 {
			w.Flush()
		}
	}

	if !started {
		begin()
	}

	_, _ = w.WriteString("]")
	w.Flush()
}

// abortStream logs a failure mid-array and drops the connection.
func abortStream(ctx context.Context, err error, written int) {
	level := slog.LevelError
	if errors.Is(err, context.Canceled) {
		level = slog.LevelDebug
	}

	logging.FromContext(ctx).Log(ctx, level, "quote stream aborted",
		slog.Int("written", written),
		slog.Any("error", err),
	)

	panic(http.ErrAbortHandler)
}
