package usecases

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/ports"
)

// Messages shown instead of a report.
const (
	MessageInvalidQuery = "Verify the search query"
	MessageNoResults    = "No results found"
)

// SearchRequest is one search issued by a user.
type SearchRequest struct {
	Query     string
	Radiation entities.RadiationType
	PrintMode entities.PrintMode
}

// SearchResponse carries the report plus the structured pieces behind it.
type SearchResponse struct {
	Outcome  ports.SearchOutcome
	Text     string // report, or one of the Message constants
	Energies []entities.Energy
	Results  entities.SearchResultSet
}

// SearchUseCase runs parse -> match -> format for one request.
type SearchUseCase struct {
	matcher  *Matcher
	recorder ports.SearchRecorder
	logger   *slog.Logger
}

// NewSearchUseCase creates a SearchUseCase. recorder may be nil.
func NewSearchUseCase(matcher *Matcher, recorder ports.SearchRecorder, logger *slog.Logger) *SearchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchUseCase{matcher: matcher, recorder: recorder, logger: logger}
}

// Run executes the search. It never fails: parse errors and empty results are
// reported through Outcome and Text.
func (uc *SearchUseCase) Run(ctx context.Context, req SearchRequest) SearchResponse {
	start := time.Now()
	resp := uc.run(ctx, req)
	if uc.recorder != nil {
		uc.recorder.ObserveSearch(req.Radiation, resp.Outcome, len(resp.Energies), time.Since(start))
	}
	return resp
}

func (uc *SearchUseCase) run(ctx context.Context, req SearchRequest) SearchResponse {
	energies, err := ParseQuery(req.Query)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			uc.logger.WarnContext(ctx, "error while parsing line", "line", perr.Line)
		}
		return SearchResponse{Outcome: ports.OutcomeInvalidQuery, Text: MessageInvalidQuery}
	}
	for _, e := range energies {
		uc.logger.DebugContext(ctx, "parsed energy", "energy", e.String())
	}

	results, ok := uc.matcher.Search(energies, req.Radiation)
	if !ok {
		return SearchResponse{Outcome: ports.OutcomeNoResults, Text: MessageNoResults, Energies: energies}
	}
	return SearchResponse{
		Outcome:  ports.OutcomeMatched,
		Text:     Format(results, req.PrintMode),
		Energies: energies,
		Results:  results,
	}
}
