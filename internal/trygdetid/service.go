// Package trygdetid assembles the cross-institution insurance-period
// timeline of a case from its P5000 documents.
package trygdetid

import (
	"context"
	"log/slog"

	"sedprefill/internal/eux"
	"sedprefill/internal/models"
	"sedprefill/pkg/domain"
	"sedprefill/pkg/requestcontext"
)

// Service reads the case's document index, pulls every period-report
// document, and flattens the reported periods into one timeline.
type Service struct {
	cases  eux.Client
	cache  TimelineCache
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithCache(cache TimelineCache) Option {
	return func(s *Service) { s.cache = cache }
}

func New(cases eux.Client, opts ...Option) *Service {
	s := &Service{
		cases: cases,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Timeline returns the aggregated insurance periods for a case. A non-empty
// claimantPIN restricts the aggregation to period reports naming that
// claimant; reports carrying no claimant identifier are always included. A
// case with no matching period reports yields an empty, non-nil timeline.
// Cache failures only degrade to a fresh assembly.
func (s *Service) Timeline(ctx context.Context, rinaCaseID, claimantPIN string) (Timeline, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, rinaCaseID, claimantPIN)
		if err != nil {
			s.logger.WarnContext(ctx, "timeline cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	timeline, err := s.assemble(ctx, rinaCaseID, claimantPIN)
	if err != nil {
		return Timeline{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, timeline); err != nil {
			s.logger.WarnContext(ctx, "timeline cache write failed", "error", err)
		}
	}
	return timeline, nil
}

func (s *Service) assemble(ctx context.Context, rinaCaseID, claimantPIN string) (Timeline, error) {
	docs, err := s.cases.Documents(ctx, rinaCaseID)
	if err != nil {
		return Timeline{}, err
	}

	timeline := Timeline{
		RinaCaseID:  rinaCaseID,
		ClaimantPIN: claimantPIN,
		Periods:     []Period{},
		FetchedAt:   requestcontext.Now(ctx).UTC(),
	}
	for _, doc := range docs {
		if doc.Type != domain.SedP5000.String() {
			continue
		}
		sed, err := s.cases.DocumentSED(ctx, rinaCaseID, doc.ID)
		if err != nil {
			return Timeline{}, err
		}
		if claimantPIN != "" {
			if pin := reportedClaimantPIN(sed); pin != "" && pin != claimantPIN {
				continue
			}
		}
		if sed.Pensjon == nil {
			continue
		}
		for _, item := range sed.Pensjon.Trygdetid {
			timeline.Periods = append(timeline.Periods, periodFrom(item, doc.ID, doc.Creator))
		}
	}
	return timeline, nil
}

// reportedClaimantPIN extracts the claimant identifier a period report names,
// or "" when the document carries none.
func reportedClaimantPIN(sed models.SED) string {
	if sed.Nav == nil || sed.Nav.Bruker == nil || sed.Nav.Bruker.Person == nil {
		return ""
	}
	for _, pin := range sed.Nav.Bruker.Person.Pin {
		if pin.Identifikator != "" {
			return pin.Identifikator
		}
	}
	return ""
}
