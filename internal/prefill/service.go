package prefill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"sedprefill/internal/eux"
	"sedprefill/internal/events"
	"sedprefill/internal/kodeverk"
	"sedprefill/internal/krav"
	"sedprefill/internal/models"
	"sedprefill/internal/pdl"
	"sedprefill/internal/pen"
	"sedprefill/internal/prefill/metrics"
	"sedprefill/internal/prefill/person"
	"sedprefill/pkg/domain"
	dErrors "sedprefill/pkg/domain-errors"
	"sedprefill/pkg/platform/retry"
)

// Service orchestrates one prefill: availability gate, parallel source
// fetches, strategy dispatch, and result publication. It holds no mutable
// state across requests; every invocation re-fetches source records.
type Service struct {
	persons      pdl.Client
	pensions     pen.Client
	cases        eux.Client
	codes        kodeverk.Resolver
	pipeline     *Pipeline
	kravComputer *krav.Computer
	logger       *slog.Logger
	metrics      *metrics.Metrics
	events       *events.Publisher
	policy       retry.Policy
	tracer       trace.Tracer
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithEvents(p *events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

func WithRetryPolicy(policy retry.Policy) Option {
	return func(s *Service) { s.policy = policy }
}

func WithKravComputer(c *krav.Computer) Option {
	return func(s *Service) { s.kravComputer = c }
}

// New wires the service. Person, pension, and case clients are required.
func New(persons pdl.Client, pensions pen.Client, cases eux.Client, codes kodeverk.Resolver, opts ...Option) (*Service, error) {
	if persons == nil {
		return nil, fmt.Errorf("person client is required")
	}
	if pensions == nil {
		return nil, fmt.Errorf("pension client is required")
	}
	if cases == nil {
		return nil, fmt.Errorf("case client is required")
	}
	if codes == nil {
		codes = kodeverk.NewStaticResolver()
	}
	s := &Service{
		persons:  persons,
		pensions: pensions,
		cases:    cases,
		codes:    codes,
		policy:   retry.DefaultPolicy(),
		tracer:   otel.Tracer("sedprefill/prefill"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.pipeline == nil {
		s.pipeline = NewPipeline(s.logger)
	}
	if s.kravComputer == nil {
		s.kravComputer = krav.NewComputer(codes)
	}
	return s, nil
}

// DispatchAndPrefill assembles the document for the given case identity.
func (s *Service) DispatchAndPrefill(ctx context.Context, pc models.PrefillContext) (*models.SED, error) {
	ctx, span := s.tracer.Start(ctx, "prefill.sed",
		trace.WithAttributes(
			attribute.String("sed.type", pc.SedType.String()),
			attribute.String("buc.type", pc.BucType.String()),
		))
	defer span.End()

	if err := eux.EnsureActionAvailable(ctx, s.cases, s.policy, pc.RinaCaseID, pc.SedType); err != nil {
		s.observe(pc.SedType, "rejected")
		return nil, err
	}

	in, err := s.gather(ctx, pc)
	if err != nil {
		s.observe(pc.SedType, "error")
		return nil, err
	}

	strategy := StrategyFor(pc.SedType)
	sed, err := strategy.Prefill(ctx, s.pipeline, in)
	if err != nil {
		s.observe(pc.SedType, "error")
		return nil, err
	}
	if err := s.pipeline.ApplyPartial(sed, pc); err != nil {
		s.observe(pc.SedType, "error")
		return nil, err
	}

	s.observe(pc.SedType, "ok")
	if s.events != nil {
		s.events.Publish(ctx, events.PrefillCompleted{
			SedType:    pc.SedType.String(),
			BucType:    pc.BucType.String(),
			RinaCaseID: pc.RinaCaseID,
			SakNummer:  pc.SakNummer,
		})
	}
	s.logger.InfoContext(ctx, "prefilled sed",
		"sed_type", pc.SedType.String(),
		"strategy", strategy.Name(),
		"rina_case_id", pc.RinaCaseID,
	)
	return sed, nil
}

// gather fetches all source records in parallel with shared cancellation.
func (s *Service) gather(ctx context.Context, pc models.PrefillContext) (Input, error) {
	in := Input{Context: pc}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		person, err := s.persons.Person(gctx, pc.ClaimantPIN)
		s.observeUpstream("pdl", start)
		if err != nil {
			return err
		}
		in.Person = person
		return nil
	})

	if pc.AvdodPIN != "" {
		g.Go(func() error {
			start := time.Now()
			avdod, err := s.persons.Person(gctx, pc.AvdodPIN)
			s.observeUpstream("pdl", start)
			if err != nil {
				return err
			}
			in.Avdod = &avdod
			return nil
		})
	}

	g.Go(func() error {
		start := time.Now()
		detail, err := s.cases.Case(gctx, pc.RinaCaseID)
		s.observeUpstream("eux", start)
		if err != nil {
			return err
		}
		in.Case = detail
		return nil
	})

	if !pc.Skips(models.SkipPensionBlock) {
		g.Go(func() error {
			start := time.Now()
			decision, err := s.pensions.Decision(gctx, pc.SakNummer, pc.VedtakID)
			s.observeUpstream("pen", start)
			if err != nil {
				// Graceful degradation: absent decision data is a valid
				// case state for most document types. The pipeline turns
				// the nil into an explicit empty pension block; the P6000
				// strategy still refuses to issue without data.
				if errors.Is(err, pen.ErrNoDecisionData) {
					s.logger.WarnContext(gctx, "no decision data, degrading pension block",
						"sak_nummer", pc.SakNummer,
					)
					if s.metrics != nil {
						s.metrics.ObservePensionDegradation()
					}
					return nil
				}
				return err
			}
			in.Decision = &decision
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Input{}, err
	}

	// Survivor claims carry parent details; resolve them from the claimant's
	// family relations after the primary fetches complete.
	if pc.SedType == domain.SedP2100 {
		in.Mor = s.fetchParent(ctx, in.Person, pdl.RolleMor)
		in.Far = s.fetchParent(ctx, in.Person, pdl.RolleFar)
	}
	return in, nil
}

// fetchParent is best-effort: a missing parent record leaves the field blank
// for manual entry rather than failing the document.
func (s *Service) fetchParent(ctx context.Context, rec pdl.PersonRecord, rolle string) *pdl.PersonRecord {
	pin, ok := person.RelatertPIN(rec, rolle)
	if !ok {
		return nil
	}
	parent, err := s.persons.Person(ctx, pin)
	if err != nil {
		s.logger.WarnContext(ctx, "parent lookup failed",
			"rolle", rolle,
			"error", err,
		)
		return nil
	}
	return &parent
}

// ClaimFacts computes the standalone cross-border claim facts for a
// case/document pair. sakNummer is optional; without it the deferral-date
// seed is unavailable and the fallback effective-date rule applies.
func (s *Service) ClaimFacts(ctx context.Context, rinaCaseID, documentID, sakNummer string) (krav.Utland, error) {
	ctx, span := s.tracer.Start(ctx, "prefill.claimfacts",
		trace.WithAttributes(attribute.String("rina.case_id", rinaCaseID)))
	defer span.End()

	detail, err := s.cases.Case(ctx, rinaCaseID)
	if err != nil {
		return krav.Utland{}, err
	}
	docs, err := s.cases.Documents(ctx, rinaCaseID)
	if err != nil {
		return krav.Utland{}, err
	}
	doc, ok := findDocument(docs, documentID)
	if !ok {
		return krav.Utland{}, dErrors.Newf(dErrors.CodeNotFound, "document %s not found in case %s", documentID, rinaCaseID)
	}
	sedType, err := domain.ParseSedType(doc.Type)
	if err != nil {
		return krav.Utland{}, err
	}
	sed, err := s.cases.DocumentSED(ctx, rinaCaseID, documentID)
	if err != nil {
		return krav.Utland{}, err
	}

	pin := claimantPIN(sed)
	if pin == "" {
		return krav.Utland{}, dErrors.New(dErrors.CodeUnprocessable, "document carries no claimant identifier")
	}
	person, err := s.persons.Person(ctx, pin)
	if err != nil {
		return krav.Utland{}, err
	}

	var utsettelse *time.Time
	if sakNummer != "" {
		if decision, err := s.pensions.Decision(ctx, sakNummer, ""); err == nil {
			utsettelse = deferralDate(decision)
		} else if !errors.Is(err, pen.ErrNoDecisionData) {
			return krav.Utland{}, err
		}
	}

	caseOwnerCountry := ""
	if owner, ok := detail.CaseOwner(); ok {
		caseOwnerCountry = owner.Country
	}

	return s.kravComputer.Compute(ctx, krav.Input{
		Nav:              sed.Nav,
		Person:           person,
		SedType:          sedType,
		CaseOwnerCountry: caseOwnerCountry,
		LastUpdate:       doc.LastUpdate,
		Utsettelse:       utsettelse,
	})
}

func findDocument(docs []eux.Document, id string) (eux.Document, bool) {
	for _, d := range docs {
		if d.ID == id {
			return d, true
		}
	}
	return eux.Document{}, false
}

func claimantPIN(sed models.SED) string {
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

// deferralDate selects the latest requested start date from the claim
// history.
func deferralDate(info pen.Pensjonsinformasjon) *time.Time {
	var latest *time.Time
	for _, k := range info.Kravhistorikk {
		if k.OnsketVirkning == nil {
			continue
		}
		if latest == nil || k.OnsketVirkning.After(*latest) {
			latest = k.OnsketVirkning
		}
	}
	return latest
}

func (s *Service) observe(sedType domain.SedType, outcome string) {
	if s.metrics != nil {
		s.metrics.ObservePrefill(sedType.String(), outcome)
	}
}

func (s *Service) observeUpstream(source string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveUpstreamLatency(source, time.Since(start))
	}
}
