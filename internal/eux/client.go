package eux

import (
	"context"
	"time"

	"sedprefill/internal/models"
	"sedprefill/pkg/domain"
	dErrors "sedprefill/pkg/domain-errors"
	"sedprefill/pkg/platform/retry"
)

// Client queries the case/document exchange system.
type Client interface {
	Case(ctx context.Context, rinaCaseID string) (CaseDetail, error)
	Documents(ctx context.Context, rinaCaseID string) ([]Document, error)
	DocumentSED(ctx context.Context, rinaCaseID, documentID string) (models.SED, error)
	// Actions lists the SED types the case currently accepts.
	Actions(ctx context.Context, rinaCaseID string) ([]string, error)
}

// EnsureActionAvailable re-checks, under the given bounded policy, that the
// case accepts the SED type. The wait schedule lives entirely in the policy.
func EnsureActionAvailable(ctx context.Context, client Client, policy retry.Policy, rinaCaseID string, sedType domain.SedType) error {
	return policy.Do(ctx, func(ctx context.Context) error {
		actions, err := client.Actions(ctx, rinaCaseID)
		if err != nil {
			return err
		}
		for _, a := range actions {
			if a == sedType.String() {
				return nil
			}
		}
		return dErrors.Newf(dErrors.CodeUnprocessable, "case %s does not accept %s yet", rinaCaseID, sedType)
	})
}

// MockClient serves deterministic case data for local wiring and tests.
type MockClient struct {
	Latency   time.Duration
	Cases     map[string]CaseDetail
	DocIndex  map[string][]Document
	Contents  map[string]models.SED // keyed rinaCaseID+"/"+documentID
	Available map[string][]string
}

func (c *MockClient) Case(_ context.Context, rinaCaseID string) (CaseDetail, error) {
	time.Sleep(c.Latency)
	if detail, ok := c.Cases[rinaCaseID]; ok {
		return detail, nil
	}
	return CaseDetail{
		ID:      rinaCaseID,
		BucType: domain.BucP01.String(),
		Participants: []Participant{
			{Role: RoleCaseOwner, Institution: models.Institution{ID: "NO:NAVAT07", Acronym: "NAVAT07", Country: "NO"}},
		},
		LastUpdate: time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (c *MockClient) Documents(_ context.Context, rinaCaseID string) ([]Document, error) {
	time.Sleep(c.Latency)
	return c.DocIndex[rinaCaseID], nil
}

func (c *MockClient) DocumentSED(_ context.Context, rinaCaseID, documentID string) (models.SED, error) {
	time.Sleep(c.Latency)
	if sed, ok := c.Contents[rinaCaseID+"/"+documentID]; ok {
		return sed, nil
	}
	return models.SED{}, dErrors.Newf(dErrors.CodeNotFound, "document %s not found in case %s", documentID, rinaCaseID)
}

func (c *MockClient) Actions(_ context.Context, rinaCaseID string) ([]string, error) {
	time.Sleep(c.Latency)
	if actions, ok := c.Available[rinaCaseID]; ok {
		return actions, nil
	}
	all := domain.AllSedTypes()
	out := make([]string, 0, len(all))
	for _, t := range all {
		out = append(out, t.String())
	}
	return out, nil
}
