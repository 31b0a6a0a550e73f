package pdl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	dErrors "sedprefill/pkg/domain-errors"
)

// HTTPClient is the production adapter against the person registry's REST
// API. Transport failures surface as CodeUpstream and are never re-classified
// as domain errors.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   func(ctx context.Context) (string, error)
}

// NewHTTPClient builds an adapter. tokenFn supplies the bearer token per
// request; token exchange itself is owned elsewhere.
func NewHTTPClient(baseURL string, tokenFn func(ctx context.Context) (string, error)) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		token:   tokenFn,
	}
}

func (c *HTTPClient) Person(ctx context.Context, pin string) (PersonRecord, error) {
	endpoint := fmt.Sprintf("%s/api/v1/person/%s", c.baseURL, url.PathEscape(pin))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return PersonRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "build person request")
	}
	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return PersonRecord{}, dErrors.Wrap(err, dErrors.CodeUpstream, "person registry token")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return PersonRecord{}, dErrors.Wrap(err, dErrors.CodeUpstream, "person registry unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return PersonRecord{}, dErrors.Newf(dErrors.CodeNotFound, "person %s not found", pin)
	case resp.StatusCode != http.StatusOK:
		return PersonRecord{}, dErrors.Newf(dErrors.CodeUpstream, "person registry returned %d", resp.StatusCode)
	}

	var rec PersonRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return PersonRecord{}, dErrors.Wrap(err, dErrors.CodeUpstream, "decode person response")
	}
	return rec, nil
}
