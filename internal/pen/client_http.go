package pen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	dErrors "sedprefill/pkg/domain-errors"
)

// HTTPClient is the production adapter against the pension decision system.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   func(ctx context.Context) (string, error)
}

func NewHTTPClient(baseURL string, tokenFn func(ctx context.Context) (string, error)) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		token:   tokenFn,
	}
}

func (c *HTTPClient) Decision(ctx context.Context, sakNummer, vedtakID string) (Pensjonsinformasjon, error) {
	endpoint := fmt.Sprintf("%s/api/v1/sak/%s/pensjonsinformasjon", c.baseURL, url.PathEscape(sakNummer))
	if vedtakID != "" {
		endpoint += "?vedtakId=" + url.QueryEscape(vedtakID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Pensjonsinformasjon{}, dErrors.Wrap(err, dErrors.CodeInternal, "build decision request")
	}
	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return Pensjonsinformasjon{}, dErrors.Wrap(err, dErrors.CodeUpstream, "decision system token")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Pensjonsinformasjon{}, dErrors.Wrap(err, dErrors.CodeUpstream, "decision system unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Pensjonsinformasjon{}, ErrNoDecisionData
	case resp.StatusCode != http.StatusOK:
		return Pensjonsinformasjon{}, dErrors.Newf(dErrors.CodeUpstream, "decision system returned %d", resp.StatusCode)
	}

	var info Pensjonsinformasjon
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Pensjonsinformasjon{}, dErrors.Wrap(err, dErrors.CodeUpstream, "decode decision response")
	}
	return info, nil
}
