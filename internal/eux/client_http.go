package eux

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"sedprefill/internal/models"
	dErrors "sedprefill/pkg/domain-errors"
)

// HTTPClient is the production adapter against the case exchange system.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   func(ctx context.Context) (string, error)
}

func NewHTTPClient(baseURL string, tokenFn func(ctx context.Context) (string, error)) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   tokenFn,
	}
}

func (c *HTTPClient) Case(ctx context.Context, rinaCaseID string) (CaseDetail, error) {
	var detail CaseDetail
	err := c.getJSON(ctx, fmt.Sprintf("/api/v1/buc/%s", url.PathEscape(rinaCaseID)), &detail)
	return detail, err
}

func (c *HTTPClient) Documents(ctx context.Context, rinaCaseID string) ([]Document, error) {
	var docs []Document
	err := c.getJSON(ctx, fmt.Sprintf("/api/v1/buc/%s/documents", url.PathEscape(rinaCaseID)), &docs)
	return docs, err
}

func (c *HTTPClient) DocumentSED(ctx context.Context, rinaCaseID, documentID string) (models.SED, error) {
	var sed models.SED
	err := c.getJSON(ctx, fmt.Sprintf("/api/v1/buc/%s/sed/%s",
		url.PathEscape(rinaCaseID), url.PathEscape(documentID)), &sed)
	return sed, err
}

func (c *HTTPClient) Actions(ctx context.Context, rinaCaseID string) ([]string, error) {
	var actions []string
	err := c.getJSON(ctx, fmt.Sprintf("/api/v1/buc/%s/actions", url.PathEscape(rinaCaseID)), &actions)
	return actions, err
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build case exchange request")
	}
	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUpstream, "case exchange token")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUpstream, "case exchange unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return dErrors.Newf(dErrors.CodeNotFound, "case exchange has no resource at %s", path)
	case resp.StatusCode != http.StatusOK:
		return dErrors.Newf(dErrors.CodeUpstream, "case exchange returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUpstream, "decode case exchange response")
	}
	return nil
}
