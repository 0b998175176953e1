// pkg/backend/http_client.go

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"plataform/entities"
	"plataform/pkg/apperr"
)

type httpClient struct {
	base string
	hc   *http.Client
}

// NewHTTP talks to base + /api/... with a per-request timeout.
func NewHTTP(base string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) PropertyInfos(ctx context.Context) ([]entities.PropertyInfo, error) {
	var out struct {
		Items []entities.PropertyInfo `json:"infospropriedades"`
	}
	if err := c.getJSON(ctx, ResourcePropertyInfos, &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []entities.PropertyInfo{}
	}
	return out.Items, nil
}

func (c *httpClient) Laboratories(ctx context.Context) ([]entities.Laboratory, error) {
	var out struct {
		Items []entities.Laboratory `json:"laboratorios"`
	}
	if err := c.getJSON(ctx, ResourceLaboratories, &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []entities.Laboratory{}
	}
	return out.Items, nil
}

func (c *httpClient) SubmitPlataform(ctx context.Context, p entities.PlataformPayload) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/plataformas", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("POST /api/plataformas: status %d: %s", resp.StatusCode, snippet(resp.Body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *httpClient) getJSON(ctx context.Context, resource string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/"+resource, nil)
	if err != nil {
		return &apperr.FetchError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return &apperr.FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &apperr.FetchError{Resource: resource, Err: fmt.Errorf("status %d: %s", resp.StatusCode, snippet(resp.Body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &apperr.FetchError{Resource: resource, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func snippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
