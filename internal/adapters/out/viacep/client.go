// Package viacep implements the postal lookup port against the public
// ViaCEP web service.
package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client resolves postal codes via GET {baseURL}/ws/{code}/json/.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a ViaCEP client. A zero timeout falls back to the
// package default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// response mirrors the ViaCEP payload. The service answers HTTP 200 with
// {"erro": true} for well-formed codes it does not know.
type response struct {
	Street   string `json:"logradouro"`
	District string `json:"bairro"`
	City     string `json:"localidade"`
	State    string `json:"uf"`
	IBGE     string `json:"ibge"`
	Error    bool   `json:"erro"`
}

// Resolve implements ports.PostalLookup.
func (c *Client) Resolve(
	ctx context.Context, postalCode kernel.PostalCode,
) (ports.ResolvedAddress, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, postalCode.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.ResolvedAddress{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A caller-cancelled context keeps its own error chain; every other
		// transport failure, timeouts included, means the code could not be
		// validated.
		if ctx.Err() != nil {
			return ports.ResolvedAddress{}, fmt.Errorf("postal lookup: %w", err)
		}
		return ports.ResolvedAddress{}, errs.NewValueIsInvalidErrorWithCause(
			"postalCode", fmt.Errorf("postal lookup: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusBadRequest {
		return ports.ResolvedAddress{}, errs.NewValueIsInvalidError("postalCode")
	}
	if resp.StatusCode != http.StatusOK {
		return ports.ResolvedAddress{}, errs.NewValueIsInvalidErrorWithCause(
			"postalCode", fmt.Errorf("postal lookup: unexpected status %d", resp.StatusCode))
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.ResolvedAddress{}, errs.NewValueIsInvalidErrorWithCause(
			"postalCode", fmt.Errorf("postal lookup: %w", err))
	}

	if body.Error {
		return ports.ResolvedAddress{}, errs.NewValueIsInvalidErrorWithCause(
			"postalCode", fmt.Errorf("unknown postal code %s", postalCode.String()))
	}

	return ports.ResolvedAddress{
		Street:      body.Street,
		District:    body.District,
		City:        body.City,
		State:       body.State,
		ExternalRef: body.IBGE,
	}, nil
}
