// OWNER: mkalbani

package cli

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/lib/env"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

var defaultHTTPClient = (*http.Client)(nil)

// getDefaultHTTPClient returns the default HTTP client to use (to avoid
// re-instantiating one for each request)
func getDefaultHTTPClient(
	ctx context.Context,
) *http.Client {
	if defaultHTTPClient == nil {
		switch env.Get(ctx).Environment {
		case env.Production:
			defaultHTTPClient = &http.Client{}
		case env.QA:
			// In QA we don't check TLS certificates for ease of setup.
			tr := &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
			defaultHTTPClient = &http.Client{Transport: tr}
		}
	}
	return defaultHTTPClient
}

// Ledger represents a ledger server.
type Ledger struct {
	Host        string
	Credentials *Credentials
}

// LedgerFromContextCredentials returns a ledger object from the credentials
// stored in the current context.
func LedgerFromContextCredentials(
	ctx context.Context,
) (*Ledger, error) {
	c := GetCredentials(ctx)
	if c == nil {
		return nil, errors.Trace(
			errors.Newf("Not logged in (see `ledger login`)"))
	}
	return &Ledger{
		Host:        c.Host,
		Credentials: c,
	}, nil
}

// LedgerForHost returns an unauthenticated ledger object for the provided
// host (used before registration).
func LedgerForHost(
	ctx context.Context,
	host string,
) *Ledger {
	return &Ledger{
		Host: host,
	}
}

// Post performs a POST request to the ledger.
func (m *Ledger) Post(
	ctx context.Context,
	path string,
	params url.Values,
) (*int, *svc.Resp, error) {
	req, err := http.NewRequest("POST",
		ledger.FullLedgerURL(ctx, m.Host, path, nil).String(),
		strings.NewReader(params.Encode()))
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req.Header.Add("Ledger-Protocol-Version", ledger.ProtocolVersion)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if m.Credentials != nil {
		req.SetBasicAuth(m.Credentials.Username, m.Credentials.Password)
	}

	r, err := getDefaultHTTPClient(ctx).Do(req)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	defer r.Body.Close()

	var raw svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, nil, errors.Trace(err)
	}

	return &r.StatusCode, &raw, nil
}

// Delete performs a DELETE request to the ledger.
func (m *Ledger) Delete(
	ctx context.Context,
	path string,
) (*int, *svc.Resp, error) {
	req, err := http.NewRequest("DELETE",
		ledger.FullLedgerURL(ctx, m.Host, path, nil).String(), nil)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req.Header.Add("Ledger-Protocol-Version", ledger.ProtocolVersion)
	if m.Credentials != nil {
		req.SetBasicAuth(m.Credentials.Username, m.Credentials.Password)
	}

	r, err := getDefaultHTTPClient(ctx).Do(req)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	defer r.Body.Close()

	var raw svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, nil, errors.Trace(err)
	}

	return &r.StatusCode, &raw, nil
}

// Get performs a GET request to the ledger.
func (m *Ledger) Get(
	ctx context.Context,
	path string,
) (*int, *svc.Resp, error) {
	req, err := http.NewRequest("GET",
		ledger.FullLedgerURL(ctx, m.Host, path, nil).String(), nil)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req.Header.Add("Ledger-Protocol-Version", ledger.ProtocolVersion)
	if m.Credentials != nil {
		req.SetBasicAuth(m.Credentials.Username, m.Credentials.Password)
	}

	r, err := getDefaultHTTPClient(ctx).Do(req)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	defer r.Body.Close()

	var raw svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, nil, errors.Trace(err)
	}

	return &r.StatusCode, &raw, nil
}
