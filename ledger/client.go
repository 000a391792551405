package ledger

import (
	"bytes"
	"context"
	"crypto/tls"
	"net/http"
	"net/url"
	"regexp"

	"github.com/Mkalbani/ManageAssets/lib/env"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
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

// Client exposes an interface to push data to services interested in this
// ledger (event observers).
type Client struct {
	httpClient *http.Client
}

// Init initializes the client.
func (c *Client) Init(
	ctx context.Context,
) error {
	c.httpClient = getDefaultHTTPClient(ctx)
	return nil
}

// PropagateEvent POSTs the event envelope to the specified observer URL. Any
// non 2XX status is treated as a delivery failure.
func (c *Client) PropagateEvent(
	ctx context.Context,
	event EventResource,
	observer string,
) error {
	body := format.JSON(event)
	req, err := http.NewRequest("POST", observer, bytes.NewReader(body.Bytes()))
	if err != nil {
		return errors.Trace(err)
	}

	req.Header.Add("Ledger-Protocol-Version", ProtocolVersion)
	req.Header.Set("Content-Type", "application/json")

	r, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Trace(err)
	}
	defer r.Body.Close()

	if r.StatusCode >= 300 {
		return errors.Trace(errors.Newf(
			"Observer %s responded with status: %d", observer, r.StatusCode))
	}

	return nil
}

// AddressRegexp is used to validate and parse fully qualified addresses of
// the form `username@ledger.host`.
var AddressRegexp = regexp.MustCompile(
	"^([a-zA-Z0-9\\-_.]{1,256})@([a-zA-Z0-9\\-.]+(:[0-9]+){0,1})$")

// UsernameAndLedgerHostFromAddress extracts the username and ledger host
// from a fully qualified address.
func UsernameAndLedgerHostFromAddress(
	ctx context.Context,
	address string,
) (string, string, error) {
	m := AddressRegexp.FindStringSubmatch(address)
	if len(m) == 0 {
		return "", "", errors.Trace(errors.Newf(
			"Invalid address: %s", address))
	}

	return m[1], m[2], nil
}

// FullLedgerURL constructs a fully qualified URL for the given ledger host
// and path. Ledgers are served over HTTPS in production (behind an SSL
// terminating proxy) and over HTTP in QA.
func FullLedgerURL(
	ctx context.Context,
	host string,
	path string,
	query url.Values,
) *url.URL {
	scheme := "https"
	if env.Get(ctx).Environment == env.QA {
		scheme = "http"
	}
	url := url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     path,
		RawQuery: query.Encode(),
	}
	return &url
}
