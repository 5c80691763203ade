package slack

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"slackexport/internal/auth"
)

// DefaultBaseURL is the production Slack API root.
const DefaultBaseURL = "https://slack.com/api"

// Client is a read-only Slack API client.
type Client struct {
	credentials *auth.Credentials
	httpClient  *http.Client
	baseURL     string
}

// NewClient creates a new Slack client.
func NewClient(credentials *auth.Credentials) (*Client, error) {
	httpClient, err := credentials.ConfigureHTTPClient()
	if err != nil {
		return nil, errors.Wrap(err, "failed to configure HTTP client")
	}

	return &Client{
		credentials: credentials,
		httpClient:  httpClient,
		baseURL:     DefaultBaseURL,
	}, nil
}

// makeRequest calls one API method and decodes the response into out.
// A response with ok:false is an error regardless of the HTTP status.
func (c *Client) makeRequest(method string, params url.Values, out interface{}) error {
	req, err := c.createRequest(method, params)
	if err != nil {
		return err
	}

	logrus.WithField("method", method).Debug("calling Slack API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s request failed", method)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s response", method)
	}

	var envelope struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", method)
	}
	if !envelope.OK {
		if envelope.Error == "" {
			envelope.Error = "unknown error"
		}
		return errors.Errorf("%s failed: %s", method, envelope.Error)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return errors.Wrapf(err, "failed to decode %s response", method)
		}
	}

	return nil
}

// createRequest creates an HTTP request with appropriate headers.
func (c *Client) createRequest(method string, params url.Values) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/"+method, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.credentials.Token)

	return req, nil
}
