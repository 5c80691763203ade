package auth

import (
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// TokenEnvVar is the environment variable holding the Slack bearer token.
const TokenEnvVar = "SLACK_TOKEN"

// Credentials holds authentication information for the Slack API.
type Credentials struct {
	Token    string
	ProxyURL string
}

// FromEnv reads the bearer token from the environment. A .env file in the
// working directory is loaded first when present.
func FromEnv(proxyURL string) (*Credentials, error) {
	_ = godotenv.Load()

	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return nil, errors.Errorf("%s is not set", TokenEnvVar)
	}

	return &Credentials{
		Token:    token,
		ProxyURL: proxyURL,
	}, nil
}

// ConfigureHTTPClient configures an http.Client for API requests.
func (c *Credentials) ConfigureHTTPClient() (*http.Client, error) {
	transport := cleanhttp.DefaultPooledTransport()

	if c.ProxyURL != "" {
		proxy, err := url.Parse(c.ProxyURL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   30 * time.Second,
	}, nil
}
