package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// DiscoveryDocument holds the fields of /.well-known/openid-configuration we use.
type DiscoveryDocument struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

// OIDCClient reads the discovery document of an OpenID Connect issuer.
type OIDCClient struct {
	IssuerURL  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewOIDCClient(issuerURL string, log *zap.Logger) *OIDCClient {
	return &OIDCClient{
		IssuerURL: strings.TrimSuffix(issuerURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Logger: log,
	}
}

// Discover fetches the discovery document and checks it names a JWKS endpoint.
func (c *OIDCClient) Discover(ctx context.Context) (*DiscoveryDocument, error) {
	endpoint := c.IssuerURL + "/.well-known/openid-configuration"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.Logger.Error("openid discovery failed",
			zap.String("endpoint", endpoint),
			zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var doc DiscoveryDocument
	if err := sonic.Unmarshal(respBody, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if doc.JWKSURI == "" {
		return nil, errors.New("jwks_uri not found in openid configuration")
	}
	return &doc, nil
}
