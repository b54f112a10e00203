package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ClientConfig configures the HTTP directory client.
type ClientConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// Client calls the customer directory's resolve endpoint. Calls are wrapped
// in a circuit breaker so a degraded directory fails fast instead of holding
// registration requests for the full timeout.
type Client struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	baseURL    string
	apiKey     string
	log        *zap.Logger
}

type resolveRequest struct {
	RegistrationToken string `json:"registrationToken"`
}

func NewClient(cfg ClientConfig, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	httpClient := resty.New().SetTimeout(timeout)

	cbSettings := gobreaker.Settings{
		Name:    "customer-directory",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("directory circuit breaker state change",
				zap.String("cb_name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Client{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		log:        log.Named("directory.client"),
	}
}

// Resolve exchanges regToken for a customer identity. A rejected token maps
// to ErrTokenRejected; transport and 5xx failures count against the breaker.
func (c *Client) Resolve(ctx context.Context, regToken string) (ResolvedCustomer, error) {
	result, err := c.cb.Execute(func() (any, error) {
		req := c.httpClient.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(resolveRequest{RegistrationToken: regToken})
		if c.apiKey != "" {
			req.SetHeader("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := req.Post(c.baseURL + "/v1/customers/resolve")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		status := resp.StatusCode()
		if status >= 500 {
			return nil, fmt.Errorf("%w: status %d", ErrUnavailable, status)
		}
		if status != 200 {
			// Token rejections are terminal; they must not trip the breaker.
			return ErrTokenRejected, nil
		}

		return resp.Body(), nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return ResolvedCustomer{}, ErrUnavailable
		}
		return ResolvedCustomer{}, err
	}

	if rejectErr, ok := result.(error); ok {
		return ResolvedCustomer{}, rejectErr
	}

	body, ok := result.([]byte)
	if !ok {
		return ResolvedCustomer{}, ErrInvalidResponse
	}

	var resolved ResolvedCustomer
	if err := json.Unmarshal(body, &resolved); err != nil {
		return ResolvedCustomer{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if strings.TrimSpace(resolved.CustomerIdentifier) == "" {
		return ResolvedCustomer{}, ErrInvalidResponse
	}

	return resolved, nil
}
