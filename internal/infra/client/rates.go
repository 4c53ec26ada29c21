package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
	"github.com/riwogerald/treasury-movement-simulator/internal/infra/resilience"
)

var tracer = otel.Tracer("client")

// RatesClient fetches exchange rates from an external rate feed. The
// built-in rate table stays authoritative when no feed is configured.
type RatesClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	bulkhead   *resilience.Bulkhead
}

// NewRatesClient creates a new RatesClient.
func NewRatesClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *RatesClient {
	return &RatesClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
	}
}

// FetchRates fetches the current rate sheet with retry, circuit breaker,
// and tracing.
func (c *RatesClient) FetchRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	ctx, span := tracer.Start(ctx, "RatesClient.FetchRates")
	defer span.End()
	span.SetAttributes(attribute.String("rates.url", c.baseURL))

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, &domain.ErrExternalService{Service: "rates", Err: err}
	}
	defer c.bulkhead.Release()

	var rates []domain.ExchangeRate

	result, err := c.cb.Execute(func() (any, error) {
		innerErr := resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			url := fmt.Sprintf("%s/v1/rates", c.baseURL)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("rates API returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&rates)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return rates, nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "rates", Err: err}
	}

	return result.([]domain.ExchangeRate), nil
}
