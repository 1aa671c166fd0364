// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package hasura provides the HTTP client for the remote GraphQL service that
acts as the system of record for every library entity.

Core Responsibilities:

  - Transport: POSTs {query, variables} documents and decodes the standard
    {data, errors} GraphQL envelope.
  - Authentication: Sends the static admin secret on every request.
  - Throttling: A client-side token bucket keeps the server from hammering
    the hosted upstream under bursty dashboard traffic.

Failed calls surface as [apperr.UpstreamUnavailable] so callers can tell an
upstream outage apart from an empty result set. No retries are attempted:
every call happens inside an interactive HTTP request where a second attempt
only doubles the user-visible latency.
*/
package hasura

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/constants"
)

const adminSecretHeader = "x-hasura-admin-secret"

// Client executes GraphQL documents against the upstream service.
type Client struct {
	endpoint    string
	adminSecret string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient constructs a ready-to-use upstream client.
func NewClient(endpoint, adminSecret string, logger *slog.Logger) *Client {
	return &Client{
		endpoint:    endpoint,
		adminSecret: adminSecret,
		rateLimiter: rate.NewLimiter(rate.Limit(constants.UpstreamRateLimitRPS), constants.UpstreamRateLimitBurst),
		logger:      logger,
		httpClient: &http.Client{
			Timeout: constants.UpstreamRequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// # Wire Types

// graphQLRequest is the standard GraphQL POST body.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLResponse is the standard GraphQL response envelope.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// graphQLError is a single upstream-reported error.
type graphQLError struct {
	Message string `json:"message"`
}

// # Execution

/*
Run executes a GraphQL document and decodes the response data into target.

Parameters:
  - context: context.Context
  - query: string (GraphQL document)
  - variables: map[string]any (document variables, may be nil)
  - target: any (pointer the "data" object is unmarshalled into)

Returns:
  - error: apperr.UpstreamUnavailable on transport, HTTP, or GraphQL errors
*/
func (client *Client) Run(context context.Context, query string, variables map[string]any, target any) error {

	// Client-side throttle before touching the network
	if err := client.rateLimiter.Wait(context); err != nil {
		return apperr.UpstreamUnavailable(fmt.Errorf("hasura: rate limiter: %w", err))
	}

	// Encode the request document
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return apperr.Internal(fmt.Errorf("hasura: failed to marshal request: %w", err))
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, client.endpoint, bytes.NewReader(body))
	if err != nil {
		return apperr.Internal(fmt.Errorf("hasura: failed to build request: %w", err))
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set(adminSecretHeader, client.adminSecret)

	// Execute against the upstream
	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.UpstreamUnavailable(fmt.Errorf("hasura: request failed: %w", err))
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return apperr.UpstreamUnavailable(fmt.Errorf("hasura: failed to read response: %w", err))
	}

	if response.StatusCode != http.StatusOK {
		return apperr.UpstreamUnavailable(fmt.Errorf("hasura: HTTP %d: %s", response.StatusCode, truncate(responseBody, 512)))
	}

	// Decode the GraphQL envelope
	var envelope graphQLResponse
	if err := json.Unmarshal(responseBody, &envelope); err != nil {
		return apperr.UpstreamUnavailable(fmt.Errorf("hasura: malformed response: %w", err))
	}

	// GraphQL-level errors are upstream failures as far as callers care
	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return apperr.UpstreamUnavailable(fmt.Errorf("hasura: graphql errors: %s", strings.Join(messages, "; ")))
	}

	// Hydrate the caller's target from the "data" object
	if target != nil {
		if err := json.Unmarshal(envelope.Data, target); err != nil {
			return apperr.UpstreamUnavailable(fmt.Errorf("hasura: failed to decode data: %w", err))
		}
	}

	return nil
}

// Ping issues a minimal document to verify upstream reachability.
func (client *Client) Ping(context context.Context) error {
	var probe struct {
		Typename string `json:"__typename"`
	}
	return client.Run(context, `query { __typename }`, nil, &probe)
}

// truncate bounds upstream payloads quoted inside error causes.
func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
