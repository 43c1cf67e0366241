package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/sireesha-siri/geotag-plants/internal/client/models"
	"github.com/sireesha-siri/geotag-plants/internal/client/syncerr"
	"github.com/sireesha-siri/geotag-plants/internal/common"
)

// RetryPolicy configures transport-level retries. Only idempotent calls and
// network-level failures are retried; remote rejections are final.
type RetryPolicy struct {
	MaxAttempts uint64
	BaseDelay   time.Duration
}

// DefaultRetryPolicy retries twice on top of the original attempt with
// exponential backoff starting at 200ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 2, BaseDelay: 200 * time.Millisecond}
}

// HTTPClient talks JSON over HTTP(S) to the plant-data service. All
// responses share the {success, message, data} envelope.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	retry        RetryPolicy
	accessToken  string
	refreshToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration, policy RetryPolicy) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		retry:   policy,
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// call performs one request/response round trip and decodes the envelope
// data into out (when out is non-nil).
func (c *HTTPClient) call(ctx context.Context, method, path string, body, out any, authed bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed && c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return syncerr.Unreachable(method+" "+path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return syncerr.Unreachable(method+" "+path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && authed {
		return syncerr.Rejected(method+" "+path, common.ErrTokenExpired)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return syncerr.Rejected(method+" "+path, fmt.Errorf("malformed response: %w", err))
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		return syncerr.Rejected(method+" "+path, errors.New(msg))
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return syncerr.Rejected(method+" "+path, fmt.Errorf("malformed data: %w", err))
		}
	}
	return nil
}

// authedCall runs call and, on an expired access token, refreshes the token
// pair once and repeats the request.
func (c *HTTPClient) authedCall(ctx context.Context, method, path string, body, out any) error {
	err := c.call(ctx, method, path, body, out, true)
	if err == nil || !errors.Is(err, common.ErrTokenExpired) || c.refreshToken == "" {
		return err
	}

	var pair tokenPair
	if rerr := c.call(ctx, http.MethodPost, "/api/v1/auth/refresh",
		map[string]string{"refreshToken": c.refreshToken}, &pair, false); rerr != nil {
		return err
	}
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken

	return c.call(ctx, method, path, body, out, true)
}

// getWithRetry wraps an idempotent GET with the configured backoff. Only
// unreachable-kind failures are retried.
func (c *HTTPClient) getWithRetry(ctx context.Context, path string, out any) error {
	backoff := retry.WithMaxRetries(c.retry.MaxAttempts, retry.NewExponential(c.retry.BaseDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.authedCall(ctx, http.MethodGet, path, nil, out)
		if syncerr.IsUnreachable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	return c.call(ctx, http.MethodPost, "/api/v1/auth/register",
		credentials{Username: username, Password: password}, nil, false)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	var pair tokenPair
	err := c.call(ctx, http.MethodPost, "/api/v1/auth/login",
		credentials{Username: username, Password: password}, &pair, false)
	if err != nil {
		return err
	}
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/api/v1/health", nil, nil, false)
}

func (c *HTTPClient) FetchPlants(ctx context.Context) ([]models.PlantRecord, error) {
	var records []models.PlantRecord
	if err := c.getWithRetry(ctx, "/api/v1/plants", &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.PlantRecord{}
	}
	return records, nil
}

func (c *HTTPClient) SavePlant(ctx context.Context, draft models.PlantDraft) (*models.PlantRecord, error) {
	var record models.PlantRecord
	if err := c.authedCall(ctx, http.MethodPost, "/api/v1/plants", draft, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *HTTPClient) DeletePlant(ctx context.Context, id string) error {
	return c.authedCall(ctx, http.MethodDelete, "/api/v1/plants/"+id, nil, nil)
}

func (c *HTTPClient) ExtractCoordinates(ctx context.Context, imageName, imageURL string) (float64, float64, error) {
	var coords struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	err := c.authedCall(ctx, http.MethodPost, "/api/v1/plants/coordinates",
		map[string]string{"imageName": imageName, "imageUrl": imageURL}, &coords)
	if err != nil {
		return 0, 0, err
	}
	return coords.Latitude, coords.Longitude, nil
}

func (c *HTTPClient) PresignUpload(ctx context.Context, fileName string) (string, string, error) {
	var out struct {
		UploadURL string `json:"uploadUrl"`
		PublicURL string `json:"publicUrl"`
	}
	err := c.authedCall(ctx, http.MethodPost, "/api/v1/uploads/presign",
		map[string]string{"fileName": fileName}, &out)
	if err != nil {
		return "", "", err
	}
	return out.UploadURL, out.PublicURL, nil
}
