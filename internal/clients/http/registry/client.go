package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RegistrationPayload is the wire shape accepted by the pet registry.
type RegistrationPayload struct {
	OwnerID   int64  `json:"ownerId"`
	PetID     int64  `json:"petId"`
	OwnerName string `json:"ownerName"`
	PetName   string `json:"petName"`
	PetType   string `json:"petType,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

// registryError is the error body the registry returns on failures.
type registryError struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Client calls the pet registry over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewRegistryClient instantiates the registry client with sane defaults.
func NewRegistryClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("registry base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse registry base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}, nil
}

// RegisterPet pushes the registration to the registry API. The registry
// answers 200 for repeated registrations of the same pet, so the call is safe
// to retry.
func (c *Client) RegisterPet(ctx context.Context, payload RegistrationPayload) error {
	if c == nil || c.httpClient == nil {
		return errors.New("registry client not configured")
	}
	if payload.PetID == 0 {
		return errors.New("registry pet id is required")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode registration: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/registrations", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build registry request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call registry API: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		return nil
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("registry API error: %s", errorMessage(resp))
	default:
		return fmt.Errorf("registry API unexpected status: %s", resp.Status)
	}
}

func errorMessage(resp *http.Response) string {
	var body registryError
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(body.Status); msg != "" {
			return msg
		}
	}
	return resp.Status
}
