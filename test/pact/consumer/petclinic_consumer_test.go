//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-petclinic-server/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type ownerDetailsPayload struct {
	View  string `json:"view"`
	Owner struct {
		ID        int64  `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		City      string `json:"city"`
		Pets      []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"pets"`
	} `json:"owner"`
}

type petFormResult struct {
	Saved    bool
	Location string
	Errors   map[string][]struct {
		Field string `json:"field"`
		Code  string `json:"code"`
	}
}

type vetPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestOwnerPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	formContentType := "application/x-www-form-urlencoded"
	ownerLocation := matchers.Regex("/owners/2", "\\/owners\\/\\d+")

	pact.AddInteraction().
		Given(pacttest.StateOwnersBaseline).
		UponReceiving("a request to register a new owner").
		WithRequest("POST", "/owners/new", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S(formContentType))
			b.Body(formContentType, []byte(pacttest.ExampleOwnerForm().Encode()))
		}).
		WillRespondWith(http.StatusFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Location", ownerLocation)
		})

	pact.AddInteraction().
		Given(pacttest.StateOwnerExists).
		UponReceiving("a request to fetch an existing owner").
		WithRequest("GET", fmt.Sprintf("/owners/%d", pacttest.ExistingOwnerID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"view": matchers.S("owners/ownerDetails"),
				"owner": matchers.Map{
					"id":        matchers.Like(pacttest.ExistingOwnerID),
					"firstName": matchers.Like("George"),
					"lastName":  matchers.Like("Franklin"),
					"city":      matchers.Like("Madison"),
					"pets": matchers.ArrayMinLike(matchers.Map{
						"id":   matchers.Like(1),
						"name": matchers.Like(pacttest.ExistingPetName),
					}, 1),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOwnerMissing).
		UponReceiving("a request for a missing owner").
		WithRequest("GET", fmt.Sprintf("/owners/%d", pacttest.MissingOwnerID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOwnerExists).
		UponReceiving("a pet registration that duplicates an existing name").
		WithRequest("POST", fmt.Sprintf("/owners/%d/pets/new", pacttest.ExistingOwnerID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S(formContentType))
			b.Body(formContentType, []byte(pacttest.DuplicatePetForm().Encode()))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"view": matchers.S("pets/createOrUpdatePetForm"),
				"errors": matchers.Map{
					"pet": matchers.ArrayMinLike(matchers.Map{
						"field": matchers.S("name"),
						"code":  matchers.S("duplicate"),
					}, 1),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateVetsSeeded).
		UponReceiving("a request for the vet roster").
		WithRequest("GET", "/vets").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"vetList": matchers.ArrayMinLike(matchers.Map{
					"firstName": matchers.Like("James"),
					"lastName":  matchers.Like("Carter"),
				}, 1),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newOwnerPortalClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		location, err := client.RegisterOwner(ctx, pacttest.ExampleOwnerForm())
		if err != nil {
			return fmt.Errorf("register owner: %w", err)
		}
		if !strings.HasPrefix(location, "/owners/") {
			return fmt.Errorf("expected owner redirect, got %q", location)
		}

		owner, err := client.GetOwner(ctx, pacttest.ExistingOwnerID)
		if err != nil {
			return fmt.Errorf("get owner: %w", err)
		}
		if owner.Owner.ID != pacttest.ExistingOwnerID || len(owner.Owner.Pets) == 0 {
			return fmt.Errorf("expected owner %d with pets, got %+v", pacttest.ExistingOwnerID, owner)
		}

		if _, err := client.GetOwner(ctx, pacttest.MissingOwnerID); err == nil {
			return fmt.Errorf("expected 404 for owner %d", pacttest.MissingOwnerID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		rejected, err := client.RegisterPet(ctx, pacttest.ExistingOwnerID, pacttest.DuplicatePetForm())
		if err != nil {
			return fmt.Errorf("register pet: %w", err)
		}
		if rejected.Saved {
			return fmt.Errorf("expected duplicate pet registration to be rejected")
		}
		if len(rejected.Errors["pet"]) == 0 || rejected.Errors["pet"][0].Code != "duplicate" {
			return fmt.Errorf("expected duplicate error on pet name, got %+v", rejected.Errors)
		}

		vets, err := client.ListVets(ctx)
		if err != nil {
			return fmt.Errorf("list vets: %w", err)
		}
		if len(vets) == 0 {
			return fmt.Errorf("expected at least one vet in the roster")
		}

		return nil
	})
	require.NoError(t, err)
}

type ownerPortalClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOwnerPortalClient(config pactconsumer.MockServerConfig) *ownerPortalClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{
		Transport: transport,
		Timeout:   10 * time.Second,
		// Redirects carry the saved owner location, keep them observable.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &ownerPortalClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *ownerPortalClient) RegisterOwner(ctx context.Context, form url.Values) (string, error) {
	res, err := c.postForm(ctx, c.baseURL+"/owners/new", form)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return "", decodeAPIError(res)
	}
	if res.StatusCode != http.StatusFound {
		return "", fmt.Errorf("expected redirect, got status %d", res.StatusCode)
	}
	return res.Header.Get("Location"), nil
}

func (c *ownerPortalClient) GetOwner(ctx context.Context, id int64) (*ownerDetailsPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/owners/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload ownerDetailsPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *ownerPortalClient) RegisterPet(ctx context.Context, ownerID int64, form url.Values) (*petFormResult, error) {
	res, err := c.postForm(ctx, fmt.Sprintf("%s/owners/%d/pets/new", c.baseURL, ownerID), form)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}
	if res.StatusCode == http.StatusFound {
		return &petFormResult{Saved: true, Location: res.Header.Get("Location")}, nil
	}

	result := &petFormResult{}
	if err := json.NewDecoder(res.Body).Decode(result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *ownerPortalClient) ListVets(ctx context.Context) ([]vetPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/vets", nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload struct {
		VetList []vetPayload `json:"vetList"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.VetList, nil
}

func (c *ownerPortalClient) postForm(ctx context.Context, target string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.httpClient.Do(req)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
