package striperepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bookstore/util/httpx"
)

const baseURL = "https://api.stripe.com/v1"

type httpRepo struct {
	apiKey string
	base   string
	client *http.Client
}

func NewHTTP(apiKey string) Repo {
	return &httpRepo{apiKey: apiKey, base: baseURL, client: httpx.Client()}
}

// NewHTTPWithBase points the client at a different endpoint, for tests.
func NewHTTPWithBase(apiKey, base string) Repo {
	return &httpRepo{apiKey: apiKey, base: base, client: httpx.Client()}
}

type intentPayload struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

func (r *httpRepo) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.base+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return r.do(req)
}

func (r *httpRepo) GetIntent(ctx context.Context, id string) (*Intent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		r.base+"/payment_intents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	return r.do(req)
}

func (r *httpRepo) do(req *http.Request) (*Intent, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe %s %s failed: %s", req.Method, req.URL.Path, resp.Status)
	}

	var out intentPayload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("stripe: empty intent id")
	}
	return &Intent{
		ID:           out.ID,
		ClientSecret: out.ClientSecret,
		Status:       out.Status,
		Amount:       out.Amount,
		Currency:     out.Currency,
	}, nil
}
