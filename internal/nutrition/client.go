package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/2beens/fitxp/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultBaseURL = "https://trackapi.nutritionix.com/v2"

	MaxSearchHits = 25

	cacheExpireSeconds = int((6 * time.Hour) / time.Second)
)

var (
	ErrMissingCredentials = errors.New("nutritionix credentials missing")
	ErrUpstream           = errors.New("nutritionix request failed")
)

// FoodHit is one search result, normalized from a common or branded food.
type FoodHit struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand,omitempty"`
	Calories    int      `json:"calories"`
	Protein     *float64 `json:"protein,omitempty"`
	Carbs       *float64 `json:"carbs,omitempty"`
	Fat         *float64 `json:"fat,omitempty"`
	ServingQty  *float64 `json:"servingQty,omitempty"`
	ServingUnit string   `json:"servingUnit,omitempty"`
	NixItemID   string   `json:"nixItemId,omitempty"`
}

type nixFood struct {
	FoodName          string   `json:"food_name"`
	BrandNameItemName string   `json:"brand_name_item_name"`
	BrandName         string   `json:"brand_name"`
	Calories          *float64 `json:"nf_calories"`
	Protein           *float64 `json:"nf_protein"`
	Carbs             *float64 `json:"nf_total_carbohydrate"`
	Fat               *float64 `json:"nf_total_fat"`
	ServingQty        *float64 `json:"serving_qty"`
	ServingUnit       string   `json:"serving_unit"`
	NixItemID         string   `json:"nix_item_id"`
}

type instantResponse struct {
	Common  []nixFood `json:"common"`
	Branded []nixFood `json:"branded"`
}

type nutrientsResponse struct {
	Foods []nixFood `json:"foods"`
}

func (f nixFood) toHit() FoodHit {
	name := f.FoodName
	if name == "" {
		name = f.BrandNameItemName
	}
	var calories int
	if f.Calories != nil {
		calories = int(math.Round(*f.Calories))
	}
	return FoodHit{
		Name:        name,
		Brand:       f.BrandName,
		Calories:    calories,
		Protein:     f.Protein,
		Carbs:       f.Carbs,
		Fat:         f.Fat,
		ServingQty:  f.ServingQty,
		ServingUnit: f.ServingUnit,
		NixItemID:   f.NixItemID,
	}
}

// Client talks to the Nutritionix v2 API. Search results are cached by query.
type Client struct {
	baseURL    string
	appID      string
	apiKey     string
	httpClient *http.Client
	cache      *freecache.Cache
}

func NewClient(baseURL, appID, apiKey string, cacheSizeMB int, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cacheSizeMB <= 0 {
		cacheSizeMB = 10
	}
	megabyte := 1024 * 1024
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		appID:      appID,
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      freecache.NewCache(cacheSizeMB * megabyte),
	}
}

// Search runs an instant search and returns common foods first, then branded
// ones, at most MaxSearchHits in total. A blank query returns no hits.
func (c *Client) Search(ctx context.Context, query string) (_ []FoodHit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutrition.client.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		return []FoodHit{}, nil
	}
	span.SetAttributes(attribute.String("query", query))

	cacheKey := []byte("search::" + strings.ToLower(query))
	if cached, err := c.cache.Get(cacheKey); err == nil {
		var hits []FoodHit
		if err := json.Unmarshal(cached, &hits); err == nil {
			log.Tracef("nutrition search for [%s] found in cache", query)
			return hits, nil
		} else {
			log.Errorf("unmarshal cached nutrition search for [%s]: %s", query, err)
		}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("detailed", "true")
	params.Set("branded", "true")
	params.Set("common", "true")

	var resp instantResponse
	if err := c.do(ctx, http.MethodGet, "/search/instant?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	hits := make([]FoodHit, 0, min(MaxSearchHits, len(resp.Common)+len(resp.Branded)))
	for _, f := range append(resp.Common, resp.Branded...) {
		if len(hits) == MaxSearchHits {
			break
		}
		hits = append(hits, f.toHit())
	}

	if hitsBytes, err := json.Marshal(hits); err == nil {
		if err := c.cache.Set(cacheKey, hitsBytes, cacheExpireSeconds); err != nil {
			log.Errorf("set nutrition search cache for [%s]: %s", query, err)
		}
	}

	return hits, nil
}

// Nutrients looks up nutrition for a free text food name. The result is nil
// when nothing matched.
func (c *Client) Nutrients(ctx context.Context, name string) (_ *FoodHit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutrition.client.nutrients")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	body, err := json.Marshal(map[string]string{"query": name})
	if err != nil {
		return nil, err
	}

	var resp nutrientsResponse
	if err := c.do(ctx, http.MethodPost, "/natural/nutrients", body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Foods) == 0 {
		return nil, nil
	}
	hit := resp.Foods[0].toHit()
	return &hit, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	if c.appID == "" || c.apiKey == "" {
		return ErrMissingCredentials
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("x-app-id", c.appID)
	req.Header.Set("x-app-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read nutritionix response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w (%d): %s", ErrUpstream, resp.StatusCode, string(respBytes))
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("unmarshal nutritionix response: %w", err)
	}
	return nil
}
