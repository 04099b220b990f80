package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"riddle-rush/internal/config"
	"riddle-rush/internal/constants"

	"github.com/valyala/fasthttp"
)

// PetScanClient queries the PetScan category-membership service for the
// members of a Wikipedia category. Results are cached per category for a
// fixed TTL to bound external call volume; concurrent callers may refetch
// around expiry, which only costs a duplicate request.
type PetScanClient struct {
	baseURL  string
	language string
	client   *fasthttp.Client

	cacheMu  sync.RWMutex
	cache    map[string]cachedMembers
	cacheTTL time.Duration
}

type cachedMembers struct {
	members   []string
	fetchedAt time.Time
}

func NewPetScanClient(cfg *config.Config) *PetScanClient {
	return &PetScanClient{
		baseURL:  cfg.PetScanBaseURL,
		language: cfg.PetScanLang,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		cache:    make(map[string]cachedMembers),
		cacheTTL: constants.PetScanCacheTTL,
	}
}

// CategoryMembers returns the page titles of the given category, stripped of
// Wikipedia disambiguation suffixes, excluding the category page itself.
func (c *PetScanClient) CategoryMembers(ctx context.Context, category string) ([]string, error) {
	if members, ok := c.cached(category); ok {
		return members, nil
	}

	params := url.Values{}
	params.Set("max_sitelink_count", "10")
	params.Set("categories", category)
	params.Set("project", "wikipedia")
	params.Set("language", c.language)
	params.Set("cb_labels_yes_l", "1")
	params.Set("edits[flagged]", "both")
	params.Set("edits[bots]", "both")
	params.Set("search_max_results", "100")
	params.Set("cb_labels_any_l", "1")
	params.Set("cb_labels_no_l", "1")
	params.Set("format", "json")
	params.Set("interface_language", c.language)
	params.Set("edits[anons]", "both")
	params.Set("ns[0]", "1")
	params.Set("doit", "")

	requestURL := strings.TrimSuffix(c.baseURL, "/") + "/?" + params.Encode()

	resp, err := doRequest[petScanResponse](ctx, c.client, requestURL)
	if err != nil {
		return nil, err
	}

	members := extractTitles(resp, category)
	c.store(category, members)
	return members, nil
}

func (c *PetScanClient) cached(category string) ([]string, bool) {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	entry, ok := c.cache[category]
	if !ok || time.Since(entry.fetchedAt) >= c.cacheTTL {
		return nil, false
	}
	return entry.members, true
}

func (c *PetScanClient) store(category string, members []string) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	c.cache[category] = cachedMembers{members: members, fetchedAt: time.Now()}
}

func doRequest[T any](ctx context.Context, client *fasthttp.Client, requestURL string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PetScan nests results as {"*":[{"a":{"*":[{"title":...}]}}]}.
type petScanResponse struct {
	Batches []petScanBatch `json:"*"`
}

type petScanBatch struct {
	A petScanPayload `json:"a"`
}

type petScanPayload struct {
	Entries []petScanEntry `json:"*"`
}

type petScanEntry struct {
	Title string `json:"title"`
}

// extractTitles flattens the first result batch into plain titles. Titles
// keep only the part before the first underscore, dropping disambiguation
// suffixes like "Berlin_(Begriffsklärung)".
func extractTitles(resp *petScanResponse, category string) []string {
	if resp == nil || len(resp.Batches) == 0 {
		return nil
	}

	var titles []string
	for _, entry := range resp.Batches[0].A.Entries {
		title, _, _ := strings.Cut(entry.Title, "_")
		if title == "" || title == category {
			continue
		}
		titles = append(titles, title)
	}
	return titles
}
