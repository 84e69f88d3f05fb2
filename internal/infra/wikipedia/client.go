package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"options-quiz-service/internal/domain"
)

const (
	DefaultBaseURL = "https://en.wikipedia.org"
	DefaultTimeout = 5 * time.Second
)

// ErrNoArticle is returned when the search finds nothing for a company.
var ErrNoArticle = errors.New("no encyclopedia page found for this company")

// Client looks up the lead section of a company's encyclopedia article.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			PageID int64  `json:"pageid"`
			Title  string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Summary searches for "<name> company" and returns the plain-text intro of
// the first hit.
func (c *Client) Summary(ctx context.Context, companyName string) (domain.CompanySummary, error) {
	var search searchResponse
	err := c.query(ctx, url.Values{
		"list":     {"search"},
		"srsearch": {companyName + " company"},
	}, &search)
	if err != nil {
		return domain.CompanySummary{}, err
	}
	if len(search.Query.Search) == 0 {
		return domain.CompanySummary{}, ErrNoArticle
	}
	pageID := strconv.FormatInt(search.Query.Search[0].PageID, 10)

	var extract extractResponse
	err = c.query(ctx, url.Values{
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"pageids":     {pageID},
	}, &extract)
	if err != nil {
		return domain.CompanySummary{}, err
	}
	page, ok := extract.Query.Pages[pageID]
	if !ok {
		return domain.CompanySummary{}, ErrNoArticle
	}
	return domain.CompanySummary{
		Title:   page.Title,
		Extract: page.Extract,
		URL:     c.baseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(page.Title, " ", "_")),
	}, nil
}

func (c *Client) query(ctx context.Context, params url.Values, out any) error {
	params.Set("action", "query")
	params.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/w/api.php?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: encyclopedia returned %d", domain.ErrUpstream, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", domain.ErrUpstream, err)
	}
	return nil
}
