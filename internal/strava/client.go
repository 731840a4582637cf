package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://www.strava.com/api/v3"

// Doer is the minimal HTTP client surface the client depends on.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// API is the slice of the provider consumed by the fetch and read paths.
type API interface {
	ListActivities(ctx context.Context, after int64, page, perPage int) ([]Activity, error)
	ActivityLatLngStream(ctx context.Context, id int64) (*LatLngStream, error)
}

// Error is a non-2xx answer from the provider.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("strava: upstream status %d: %s", e.Status, e.Body)
}

// Retryable reports whether a later attempt may succeed. Rate limits,
// timeouts and server errors are transient; auth and not-found are not.
func (e *Error) Retryable() bool {
	switch {
	case e.Status == http.StatusTooManyRequests:
		return true
	case e.Status == http.StatusRequestTimeout:
		return true
	case e.Status >= 500:
		return true
	}
	return false
}

type Client struct {
	baseURL string
	token   string
	http    Doer
	limiter *rate.Limiter
	timeout time.Duration
}

// NewClient builds a provider client gated at rps requests per second, with
// every call bounded by timeout.
func NewClient(baseURL, token string, rps float64, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		timeout: timeout,
	}
}

// ListActivities returns one page of the athlete's activities created after
// the given unix timestamp, oldest page ordering as decided by the upstream.
func (c *Client) ListActivities(ctx context.Context, after int64, page, perPage int) ([]Activity, error) {
	q := url.Values{}
	q.Set("after", strconv.FormatInt(after, 10))
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var activities []Activity
	if err := c.get(ctx, "/athlete/activities", q, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

type streamEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ActivityLatLngStream fetches the low-resolution stream set for an activity
// and keeps only the latlng member. The upstream delivers the latlng stream
// alongside a distance stream; the rest is dropped to keep cached traces
// small. A (nil, nil) return means the activity carries no GPS trace.
func (c *Client) ActivityLatLngStream(ctx context.Context, id int64) (*LatLngStream, error) {
	q := url.Values{}
	q.Set("keys", "latlng")
	q.Set("resolution", "low")

	var streams []streamEnvelope
	if err := c.get(ctx, "/activities/"+strconv.FormatInt(id, 10)+"/streams", q, &streams); err != nil {
		return nil, err
	}

	for _, s := range streams {
		if s.Type != "latlng" {
			continue
		}
		var data [][2]float64
		if err := json.Unmarshal(s.Data, &data); err != nil {
			return nil, fmt.Errorf("strava: decode latlng stream for activity %d: %w", id, err)
		}
		return &LatLngStream{Type: "latlng", Data: data}, nil
	}
	return nil, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Error{Status: resp.StatusCode, Body: string(body)}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
