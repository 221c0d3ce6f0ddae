package audit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	checkerUserAgent = "sitelint/1.0 (+https://github.com/okanv/sitelint)"
	maxRedirects     = 5
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
)

// Probe is the outcome of checking one external URL. Exactly one of
// StatusCode and Err is meaningful: Err marks a transport-level failure.
type Probe struct {
	URL        string
	StatusCode int
	Err        error
}

// Checker validates external link liveness with bounded concurrency. Probes
// use HEAD semantics with redirects followed, falling back to GET for the
// servers that reject HEAD outright.
type Checker struct {
	client      *http.Client
	concurrency int
}

// NewChecker returns a Checker with the given worker pool size and
// per-probe timeout. With blockPrivate set, probes to loopback, private,
// and otherwise reserved addresses are refused at dial time.
func NewChecker(concurrency int, timeout time.Duration, blockPrivate bool) *Checker {
	transport := &http.Transport{
		MaxConnsPerHost:     concurrency,
		MaxIdleConnsPerHost: concurrency,
		IdleConnTimeout:     90 * time.Second,
	}
	if blockPrivate {
		transport.DialContext = guardedDialer().DialContext
	}
	return newChecker(concurrency, timeout, transport)
}

func newChecker(concurrency int, timeout time.Duration, transport http.RoundTripper) *Checker {
	return &Checker{
		concurrency: concurrency,
		client: &http.Client{
			Timeout:       timeout,
			Transport:     transport,
			CheckRedirect: redirectPolicy,
		},
	}
}

// redirectPolicy follows redirect chains up to maxRedirects and refuses to
// leave http(s).
func redirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
	}
	return nil
}

// Check probes every URL through a bounded worker pool and drains results
// as they complete. A failed probe never blocks or cancels its siblings.
// The returned slice holds one Probe per input, sorted by URL so two runs
// over the same set report identically regardless of completion order.
func (c *Checker) Check(ctx context.Context, urls []string) []Probe {
	if len(urls) == 0 {
		return nil
	}

	results := make(chan Probe, len(urls))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for _, u := range urls {
		u := u
		g.Go(func() error {
			results <- c.probe(ctx, u)
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	probes := make([]Probe, 0, len(urls))
	for p := range results {
		probes = append(probes, p)
	}
	sort.Slice(probes, func(i, j int) bool { return probes[i].URL < probes[j].URL })
	return probes
}

func (c *Checker) probe(ctx context.Context, url string) Probe {
	status, err := c.request(ctx, http.MethodHead, url)
	if err != nil {
		return Probe{URL: url, Err: err}
	}

	// Some servers reject HEAD while serving GET fine; retry before
	// declaring the link dead.
	if status == http.StatusForbidden || status == http.StatusMethodNotAllowed {
		if getStatus, getErr := c.request(ctx, http.MethodGet, url); getErr == nil {
			status = getStatus
		}
	}

	return Probe{URL: url, StatusCode: status}
}

func (c *Checker) request(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", checkerUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, nil
}
