package audit

import (
	"log/slog"
	"sync"

	"github.com/okanv/sitelint/internal/model"
)

// Penalties applied per finding. Zero-penalty issues are surfaced for
// operator attention without affecting the score.
const (
	penaltyMissingH1        = -5
	penaltyMultipleH1       = -2
	penaltyMissingSchema    = -2
	penaltyAbsoluteInternal = -2
	penaltyHTMLExtension    = -2
	penaltyRelativePath     = -2
	penaltyDeadLink         = -10
	penaltyOrphan           = -5
	penaltyExternalDead     = -5
	penaltyMissingNoopener  = -2
)

const initialScore = 100

// Collector accumulates issues in insertion order and applies penalties to
// the running score as they are recorded. Safe for concurrent use: external
// check workers complete in parallel.
type Collector struct {
	log *slog.Logger

	mu     sync.Mutex
	issues []model.Issue
	score  int
}

// NewCollector returns a Collector starting at the perfect score.
func NewCollector(log *slog.Logger) *Collector {
	return &Collector{log: log, score: initialScore}
}

// Add records a finding and applies its penalty. Each issue is also logged
// the moment it is found.
func (c *Collector) Add(level model.Level, message, context string, penalty int) {
	c.Record(model.Issue{Level: level, Message: message, Context: context, Penalty: penalty})
}

// Record appends a pre-built issue.
func (c *Collector) Record(issue model.Issue) {
	c.mu.Lock()
	c.issues = append(c.issues, issue)
	c.score += issue.Penalty
	c.mu.Unlock()

	attrs := []any{"context", issue.Context, "penalty", issue.Penalty}
	if issue.Level == model.LevelError {
		c.log.Error(issue.Message, attrs...)
	} else {
		c.log.Warn(issue.Message, attrs...)
	}
}

// Issues returns a copy of all recorded issues in insertion order.
func (c *Collector) Issues() []model.Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Issue, len(c.issues))
	copy(out, c.issues)
	return out
}

// Score returns the running total. It may be negative; flooring happens
// only when the final report is built.
func (c *Collector) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.score
}

// ExternalSet deduplicates external URLs across the whole site while
// preserving first-seen order. Every URL is checked at most once no matter
// how many documents reference it.
type ExternalSet struct {
	seen map[string]struct{}
	urls []string
}

// NewExternalSet returns an empty set.
func NewExternalSet() *ExternalSet {
	return &ExternalSet{seen: make(map[string]struct{})}
}

// Add inserts a URL unless it was seen before.
func (s *ExternalSet) Add(url string) {
	if _, ok := s.seen[url]; ok {
		return
	}
	s.seen[url] = struct{}{}
	s.urls = append(s.urls, url)
}

// URLs returns the unique URLs in first-seen order.
func (s *ExternalSet) URLs() []string {
	return s.urls
}

// Len returns the number of unique URLs.
func (s *ExternalSet) Len() int {
	return len(s.urls)
}
