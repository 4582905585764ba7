// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine computes catalog recommendations from observed
// interaction history. Five strategies (collaborative, content-based,
// item similarity, popularity, discovery) produce scored candidates over
// read-only snapshots of the catalog and interaction log; a hybrid
// merger combines them into a single ranked list.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

// ErrNotFound reports a missing seed item. It is the only error a
// recommendation entry point surfaces to callers; upstream store
// failures degrade to an empty result instead.
var ErrNotFound = errors.New("not found")

// ItemFilter restricts a catalog query. Zero-valued fields are ignored.
type ItemFilter struct {
	// MediaType restricts results to movies or shows.
	MediaType types.MediaType

	// Genres keeps only items whose genre set intersects this list.
	Genres []string

	// MinRating keeps only items with at least this average rating.
	MinRating float64

	// ExcludeIDs drops the listed item IDs.
	ExcludeIDs []string
}

// ItemCount pairs an item with an interaction count.
type ItemCount struct {
	ContentID string
	Count     int
}

// Catalog is the read-only catalog collaborator.
type Catalog interface {
	// ItemByID returns the item or nil when it does not exist.
	ItemByID(ctx context.Context, id string) (*types.ContentItem, error)

	// ItemsByIDs returns the items that exist, in no particular order.
	ItemsByIDs(ctx context.Context, ids []string) ([]types.ContentItem, error)

	// QueryItems returns up to limit items matching the filter, ordered
	// by average rating descending then ID ascending.
	QueryItems(ctx context.Context, filter ItemFilter, limit int) ([]types.ContentItem, error)

	// Genres returns every genre present in the catalog.
	Genres(ctx context.Context) ([]string, error)
}

// InteractionLog is the read-only interaction log collaborator.
type InteractionLog interface {
	// UserInteractions returns a user's interactions, oldest first.
	// With kinds set, only those interaction kinds are returned.
	UserInteractions(ctx context.Context, userID string, kinds ...types.InteractionKind) ([]types.InteractionRecord, error)

	// InteractionsForItems returns all interactions against the given
	// items, oldest first, optionally filtered by kind.
	InteractionsForItems(ctx context.Context, itemIDs []string, kinds ...types.InteractionKind) ([]types.InteractionRecord, error)

	// CountCompletedSince counts completed-status interactions for one
	// item since the given time.
	CountCompletedSince(ctx context.Context, itemID string, since time.Time) (int, error)

	// TopCompleted returns items ranked by completed-status count since
	// the given time, capped to limit.
	TopCompleted(ctx context.Context, since time.Time, limit int) ([]ItemCount, error)
}

// Strategy selects which scorer handles a request.
type Strategy string

const (
	// StrategyPersonalized blends collaborative and content-based scoring.
	StrategyPersonalized Strategy = "personalized"

	StrategyCollaborative Strategy = "collaborative"
	StrategyContentBased  Strategy = "content_based"
	StrategySimilar       Strategy = "similar"
	StrategyPopular       Strategy = "popular"
	StrategyDiscovery     Strategy = "discovery"
)

// Timeframe is a trailing window for popularity counting.
type Timeframe string

const (
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
	TimeframeAll   Timeframe = "all"
)

// Since returns the window start relative to now. The all timeframe
// returns the zero time.
func (t Timeframe) Since(now time.Time) time.Time {
	switch t {
	case TimeframeWeek:
		return now.AddDate(0, 0, -7)
	case TimeframeMonth:
		return now.AddDate(0, -1, 0)
	case TimeframeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// Options holds per-request parameters.
type Options struct {
	// UserID is the requesting user. Required for personalized,
	// collaborative, content-based, and discovery strategies.
	UserID string

	// SeedItemID is the "because you watched" seed. Required for the
	// similar strategy.
	SeedItemID string

	// Limit caps the result list (default 20).
	Limit int

	// Timeframe is the popularity counting window (default all).
	Timeframe Timeframe

	// ExcludeIDs drops the listed items regardless of score.
	ExcludeIDs []string

	// IncludeGenres, when set, keeps only items carrying at least one of
	// the listed genres.
	IncludeGenres []string
}

const defaultLimit = 20

func (o Options) limit() int {
	if o.Limit <= 0 {
		return defaultLimit
	}
	return o.Limit
}

// Engine scores recommendation candidates. It holds no mutable state:
// every request is an independent computation over the collaborators'
// current snapshots, so calls with identical snapshots produce identical
// output.
type Engine struct {
	catalog Catalog
	log     InteractionLog
	cfg     types.EngineConfig

	// now is the clock used for timeframe windows. Tests override it.
	now func() time.Time
}

// New creates an engine over the given collaborators. Zero-valued config
// fields take the documented defaults.
func New(catalog Catalog, log InteractionLog, cfg types.EngineConfig) *Engine {
	return &Engine{
		catalog: catalog,
		log:     log,
		cfg:     cfg.ApplyDefaults(),
		now:     time.Now,
	}
}

// Recommend dispatches a request to the strategy's scorer and returns a
// ranked candidate list. A missing seed item fails with ErrNotFound; any
// other dependency failure is reported as a warning on w and degrades to
// an empty result.
func (e *Engine) Recommend(ctx context.Context, strategy Strategy, opts Options, w io.Writer) ([]types.RecommendationCandidate, error) {
	cands, err := e.recommend(ctx, strategy, opts)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		fmt.Fprintf(w, "warning: %s scoring degraded: %v\n", strategy, err)
		return nil, nil
	}
	return cands, nil
}

func (e *Engine) recommend(ctx context.Context, strategy Strategy, opts Options) ([]types.RecommendationCandidate, error) {
	switch strategy {
	case StrategyPersonalized:
		return e.Personalized(ctx, opts)
	case StrategyCollaborative:
		return e.Collaborative(ctx, opts)
	case StrategyContentBased:
		return e.ContentBased(ctx, opts)
	case StrategySimilar:
		return e.Similar(ctx, opts)
	case StrategyPopular:
		return e.Popular(ctx, opts)
	case StrategyDiscovery:
		return e.Discovery(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// Personalized runs the collaborative and content-based scorers
// concurrently and merges their candidates. The two strategies have no
// ordering dependency; the merger's tie-break rules make the combined
// ranking independent of completion order.
func (e *Engine) Personalized(ctx context.Context, opts Options) ([]types.RecommendationCandidate, error) {
	if opts.UserID == "" {
		return nil, fmt.Errorf("personalized recommendations require a user ID")
	}

	type strategyResult struct {
		cands []types.RecommendationCandidate
		err   error
	}

	run := func(f func(context.Context, Options) ([]types.RecommendationCandidate, error), ch chan<- strategyResult) {
		cands, err := f(ctx, opts)
		ch <- strategyResult{cands: cands, err: err}
	}

	collabCh := make(chan strategyResult, 1)
	contentCh := make(chan strategyResult, 1)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); run(e.Collaborative, collabCh) }()
	go func() { defer wg.Done(); run(e.contentBasedBlended, contentCh) }()
	wg.Wait()

	collab := <-collabCh
	content := <-contentCh
	if collab.err != nil {
		return nil, collab.err
	}
	if content.err != nil {
		return nil, content.err
	}

	return Merge(opts.limit(), collab.cands, content.cands), nil
}

// seenByUser returns the set of item IDs the user has interacted with in
// any way, plus the request's explicit exclusions. Candidates must never
// include these.
func (e *Engine) seenByUser(ctx context.Context, opts Options) (map[string]bool, error) {
	seen := make(map[string]bool, len(opts.ExcludeIDs))
	for _, id := range opts.ExcludeIDs {
		seen[id] = true
	}
	if opts.UserID == "" {
		return seen, nil
	}

	recs, err := e.log.UserInteractions(ctx, opts.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetching interactions for %s: %w", opts.UserID, err)
	}
	for _, r := range recs {
		seen[r.ContentID] = true
	}
	return seen, nil
}

// excludeList flattens a seen set into the slice form catalog filters use.
func excludeList(seen map[string]bool) []string {
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids
}

// matchesGenres reports whether the item passes an include-genres filter.
// An empty filter matches everything.
func matchesGenres(item types.ContentItem, genres []string) bool {
	if len(genres) == 0 {
		return true
	}
	for _, g := range genres {
		if item.HasGenre(g) {
			return true
		}
	}
	return false
}
