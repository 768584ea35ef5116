package amazon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Jeffail/tunny"
	cerr "github.com/Semantics3/go-amazon-media/composable_error"
	"github.com/Semantics3/go-amazon-media/data"
	"github.com/Semantics3/go-amazon-media/sources"
	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs"
	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
	"github.com/Semantics3/go-amazon-media/stats"
	ctypes "github.com/Semantics3/go-amazon-media/types"
	"github.com/gomodule/redigo/redis"
	multierror "github.com/hashicorp/go-multierror"
)

const (
	rateLimitSource = "amazon"
	defaultMaxRetry = 10
)

type (
	// Options wires the collaborators of an Amazon lookup. Everything but
	// Client is optional.
	Options struct {
		Client *ecs.Client
		Store  data.Store
		Stats  *stats.Recorder
		// Redis holds the per-second rate limit shared across processes
		Redis *redis.Pool
		// Concurrency above 1 runs chunks through a worker pool
		Concurrency  int
		ChunkTimeout time.Duration
		MaxRetry     int
		Now          func() time.Time
	}

	// Amazon looks up ASINs in chunks and stores what it finds
	Amazon struct {
		client       *ecs.Client
		store        data.Store
		stats        *stats.Recorder
		redis        *redis.Pool
		concurrency  int
		chunkTimeout time.Duration
		maxRetry     int
		now          func() time.Time
	}

	chunkJob struct {
		index int
		ids   []string
	}

	chunkResult struct {
		items []*types.ProductItem
		// err fails the whole chunk, storeErrs only the affected items
		err       error
		storeErrs []error
	}
)

func New(opts Options) *Amazon {
	a := &Amazon{
		client:       opts.Client,
		store:        opts.Store,
		stats:        opts.Stats,
		redis:        opts.Redis,
		concurrency:  opts.Concurrency,
		chunkTimeout: opts.ChunkTimeout,
		maxRetry:     opts.MaxRetry,
		now:          opts.Now,
	}
	if a.maxRetry <= 0 {
		a.maxRetry = defaultMaxRetry
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// Store returns the configured store, nil when items are not persisted
func (a *Amazon) Store() data.Store {
	return a.store
}

// Lookup fetches ids from locale, at most ecs.MaxItemIDs per request, and
// returns the items keyed by ASIN. A configuration problem aborts the call
// with a nil map. Any other chunk failure is returned, combined, next to
// the items of the chunks that succeeded.
func (a *Amazon) Lookup(ctx context.Context, locale types.Locale, ids []string) (map[string]*types.ProductItem, error) {
	start := time.Now()
	res := make(map[string]*types.ProductItem)

	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			clean = append(clean, id)
		}
	}
	if len(clean) == 0 {
		return res, nil
	}

	chunks := ecs.ChunkIDs(clean, ecs.MaxItemIDs)
	results := a.runChunks(ctx, locale, chunks)

	var merr *multierror.Error
	failures := 0
	for i, r := range results {
		if r.err != nil {
			if cerr.IsKind(r.err, cerr.KindConfiguration) {
				log.Printf("AMAZON_LOOKUP_ABORTED: Locale: %s, Error: %v\n", locale, r.err)
				return nil, r.err
			}
			failures++
			merr = multierror.Append(merr, fmt.Errorf("chunk %d: %w", i+1, r.err))
		}
		for _, err := range r.storeErrs {
			merr = multierror.Append(merr, err)
		}
		for _, item := range r.items {
			if _, ok := res[item.ASIN]; !ok {
				res[item.ASIN] = item
			}
		}
	}

	log.Printf("AMAZON_LOOKUP: Locale: %s, IDs: %d, Chunks: %d, Items: %d, Failures: %d, Duration: %f\n",
		locale, len(clean), len(chunks), len(res), failures, time.Since(start).Seconds())
	a.stats.RecordLookup(ctypes.LookupMetrics{
		Locale:   string(locale),
		IDs:      len(clean),
		Chunks:   len(chunks),
		Items:    len(res),
		Failures: failures,
		Start:    start,
	})
	return res, merr.ErrorOrNil()
}

func (a *Amazon) runChunks(ctx context.Context, locale types.Locale, chunks [][]string) []chunkResult {
	results := make([]chunkResult, len(chunks))
	if a.concurrency <= 1 || len(chunks) == 1 {
		for i, ids := range chunks {
			results[i] = a.lookupChunk(ctx, locale, ids)
			if cerr.IsKind(results[i].err, cerr.KindConfiguration) {
				break
			}
		}
		return results
	}

	size := a.concurrency
	if size > len(chunks) {
		size = len(chunks)
	}
	pool := tunny.NewFunc(size, func(payload interface{}) interface{} {
		job := payload.(chunkJob)
		return a.lookupChunk(ctx, locale, job.ids)
	})
	defer pool.Close()

	var wg sync.WaitGroup
	for i, ids := range chunks {
		wg.Add(1)
		go func(job chunkJob) {
			defer wg.Done()
			results[job.index] = pool.Process(job).(chunkResult)
		}(chunkJob{index: i, ids: ids})
	}
	wg.Wait()
	return results
}

func (a *Amazon) lookupChunk(ctx context.Context, locale types.Locale, ids []string) (res chunkResult) {
	start := time.Now()
	if a.chunkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.chunkTimeout)
		defer cancel()
	}

	code := ""
	defer func() {
		a.stats.RecordChunk(ctypes.ChunkMetrics{
			Locale:    string(locale),
			ErrorCode: code,
			IDs:       len(ids),
			Items:     len(res.items),
			Start:     start,
		})
	}()

	if err := sources.WaitForRateLimit(ctx, a.redis, rateLimitSource, a.maxRetry); err != nil {
		code = "AMAZON_RATELIMIT_ERR"
		res.err = cerr.Transport(code, fmt.Sprintf("rate limit for %d ids", len(ids)), err)
		return res
	}

	lr, err := a.client.ItemLookup(ctx, locale, ids)
	if err != nil {
		res.err = cerr.ComposeWith(err, "", fmt.Sprintf("locale %s", locale))
		code = cerr.GetCode(err)
		var vendorErr *ecs.VendorError
		if errors.As(err, &vendorErr) {
			code = vendorErr.Code()
		}
		log.Printf("AMAZON_CHUNK_ERR: Locale: %s, IDs: %v, Code: %s, Error: %v\n", locale, ids, code, err)
	}
	if lr == nil {
		return res
	}

	for _, asin := range lr.InvalidASINs() {
		a.markInvalid(ctx, asin)
	}
	for _, e := range lr.Errors {
		if _, ok := types.ASINFromError(e.Message); !ok {
			log.Printf("AMAZON_VENDOR_MESSAGE: Locale: %s, Code: %s, Message: %s\n", locale, e.Code, e.Message)
		}
	}

	for _, item := range lr.Items {
		item.Timestamp = a.now().UTC()
		if a.store != nil {
			if err := a.store.Save(ctx, item); err != nil {
				log.Printf("AMAZON_STORE_ERR: (asin %s) %v\n", item.ASIN, err)
				res.storeErrs = append(res.storeErrs, fmt.Errorf("store %s: %w", item.ASIN, err))
			}
		}
		res.items = append(res.items, item)
	}
	return res
}

func (a *Amazon) markInvalid(ctx context.Context, asin string) {
	if a.store == nil {
		return
	}
	marked, err := a.store.MarkInvalid(ctx, asin)
	if err != nil {
		log.Printf("AMAZON_MARK_INVALID_ERR: (asin %s) %v\n", asin, err)
		return
	}
	log.Printf("AMAZON_INVALID_ASIN: (asin %s) stored record flagged: %t\n", asin, marked)
}
