package amazon

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs"
	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
)

// ErrItemNotReturned is reported for an ASIN the vendor returned nothing for
var ErrItemNotReturned = errors.New("AMAZON_NO_PRODUCTS_ERR: item not returned")

// ErrHandleClosed is returned by Get once Delete has been called
var ErrHandleClosed = errors.New("HANDLE_CLOSED_ERR: batching loop stopped")

type (
	itemRequest struct {
		asin   string
		locale types.Locale
		respCh chan<- itemResponse
	}

	itemResponse struct {
		item *types.ProductItem
		err  error
	}

	batchRequest struct {
		requests []itemRequest
		locale   types.Locale
	}

	// Handle gathers single ASIN requests from concurrent callers into
	// batches per locale, so that they share vendor requests
	Handle struct {
		tx       chan<- itemRequest
		quit     chan struct{}
		done     <-chan struct{}
		quitOnce sync.Once
	}

	actor struct {
		amazon    *Amazon
		reqQueue  <-chan itemRequest
		quitActor <-chan struct{}
		done      chan<- struct{}
		inflight  sync.WaitGroup
	}
)

// NewHandle starts the batching loop. A batch is sent once it holds maxItems
// requests or maxWaitTime has passed.
func (a *Amazon) NewHandle(maxItems int, maxWaitTime time.Duration) *Handle {
	if maxItems <= 0 || maxItems > ecs.MaxItemIDs {
		maxItems = ecs.MaxItemIDs
	}
	channel := make(chan itemRequest, 100)
	quitCh := make(chan struct{})
	doneCh := make(chan struct{})
	w := &actor{
		amazon:    a,
		reqQueue:  channel,
		quitActor: quitCh,
		done:      doneCh,
	}
	go w.requestToBatch(maxItems, maxWaitTime)

	return &Handle{
		tx:   channel,
		quit: quitCh,
		done: doneCh,
	}
}

// Get looks up one ASIN through the batching loop
func (h *Handle) Get(ctx context.Context, locale types.Locale, asin string) (*types.ProductItem, error) {
	select {
	case <-h.done:
		return nil, ErrHandleClosed
	default:
	}

	respCh := make(chan itemResponse, 1)
	req := itemRequest{asin: asin, locale: locale, respCh: respCh}
	select {
	case h.tx <- req:
	case <-h.done:
		return nil, ErrHandleClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-respCh:
		return resp.item, resp.err
	case <-h.done:
		// batches still in flight at quit are answered before done closes
		select {
		case resp := <-respCh:
			return resp.item, resp.err
		default:
			return nil, ErrHandleClosed
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Delete stops the batching loop. Queued requests are still sent and
// answered before it returns. Calling it again is a no-op.
func (h *Handle) Delete() error {
	h.quitOnce.Do(func() { close(h.quit) })
	<-h.done
	return nil
}

func (w *actor) requestToBatch(maxItems int, maxWaitTime time.Duration) {
	defer close(w.done)
	localeBatchMap := map[types.Locale]*batchRequest{}
	ticker := time.NewTicker(maxWaitTime)
	defer ticker.Stop()

	add := func(req itemRequest) {
		batch, ok := localeBatchMap[req.locale]
		if batch == nil || !ok {
			batch = &batchRequest{locale: req.locale}
		}
		batch.requests = append(batch.requests, req)
		localeBatchMap[req.locale] = batch
		if len(batch.requests) >= maxItems {
			w.send(batch)
			localeBatchMap[req.locale] = nil
		}
	}
	flush := func() {
		for locale, val := range localeBatchMap {
			if val != nil && len(val.requests) > 0 {
				w.send(val)
				localeBatchMap[locale] = nil
			}
		}
	}

MAIN_LOOP:
	for {
		select {
		case req := <-w.reqQueue:
			add(req)
		case <-ticker.C:
			flush()
		case <-w.quitActor:
			log.Printf("AMAZON_ACTOR_END: quit signal recieved\n")
			break MAIN_LOOP
		}
	}

DRAIN:
	for {
		select {
		case req := <-w.reqQueue:
			add(req)
		default:
			break DRAIN
		}
	}
	flush()
	w.inflight.Wait()
}

func (w *actor) send(batch *batchRequest) {
	w.inflight.Add(1)
	go func() {
		defer w.inflight.Done()
		w.dispatch(batch)
	}()
}

func (w *actor) dispatch(batch *batchRequest) {
	asins := make([]string, 0, len(batch.requests))
	seen := make(map[string]bool)
	for _, req := range batch.requests {
		if !seen[req.asin] {
			seen[req.asin] = true
			asins = append(asins, req.asin)
		}
	}
	log.Printf("AMAZON_BATCH_LOCALE: %s, AMAZON_BATCH_LENGTH: %d\n", batch.locale, len(asins))

	items, err := w.amazon.Lookup(context.Background(), batch.locale, asins)
	for _, req := range batch.requests {
		item, ok := items[req.asin]
		switch {
		case ok:
			req.respCh <- itemResponse{item: item}
		case err != nil:
			req.respCh <- itemResponse{err: err}
		default:
			req.respCh <- itemResponse{err: ErrItemNotReturned}
		}
	}
}
