// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package annot

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/sassoftware/pdf-annot/logger"
	"golang.org/x/sync/semaphore"
)

// Processor defines the contract for extracting annotations from a
// document source.
type Processor interface {
	Process(ctx context.Context, src Source) (*Result, error)
}

// Result is the completed output of one run: pages in page order with
// their annotations position-sorted, the merged all-pages annotation
// list in document order, the resolved outline and a locator over it.
type Result struct {
	Pages       []*Page
	Annotations []*Annotation
	Outlines    []Outline
	Locator     *Locator
	Ordering    Ordering
}

// RenderStrategy defines how one page's annotations are resolved and
// rendered. Different strategies handle bad records differently
// (strict vs. best-effort).
type RenderStrategy interface {
	RenderPage(ctx context.Context, pd PageData) (*Page, error)
}

// StrictRenderer enforces strict record resolution.
// If any annotation record fails to resolve, the page fails.
type StrictRenderer struct{}

func (s *StrictRenderer) RenderPage(ctx context.Context, pd PageData) (*Page, error) {
	page := &Page{Index: pd.Index, Bounds: pd.Bounds}
	for _, raw := range pd.Annotations {
		a, err := resolveAnnotation(page, raw)
		if err != nil {
			return nil, err
		}
		if a != nil {
			page.Annots = append(page.Annots, a)
		}
	}
	renderPage(page, pd.Fragments)
	return page, nil
}

// BestEffortRenderer tolerates bad records.
// If an annotation record fails to resolve, it is dropped with a
// diagnostic and the page continues.
type BestEffortRenderer struct{}

func (b *BestEffortRenderer) RenderPage(ctx context.Context, pd PageData) (*Page, error) {
	page := &Page{Index: pd.Index, Bounds: pd.Bounds}
	for _, raw := range pd.Annotations {
		a, err := resolveAnnotation(page, raw)
		if err != nil {
			logger.Debug("BestEffortRenderer: dropping unresolvable annotation record", "page", pd.Index+1, "err", err, true)
			continue
		}
		if a != nil {
			page.Annots = append(page.Annots, a)
		}
	}
	renderPage(page, pd.Fragments)
	return page, nil
}

// renderPage walks the fragment tree once, accreting matched text into
// the page's annotations. Pages without live annotations skip the
// walk.
func renderPage(page *Page, fragments []Fragment) {
	r := newPageRenderer(page.Annots)
	if len(r.annots) == 0 {
		return
	}
	for _, frag := range fragments {
		r.render(frag)
	}
}

// processor manages annotation extraction with concurrency control and
// delegates page-level work to the chosen RenderStrategy.
type processor struct {
	cfg      *Config
	sem      *semaphore.Weighted
	renderer RenderStrategy
}

// NewProcessor validates the config and creates a new processor.
// Selects the correct RenderStrategy (Strict or BestEffort).
func NewProcessor(cfg *Config) *processor {
	var renderer RenderStrategy
	switch cfg.ParsingMode {
	case Strict:
		renderer = &StrictRenderer{}
	case BestEffort:
		renderer = &BestEffortRenderer{}
	}

	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	if cfg.Logger != nil {
		logger.SetLogger(cfg.Logger)
	}

	logger.Debug(fmt.Sprintf("Processor initialized: parsing_mode=%v, columns=%d, max_concurrent_docs=%d, max_workers_per_doc=%d",
		cfg.ParsingMode, cfg.Columns, cfg.MaxConcurrentDocs, cfg.MaxWorkersPerDoc), true)

	return &processor{
		cfg:      cfg,
		sem:      semaphore.NewWeighted(int64(cfg.MaxConcurrentDocs)),
		renderer: renderer,
	}
}

// Process renders every page in the configured range, sorts each
// page's annotations by position, merges all pages in document order
// and resolves the outline. Pages render on a worker pool; each page's
// annotations are written by exactly one walk, and the pool joins
// before any ordering looks at the merged list.
func (p *processor) Process(ctx context.Context, src Source) (*Result, error) {
	if err := p.acquireSlot(ctx); err != nil {
		logger.Debug(fmt.Sprintf("Failed to acquire slot: err=%v", err), true)
		return nil, err
	}
	defer p.sem.Release(1)

	total := src.NumPages()
	logger.Debug(fmt.Sprintf("Total pages detected: pages=%d", total), true)

	var indices []int
	for i := 0; i < total; i++ {
		if p.cfg.includePage(i) {
			indices = append(indices, i)
		}
	}
	ord := NewOrdering(p.cfg.Columns)

	if len(indices) == 0 {
		logger.Debug("No pages in range", true)
		return &Result{Ordering: ord, Locator: NewLocator(nil, ord)}, nil
	}

	numWorkers := p.adjustWorkerCount(p.cfg.MaxWorkersPerDoc)
	logger.Debug(fmt.Sprintf("Starting workers: count=%d", numWorkers), true)

	jobs := make(chan int, len(indices))
	results := make(chan pageResult, len(indices))

	var wg sync.WaitGroup
	p.startWorkers(ctx, src, jobs, results, numWorkers, &wg)
	if err := p.feedJobs(ctx, indices, jobs); err != nil {
		close(jobs)
		wg.Wait()
		return nil, err
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	pages, err := p.collect(results)
	if err != nil {
		return nil, err
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })

	var all []*Annotation
	for _, page := range pages {
		sortAnnotations(page.Annots, ord)
		all = append(all, page.Annots...)
	}

	outlines := p.outlines(src, pages)
	logger.Debug(fmt.Sprintf("Processing completed: pages=%d annotations=%d outlines=%d", len(pages), len(all), len(outlines)), true)

	return &Result{
		Pages:       pages,
		Annotations: all,
		Outlines:    outlines,
		Locator:     NewLocator(outlines, ord),
		Ordering:    ord,
	}, nil
}

// ProcessFile opens a layout dump at path and processes it.
func (p *processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	logger.Debug(fmt.Sprintf("Starting extraction: path=%s", path), true)
	src, err := Open(path)
	if err != nil {
		logger.Debug(fmt.Sprintf("Failed to open layout dump: path=%s err=%v", path, err), true)
		return nil, err
	}
	return p.Process(ctx, src)
}

type pageResult struct {
	index int
	page  *Page
	err   error
}

func (p *processor) collect(results chan pageResult) ([]*Page, error) {
	var pages []*Page
	for res := range results {
		if res.err != nil {
			if p.cfg.ParsingMode == Strict {
				logger.Debug(fmt.Sprintf("Strict mode error — stopping extraction: page=%d err=%v", res.index+1, res.err))
				return nil, fmt.Errorf("strict mode failed on page %d: %w", res.index+1, res.err)
			}
			logger.Debug(fmt.Sprintf("Skipping failed page: page=%d err=%v", res.index+1, res.err), true)
			continue
		}
		pages = append(pages, res.page)
	}
	return pages, nil
}

func (p *processor) startWorkers(ctx context.Context, src Source, jobs <-chan int, results chan<- pageResult, numWorkers int, wg *sync.WaitGroup) {
	logger.Debug(fmt.Sprintf("Spawning workers: num_workers=%d", numWorkers), true)
	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Debug(fmt.Sprintf("Worker started: id=%d", id), true)
			for i := range jobs {
				pd, err := src.Page(i)
				if err != nil {
					results <- pageResult{index: i, err: err}
					continue
				}
				page, err := p.renderPageWithTimeout(ctx, pd)
				results <- pageResult{index: i, page: page, err: err}
				if err != nil {
					logger.Debug(fmt.Sprintf("Worker: page render error: worker_id=%d page=%d err=%v", id, i+1, err), true)
				} else {
					logger.Debug(fmt.Sprintf("Worker: page rendered successfully: worker_id=%d page=%d", id, i+1), true)
				}
			}
			logger.Debug(fmt.Sprintf("Worker finished: id=%d", id), true)
		}(w)
	}
}

func (p *processor) renderPageWithTimeout(ctx context.Context, pd PageData) (*Page, error) {
	ctxPage, cancel := context.WithTimeout(ctx, p.cfg.WorkerTimeout)
	defer cancel()
	return p.renderer.RenderPage(ctxPage, pd)
}

func (p *processor) feedJobs(ctx context.Context, indices []int, jobs chan<- int) error {
	for _, i := range indices {
		select {
		case <-ctx.Done():
			logger.Debug("Context cancelled while feeding jobs", true)
			return ctx.Err()
		case jobs <- i:
		}
	}
	logger.Debug(fmt.Sprintf("All jobs queued: total_pages=%d", len(indices)), true)
	return nil
}

func (p *processor) outlines(src Source, pages []*Page) []Outline {
	raws, err := src.Outlines()
	if err != nil {
		// Absent or broken outline structure is not fatal; the
		// locator simply never finds a preceding entry.
		logger.Error(fmt.Sprintf("failed to retrieve outlines: %v", err))
		return nil
	}
	return resolveOutlines(raws, pages)
}

func (p *processor) acquireSlot(ctx context.Context) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire slot: %w", err)
	}
	logger.Debug("Slot acquired successfully", true)
	return nil
}

func (p *processor) adjustWorkerCount(maxWorkers int) int {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if maxWorkers > runtime.NumCPU()/2 {
		maxWorkers = runtime.NumCPU()
	}
	logger.Debug(fmt.Sprintf("Adjusted worker count: workers=%d", maxWorkers), true)
	return maxWorkers
}
