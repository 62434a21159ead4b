package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/xhad/vecseed/internal/models"
	"github.com/xhad/vecseed/internal/types"
	"github.com/xhad/vecseed/pkg/transform"
)

type SeederConfig struct {
	FilePath   string
	BatchSize  int
	BatchDelay time.Duration // pause between batches, bounds request rate
	OnProgress types.ReportFunc
}

// Seeder drives the Load -> Transform -> Upload -> Verify pipeline. It
// owns no ambient state: the loader, the store and the progress callback
// are all injected.
type Seeder struct {
	config SeederConfig
	loader types.Loader
	store  types.DocumentStore
}

func NewWithConfig(loader types.Loader, store types.DocumentStore, config SeederConfig) *Seeder {
	if config.FilePath == "" {
		config.FilePath = "data/text-sample.json"
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 10
	}
	if config.BatchDelay < 0 {
		config.BatchDelay = 0
	}

	return &Seeder{
		config: config,
		loader: loader,
		store:  store,
	}
}

// Run executes one seeding pass. Per-record conflicts and transient
// write failures are absorbed into the tallies; a load failure or an
// authorization failure aborts the run. The returned summary is valid
// even when err is non-nil and reflects only the records that actually
// settled.
func (s *Seeder) Run(ctx context.Context) (models.Summary, error) {
	records, err := s.loader.Load(s.config.FilePath)
	if err != nil {
		return models.Summary{}, fmt.Errorf("load stage: %w", err)
	}

	docs := transform.ApplyAll(records)
	summary := models.Summary{Total: len(docs)}

	limiter := rate.NewLimiter(rate.Every(s.config.BatchDelay), 1)

	for start := 0; start < len(docs); start += s.config.BatchSize {
		// Cancellation point between batches; also paces the batches.
		if err := limiter.Wait(ctx); err != nil {
			return summary, fmt.Errorf("upload stage: %w", err)
		}

		end := min(start+s.config.BatchSize, len(docs))
		batch := docs[start:end]

		// Fan out the batch; every slot settles exactly once. The group
		// context is cancelled on the first fatal outcome so records not
		// yet started are never attempted.
		outcomes := make([]error, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		for i, rec := range batch {
			i, rec := i, rec
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					outcomes[i] = err
					return nil
				}
				err := s.store.CreateIfAbsent(gctx, rec)
				outcomes[i] = err
				if errors.Is(err, ErrUnauthorized) {
					return err
				}
				return nil
			})
		}
		fatal := g.Wait()

		// Single-threaded fold after the batch settles; no shared
		// counters are mutated concurrently.
		for _, err := range outcomes {
			switch {
			case err == nil:
				summary.Uploaded++
			case errors.Is(err, ErrConflict):
				summary.Skipped++
			case errors.Is(err, ErrUnauthorized), errors.Is(err, context.Canceled):
				// Never attempted or the fatal record itself: counted in
				// no tally so the summary shows true per-item outcomes.
			default:
				summary.Errors++
			}
		}

		if fatal != nil {
			return summary, fmt.Errorf("upload stage: %w "+
				"(permission propagation can be delayed; retrying later may succeed)", fatal)
		}

		if s.config.OnProgress != nil {
			s.config.OnProgress(models.Progress{
				Processed: end,
				Total:     len(docs),
				Uploaded:  summary.Uploaded,
				Skipped:   summary.Skipped,
				Errors:    summary.Errors,
			})
		}
	}

	s.verify(ctx, &summary)
	return summary, nil
}

// verify reads back the container count. The count includes documents
// from prior runs, so this is a sanity signal only: a failure becomes a
// warning on the summary, never an error for the run.
func (s *Seeder) verify(ctx context.Context, summary *models.Summary) {
	count, err := s.store.Count(ctx)
	if err != nil {
		summary.VerifyErr = fmt.Errorf("%v: %w", err, ErrVerification)
		return
	}
	summary.Verified = count
}
