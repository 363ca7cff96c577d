package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"ebay_pricer/internal/domain/entity"
	"ebay_pricer/pkg/logx"
)

const (
	defaultSchedule   = "@every 15m"
	defaultAppliedTTL = 24 * time.Hour

	appliedCleanupInterval = time.Hour
)

type marketplace interface {
	ActiveListings(ctx context.Context) ([]entity.Listing, error)
	ReviseItemPrice(ctx context.Context, itemID string, price float64) error
}

type repricingEngine interface {
	Underpriced(ctx context.Context, listings []entity.Listing) []entity.UnderpricedListing
}

// Repricer по расписанию проходит активный инвентарь и подтягивает цены
// недооценённых лотов к рекомендованным.
//
// Без autoApply воркер только логирует кандидатов — безопасный режим по
// умолчанию. Применённые надбавки запоминаются в TTL-кэше, чтобы один и
// тот же лот не дёргал Trading API каждый проход.
type Repricer struct {
	marketplace marketplace
	engine      repricingEngine

	schedule  string
	autoApply bool
	applied   *cache.Cache
	metrics   *repricerMetrics

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewRepricer(
	marketplace marketplace,
	engine repricingEngine,
	registerer prometheus.Registerer,
) *Repricer {
	return &Repricer{ //nolint:exhaustruct
		marketplace: marketplace,
		engine:      engine,
		schedule:    defaultSchedule,
		applied:     cache.New(defaultAppliedTTL, appliedCleanupInterval),
		metrics:     newRepricerMetrics(registerer),
	}
}

func (w *Repricer) WithSchedule(schedule string) *Repricer {
	w.schedule = schedule
	return w
}

func (w *Repricer) WithAutoApply(autoApply bool) *Repricer {
	w.autoApply = autoApply
	return w
}

func (w *Repricer) WithAppliedTTL(ttl time.Duration) *Repricer {
	w.applied = cache.New(ttl, appliedCleanupInterval)
	return w
}

func (w *Repricer) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("repricer is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(runCtx).Error("repricer stopped with error", logx.Error(err))
		}
	}()

	return nil
}

func (w *Repricer) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// IsRunning возвращает текущий статус
func (w *Repricer) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.isRunning
}

// Run блокирует до отмены контекста. Первый проход выполняется сразу,
// дальше по расписанию.
func (w *Repricer) Run(ctx context.Context) error {
	schedule := cron.New()

	if _, err := schedule.AddFunc(w.schedule, func() { w.Sweep(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	logger(ctx).Info("repricer started", "schedule", w.schedule, "auto_apply", w.autoApply)

	schedule.Start()

	w.Sweep(ctx)

	<-ctx.Done()

	// Stop не прерывает идущий проход, а дожидается его.
	<-schedule.Stop().Done()

	logger(ctx).Info("repricer stopped")

	return ctx.Err() //nolint:wrapcheck
}

// Sweep выполняет один проход по инвентарю. Его зовёт планировщик, но
// безопасен и ручной запуск.
func (w *Repricer) Sweep(ctx context.Context) {
	startedAt := time.Now()

	listings, err := w.marketplace.ActiveListings(ctx)
	if err != nil {
		logger(ctx).Error("inventory fetch failed", logx.Error(err))

		return
	}

	w.metrics.sweeps.Inc()
	w.metrics.listingsSeen.Add(float64(len(listings)))
	w.metrics.lastSweepUnix.SetToCurrentTime()

	underpriced := w.engine.Underpriced(ctx, listings)

	var applied, skipped int

	for _, listing := range underpriced {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !w.autoApply {
			logger(ctx).Info("boost candidate",
				logx.FieldItemID, listing.ID,
				"price", listing.Price,
				"suggested", listing.SuggestedPrice,
			)

			continue
		}

		key := appliedKey(listing.ID, listing.SuggestedPrice)
		if _, found := w.applied.Get(key); found {
			skipped++
			continue
		}

		if err := w.marketplace.ReviseItemPrice(ctx, listing.ID, listing.SuggestedPrice); err != nil {
			logger(ctx).Error("price boost failed", logx.FieldItemID, listing.ID, logx.Error(err))
			w.metrics.boostErrors.Inc()

			continue
		}

		w.applied.Set(key, true, cache.DefaultExpiration)
		w.metrics.boostsApplied.Inc()
		applied++

		logger(ctx).Info("price boost applied",
			logx.FieldItemID, listing.ID,
			"price", listing.Price,
			"new_price", listing.SuggestedPrice,
		)
	}

	logger(ctx).Info("sweep finished",
		"duration", time.Since(startedAt),
		"listings", len(listings),
		"underpriced", len(underpriced),
		"applied", applied,
		"skipped", skipped,
	)
}

// Ключ включает цену: когда рекомендация выросла из-за нового события,
// лот можно поднять ещё раз, не дожидаясь TTL.
func appliedKey(itemID string, price float64) string {
	return fmt.Sprintf("%s:%.2f", itemID, price)
}
