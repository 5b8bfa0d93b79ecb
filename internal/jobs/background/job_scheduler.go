package background

import (
	"context"
	"log"
	"sync"
	"time"

	"vendora/internal/caching"
	"vendora/internal/jobs"
	"vendora/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages periodic background jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	alertSvc  *jobs.StockAlertService
	saleSvc   services.SaleServiceInterface
	cacheSvc  caching.CacheService
	jobsByID  map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(alertSvc *jobs.StockAlertService, saleSvc services.SaleServiceInterface, cacheSvc caching.CacheService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		alertSvc:  alertSvc,
		saleSvc:   saleSvc,
		cacheSvc:  cacheSvc,
		jobsByID:  make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Low stock alerts - every 30 minutes
	alertsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.processStockAlerts),
		gocron.WithName("stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stock alerts job: %v", err)
	} else {
		js.jobsByID["stock-alerts"] = alertsJob
	}

	// Sales stats cache warm-up - every 15 minutes
	statsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.refreshSaleStats),
		gocron.WithName("sale-stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create sale stats job: %v", err)
	} else {
		js.jobsByID["sale-stats-refresh"] = statsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobsByID))
}

func (js *JobScheduler) processStockAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	alerts, err := js.alertSvc.CheckLowStock(ctx)
	if err != nil {
		log.Printf("Stock alert job failed: %v", err)
		return
	}
	js.alertSvc.LogLowStockAlerts(alerts)
}

// refreshSaleStats recomputes the last-30-days stats so the dashboard's
// most common query stays warm in the cache.
func (js *JobScheduler) refreshSaleStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if js.cacheSvc != nil {
		if err := js.cacheSvc.InvalidateSaleStats(ctx); err != nil {
			log.Printf("Failed to invalidate sale stats cache: %v", err)
		}
	}

	now := time.Now()
	if _, err := js.saleSvc.Stats(ctx, now.AddDate(0, 0, -30), now); err != nil {
		log.Printf("Sale stats refresh job failed: %v", err)
	}
}
