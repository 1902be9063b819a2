package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// Результаты обработки задачи для метрик
const (
	ResultDone   = "done"
	ResultRetry  = "retry"
	ResultFailed = "failed"
)

// Config настройки обработчика
type Config struct {
	Interval    time.Duration // Период опроса очереди
	BatchSize   int
	MaxAttempts int
	Backoff     time.Duration // Задержка перед повтором после ошибки
	Lease       time.Duration // На сколько задача скрывается от других обработчиков
}

// Worker периодически забирает готовые задачи и передаёт их сервису заказов
// Задача может быть выполнена повторно, обработчики должны быть идемпотентны
type Worker struct {
	jobRepo JobRepository
	handler OrderJobHandler
	metrics Metrics
	logger  Logger
	cfg     Config
	now     func() time.Time
}

// New создает обработчик, подставляя значения по умолчанию для незаданных настроек
func New(jobRepo JobRepository, handler OrderJobHandler, metrics Metrics, logger Logger, cfg Config) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Minute
	}
	if cfg.Lease <= 0 {
		cfg.Lease = 5 * time.Minute
	}

	return &Worker{
		jobRepo: jobRepo,
		handler: handler,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Run опрашивает очередь до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Worker: started, interval=%s, batch=%d", w.cfg.Interval, w.cfg.BatchSize)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Worker: stopped")
			return
		case <-ticker.C:
			if _, err := w.ProcessBatch(ctx); err != nil {
				w.logger.Error("Worker: batch failed: %v", err)
			}
		}
	}
}

// ProcessBatch обрабатывает одну пачку готовых задач и возвращает их количество
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	jobs, err := w.jobRepo.ClaimDue(ctx, w.now(), w.cfg.BatchSize, w.cfg.Lease)
	if err != nil {
		return 0, fmt.Errorf("claim due jobs: %w", err)
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		w.process(ctx, job)
	}

	return len(jobs), nil
}

func (w *Worker) process(ctx context.Context, job *domain.Job) {
	err := w.dispatch(ctx, job)
	if err == nil {
		if err := w.jobRepo.MarkDone(ctx, job.ID); err != nil {
			w.logger.Error("Worker: failed to mark job id=%d done: %v", job.ID, err)
		}
		w.metrics.ObserveJob(string(job.Kind), ResultDone)
		return
	}

	// Попытка уже учтена при захвате задачи
	if job.Attempts >= w.cfg.MaxAttempts {
		w.logger.Error("Worker: job id=%d kind=%s order=%d failed after %d attempts: %v",
			job.ID, job.Kind, job.OrderID, job.Attempts, err)
		if markErr := w.jobRepo.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
			w.logger.Error("Worker: failed to mark job id=%d failed: %v", job.ID, markErr)
		}
		w.metrics.ObserveJob(string(job.Kind), ResultFailed)
		return
	}

	retryAt := w.now().Add(w.cfg.Backoff * time.Duration(job.Attempts))
	w.logger.Warn("Worker: job id=%d kind=%s order=%d attempt %d failed, retry at %s: %v",
		job.ID, job.Kind, job.OrderID, job.Attempts, retryAt.Format(time.RFC3339), err)
	if recErr := w.jobRepo.RecordError(ctx, job.ID, err.Error(), retryAt); recErr != nil {
		w.logger.Error("Worker: failed to record error for job id=%d: %v", job.ID, recErr)
	}
	w.metrics.ObserveJob(string(job.Kind), ResultRetry)
}

func (w *Worker) dispatch(ctx context.Context, job *domain.Job) error {
	switch job.Kind {
	case domain.JobDeclineTimeout:
		return w.handler.HandleDeclineTimeout(ctx, job.OrderID)
	case domain.JobReminder:
		return w.handler.HandleReminder(ctx, job.OrderID)
	case domain.JobAutoComplete:
		return w.handler.HandleAutoComplete(ctx, job.OrderID)
	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
}
