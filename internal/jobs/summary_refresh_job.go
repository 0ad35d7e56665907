package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/approvals-api/internal/service"
	"github.com/robfig/cron"
)

const refreshTimeout = 30 * time.Second

type SummaryRefreshJob struct {
	ss service.SummaryService
	ps service.PublicationService
	is service.IdeaService
}

func NewSummaryRefreshJob(
	ss service.SummaryService,
	ps service.PublicationService,
	is service.IdeaService) *SummaryRefreshJob {
	return &SummaryRefreshJob{
		ss: ss,
		ps: ps,
		is: is,
	}
}

// Refresh reloads the social summary and both entity lists so the stores
// do not drift far from the backend between user actions.
func (j *SummaryRefreshJob) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := j.ss.Refresh(ctx); err != nil {
		slog.Info("Unable to refresh social summary", "error", err)
	}
	if _, err := j.is.List(ctx, service.SystemActor); err != nil {
		slog.Info("Unable to refresh ideas", "error", err)
	}
	if _, err := j.ps.List(ctx, service.SystemActor); err != nil {
		slog.Info("Unable to refresh publications", "error", err)
	}
}

// Schedule registers Refresh on c with the given cron spec.
func (j *SummaryRefreshJob) Schedule(c *cron.Cron, spec string) error {
	return c.AddFunc(spec, j.Refresh)
}
