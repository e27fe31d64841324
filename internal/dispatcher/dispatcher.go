package dispatcher

import (
	"context"
	"errors"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/JulMan-Dev/discord-anti-spam/internal/engine"
	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

// ErrNotApplied marks a sanction the collaborator declined without a
// concrete error, typically a permission problem on the platform side.
var ErrNotApplied = errors.New("sanction not applied")

// Moderator is the host-side collaborator that effects real moderation
// actions. The engine never talks to the chat platform itself.
//
// ApplySanction returns false (with or without an error) when the action
// could not be performed, e.g. the target outranks the bot. Failures are
// final: the dispatcher logs them and moves on.
type Moderator interface {
	ApplySanction(ctx context.Context, job *engine.SanctionJob) (bool, error)
	DeleteMessages(ctx context.Context, records []*models.MessageRecord) error
}

// Dispatcher drains the engine's sanction queue with a small worker pool
// and hands each job to the Moderator, fire-and-forget.
type Dispatcher struct {
	queue     *engine.JobQueue
	moderator Moderator
	onApplied func(models.Notification)
	onFailure func(*engine.SanctionJob, error)
	timeout   time.Duration
	workers   int
	wg        conc.WaitGroup
	stop      chan struct{}
}

func New(e *engine.Engine, moderator Moderator, workers int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{
		queue:     e.Queue(),
		moderator: moderator,
		onApplied: e.HandleApplied,
		onFailure: e.HandleApplyFailure,
		timeout:   10 * time.Second,
		workers:   workers,
		stop:      make(chan struct{}),
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Go(d.runLoop)
	}
	logging.Info("dispatcher started with %d workers", d.workers)
}

// Stop waits for the workers to finish their current job. Jobs still queued
// are abandoned.
func (d *Dispatcher) Stop() {
	close(d.stop)
	d.wg.Wait()
}

func (d *Dispatcher) runLoop() {
	for {
		job, ok := d.queue.Dequeue()
		if !ok {
			select {
			case <-d.stop:
				return
			case <-d.queue.Wake():
				continue
			}
		}
		d.execute(job)
	}
}

func (d *Dispatcher) execute(job *engine.SanctionJob) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	applied, err := d.moderator.ApplySanction(ctx, job)
	if err != nil || !applied {
		if err == nil {
			err = ErrNotApplied
		}
		d.onFailure(job, err)
		return
	}

	if len(job.Messages) > 0 {
		// Best effort: a failed cleanup never blocks the notification.
		if err := d.moderator.DeleteMessages(ctx, job.Messages); err != nil {
			logging.Warn("failed to delete %d messages for job %s: %v", len(job.Messages), job.ID, err)
		}
	}

	d.onApplied(models.Notification{
		Tier:          job.Tier,
		Member:        job.Member,
		ChannelID:     job.ChannelID,
		MessageID:     job.MessageID,
		Content:       job.Content,
		Reason:        job.Reason,
		ByDuplicate:   job.ByDuplicate,
		AppliedAt:     time.Now(),
		DetectionTime: job.DetectionTime,
	})
}
