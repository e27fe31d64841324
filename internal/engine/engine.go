package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/JulMan-Dev/discord-anti-spam/internal/cache"
	"github.com/JulMan-Dev/discord-anti-spam/internal/config"
	"github.com/JulMan-Dev/discord-anti-spam/internal/detectors"
	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
	"github.com/JulMan-Dev/discord-anti-spam/internal/metrics"
	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
	"github.com/JulMan-Dev/discord-anti-spam/internal/state"
	"github.com/JulMan-Dev/discord-anti-spam/pkg/util"
)

// Engine is the escalation engine: it ingests message events, keeps the
// sliding-window history, evaluates the ordered tier table and queues
// sanction jobs for the dispatcher. One instance serves all guilds.
//
// ProcessMessage's return value reflects the local decision; the external
// apply runs asynchronously and its failure is logged, never rolled back.
type Engine struct {
	opts    config.Options
	rules   []tierRule
	cache   *cache.MessageCache
	tracker *state.SanctionTracker
	queue   *JobQueue
	metrics *metrics.Registry
	selfID  atomic.Uint64

	// memberMu stripes serialize the evaluate-through-record sequence per
	// (guild, author), so one-shot tiers cannot fire twice for concurrent
	// messages from the same author. Disjoint authors proceed in parallel.
	memberMu [64]sync.Mutex

	mu        sync.RWMutex
	observers []func(models.Notification)
}

func New(opts config.Options, queueSize uint32) *Engine {
	return &Engine{
		opts:    opts,
		rules:   buildTierRules(&opts),
		cache:   cache.NewMessageCache(),
		tracker: state.NewSanctionTracker(),
		queue:   NewJobQueue(queueSize),
		metrics: metrics.GetRegistry(),
	}
}

// SetSelfID tells the engine which account it runs as, so it never
// sanctions itself. The bot layer calls this once connected.
func (e *Engine) SetSelfID(id uint64) {
	e.selfID.Store(id)
}

// Queue exposes the sanction job queue to the dispatcher.
func (e *Engine) Queue() *JobQueue {
	return e.queue
}

// Options returns the engine configuration.
func (e *Engine) Options() config.Options {
	return e.opts
}

// Notify registers an observer invoked once per successfully applied
// sanction.
func (e *Engine) Notify(fn func(models.Notification)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// ProcessMessage runs one inbound message through the full pipeline and
// reports whether a sanction fired, letting callers short-circuit any
// further moderation handling for the same message.
func (e *Engine) ProcessMessage(ev *models.MessageEvent) bool {
	timer := util.NewTimer()

	if reason := e.admit(ev); reason != admitOK {
		e.metrics.RecordIgnored()
		if e.opts.Verbose {
			logging.Debug("ignoring message %d from %d: %s", ev.MessageID, ev.Author.UserID, reason)
		}
		return false
	}

	now := ev.SentAt
	if now.IsZero() {
		now = time.Now()
		ev.SentAt = now
	}

	guildID := ev.GuildID
	authorID := ev.Author.UserID

	stripe := e.memberStripe(guildID, authorID)
	stripe.Lock()
	defer stripe.Unlock()

	// A recorded ban ends evaluation for the member until reset; the
	// message is not even cached.
	if e.tracker.Banned(guildID, authorID) {
		e.metrics.RecordIgnored()
		return false
	}

	rec := ev.Record()
	if !e.cache.Append(rec) {
		// Same message id seen before: replays never double-count.
		e.metrics.RecordDeduped()
		return false
	}
	e.cache.Evict(now.Add(-e.opts.Retention()))

	window := e.cache.WindowMatches(guildID, authorID, now.Add(-e.opts.MaxInterval))
	group := detectors.GroupDuplicates(
		e.cache.AuthorRecords(guildID, authorID),
		ev.Content,
		now.Add(-e.opts.MaxDuplicatesInterval),
	)

	tier, byDuplicate := e.evaluate(len(window), len(group.Matches), guildID, authorID)

	e.metrics.RecordProcessed()
	e.metrics.RecordDetectionLatency(uint64(timer.Elapsed()))

	if tier == models.TierNone {
		return false
	}

	var deletable []*models.MessageRecord
	if byDuplicate {
		deletable = group.DeletionSet()
	} else {
		deletable = window
	}

	// Decide-then-fire: local state is final before the collaborator is
	// ever involved.
	e.tracker.Record(tier, guildID, authorID)
	if e.opts.RemoveMessages {
		e.cache.PurgeAuthor(authorID)
	} else {
		deletable = nil
	}

	job := &SanctionJob{
		ID:            uuid.New(),
		Tier:          tier,
		Member:        ev.Author,
		GuildID:       guildID,
		ChannelID:     ev.ChannelID,
		MessageID:     ev.MessageID,
		Content:       ev.Content,
		Reason:        sanctionReason(tier, byDuplicate, len(window), len(group.Matches)),
		ByDuplicate:   byDuplicate,
		Messages:      deletable,
		DetectionTime: timer.Elapsed(),
		EnqueuedAt:    time.Now(),
	}
	if tier == models.TierMute {
		job.Duration = e.opts.UnMuteDuration
	}

	if !e.queue.Enqueue(job) {
		logging.Warn("sanction queue full, dropping %s for %d in guild %d", tier, authorID, guildID)
	}
	e.metrics.RecordSanction(tier)

	if e.opts.Verbose {
		logging.Info("%s triggered for %d in guild %d (window=%d duplicates=%d)",
			tier, authorID, guildID, len(window), len(group.Matches))
	}
	return true
}

// MemberDeparted clears the member's tracked sanction state. Message history
// stays: purges are sanction-triggered only. It reports whether any state
// was removed.
func (e *Engine) MemberDeparted(member models.Member) bool {
	if e.opts.IgnoredGuilds.Contains(member.GuildID) {
		return false
	}
	return e.tracker.Clear(member.GuildID, member.UserID)
}

// Reset empties the message cache and the sanction tracker. Safe to call
// concurrently with in-flight events; those may complete on pre-reset data.
func (e *Engine) Reset() {
	e.cache.Reset()
	e.tracker.Reset()
	logging.Info("engine state reset")
}

// Tracker exposes the sanction tracker for the bot layer and tests.
func (e *Engine) Tracker() *state.SanctionTracker {
	return e.tracker
}

// Cache exposes the message cache for the bot layer and tests.
func (e *Engine) Cache() *cache.MessageCache {
	return e.cache
}

// HandleApplied is invoked by the dispatcher after the collaborator
// confirmed a sanction; it fans the notification out to observers.
func (e *Engine) HandleApplied(n models.Notification) {
	e.mu.RLock()
	observers := e.observers
	e.mu.RUnlock()

	for _, fn := range observers {
		fn(n)
	}
}

// HandleApplyFailure is invoked by the dispatcher when the collaborator
// could not apply a sanction. The failure is counted and logged; tracker
// state stays recorded and nothing is retried.
func (e *Engine) HandleApplyFailure(job *SanctionJob, err error) {
	e.metrics.RecordApplyError()
	logging.Warn("failed to apply %s to %d in guild %d: %v", job.Tier, job.Member.UserID, job.GuildID, err)
}

func (e *Engine) memberStripe(guildID, authorID uint64) *sync.Mutex {
	h := guildID*0x9E3779B97F4A7C15 + authorID
	return &e.memberMu[h%uint64(len(e.memberMu))]
}

func sanctionReason(tier models.Tier, byDuplicate bool, windowCount, duplicateCount int) string {
	if byDuplicate {
		return fmt.Sprintf("Duplicate spam: %d identical messages (%s)", duplicateCount, tier)
	}
	return fmt.Sprintf("Message flood: %d messages in window (%s)", windowCount, tier)
}
