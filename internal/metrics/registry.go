package metrics

import (
	"sync/atomic"

	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

// Registry tracks engine counters. Everything is atomic; the hot path never
// takes a lock.
type Registry struct {
	processed uint64
	ignored   uint64
	deduped   uint64
	sanctions [5]uint64 // indexed by models.Tier
	failures  uint64
	latency   LatencyHistogram
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) RecordProcessed()  { atomic.AddUint64(&r.processed, 1) }
func (r *Registry) RecordIgnored()    { atomic.AddUint64(&r.ignored, 1) }
func (r *Registry) RecordDeduped()    { atomic.AddUint64(&r.deduped, 1) }
func (r *Registry) RecordApplyError() { atomic.AddUint64(&r.failures, 1) }

func (r *Registry) RecordSanction(tier models.Tier) {
	atomic.AddUint64(&r.sanctions[tier], 1)
}

func (r *Registry) RecordDetectionLatency(ns uint64) {
	r.latency.Record(ns)
}

type Snapshot struct {
	Processed   uint64
	Ignored     uint64
	Deduped     uint64
	Warns       uint64
	Mutes       uint64
	Kicks       uint64
	Bans        uint64
	ApplyErrors uint64
	Latency     LatencyStats
}

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Processed:   atomic.LoadUint64(&r.processed),
		Ignored:     atomic.LoadUint64(&r.ignored),
		Deduped:     atomic.LoadUint64(&r.deduped),
		Warns:       atomic.LoadUint64(&r.sanctions[models.TierWarn]),
		Mutes:       atomic.LoadUint64(&r.sanctions[models.TierMute]),
		Kicks:       atomic.LoadUint64(&r.sanctions[models.TierKick]),
		Bans:        atomic.LoadUint64(&r.sanctions[models.TierBan]),
		ApplyErrors: atomic.LoadUint64(&r.failures),
		Latency:     r.latency.Stats(),
	}
}

var globalRegistry *Registry

func InitGlobalRegistry() {
	globalRegistry = NewRegistry()
}

func GetRegistry() *Registry {
	if globalRegistry == nil {
		InitGlobalRegistry()
	}
	return globalRegistry
}
