package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

// SanctionJob is one decided sanction awaiting application by the
// dispatcher. Messages holds the records to delete alongside the sanction;
// it is empty when message removal is disabled.
type SanctionJob struct {
	ID            uuid.UUID
	Tier          models.Tier
	Member        models.Member
	GuildID       uint64
	ChannelID     uint64
	MessageID     uint64
	Content       string
	Reason        string
	ByDuplicate   bool
	Duration      time.Duration // mute only, handed to the collaborator
	Messages      []*models.MessageRecord
	DetectionTime time.Duration
	EnqueuedAt    time.Time
}

// JobQueue is a bounded ring of pending sanction jobs. Enqueue never
// blocks; a full queue drops the job. Wake wakes one waiting consumer per
// enqueue at most.
type JobQueue struct {
	mu   sync.Mutex
	jobs []*SanctionJob
	mask uint32
	head uint32
	tail uint32
	wake chan struct{}
}

func NewJobQueue(size uint32) *JobQueue {
	if size == 0 {
		size = 1024
	}
	if size&(size-1) != 0 {
		size = nextPowerOf2(size)
	}
	return &JobQueue{
		jobs: make([]*SanctionJob, size),
		mask: size - 1,
		wake: make(chan struct{}, 1),
	}
}

func (q *JobQueue) Enqueue(job *SanctionJob) bool {
	q.mu.Lock()
	nextHead := (q.head + 1) & q.mask
	if nextHead == q.tail {
		q.mu.Unlock()
		return false
	}
	q.jobs[q.head] = job
	q.head = nextHead
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

func (q *JobQueue) Dequeue() (*SanctionJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.tail == q.head {
		return nil, false
	}
	job := q.jobs[q.tail]
	q.jobs[q.tail] = nil
	q.tail = (q.tail + 1) & q.mask
	return job, true
}

// Wake is the consumer-side wait channel.
func (q *JobQueue) Wake() <-chan struct{} {
	return q.wake
}

func (q *JobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= q.tail {
		return int(q.head - q.tail)
	}
	return int((q.mask + 1) - (q.tail - q.head))
}

func nextPowerOf2(n uint32) uint32 {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}
