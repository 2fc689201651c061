package queue

import "sync"

// JobQueue is a deduplicating container of pending OptionJobs keyed by
// Identity. It is safe for multiple producers and a single drainer: the
// underlying map is protected by one mutex, and AddOrReplace is
// linearizable with respect to Drain.
type JobQueue struct {
	mu   sync.Mutex
	jobs map[Identity]OptionJob
}

// NewJobQueue returns an empty queue ready for use.
func NewJobQueue() *JobQueue {
	return &JobQueue{jobs: make(map[Identity]OptionJob)}
}

// AddOrReplace inserts job, or overwrites the pending job with the same
// identity. At most one job per identity is ever pending at once.
func (q *JobQueue) AddOrReplace(job OptionJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[job.Identity()] = job
}

// Size returns the number of jobs currently pending.
func (q *JobQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Contains reports whether a job with the given identity is pending.
func (q *JobQueue) Contains(id Identity) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.jobs[id]
	return ok
}

// Drain atomically returns all pending jobs and empties the queue. Order of
// the returned slice is unspecified.
func (q *JobQueue) Drain() []OptionJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	jobs := make([]OptionJob, 0, len(q.jobs))
	for _, job := range q.jobs {
		jobs = append(jobs, job)
	}
	q.jobs = make(map[Identity]OptionJob)
	return jobs
}
