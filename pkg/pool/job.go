package pool

// Job is a deferred, zero-argument unit of work. The pool observes no result;
// a job acts through its side effects only. Any state a job closes over that
// is shared with the producer must carry its own synchronization; the pool
// guarantees each job runs on exactly one worker, nothing more.
type Job interface {
	Run()
}

// JobFunc adapts an ordinary function to the Job interface.
type JobFunc func()

// Run calls f.
func (f JobFunc) Run() { f() }

// messageKind discriminates control messages on the job queue.
type messageKind int

const (
	// messageJob carries a job for a worker to execute
	messageJob messageKind = iota
	// messageTerminate instructs the receiving worker to exit
	messageTerminate
)

func (k messageKind) String() string {
	switch k {
	case messageJob:
		return "job"
	case messageTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// message is the tagged control value flowing from producers to workers.
// A single stream carries both jobs and termination signals so that shutdown
// ordering is never ambiguous relative to queued work.
type message struct {
	kind messageKind
	job  Job
}
