package session

type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// slot tracks one asynchronous operation. Every dispatch takes a new sequence
// number and only the holder of the latest number may commit.
type slot[T any] struct {
	status Status
	seq    uint64
	result *T
	err    string
}

func (s *slot[T]) begin() uint64 {
	s.seq++
	s.status = StatusPending
	s.result = nil
	s.err = ""
	return s.seq
}

func (s *slot[T]) commit(seq uint64, res T, err error) bool {
	if seq != s.seq {
		return false
	}
	if err != nil {
		s.status = StatusError
		s.err = err.Error()
		s.result = nil
		return true
	}
	s.status = StatusSuccess
	s.result = &res
	return true
}

// fail records an error without dispatching; any call still in flight for
// this slot becomes stale.
func (s *slot[T]) fail(msg string) {
	s.seq++
	s.status = StatusError
	s.result = nil
	s.err = msg
}

func (s *slot[T]) state() Status {
	if s.status == "" {
		return StatusIdle
	}
	return s.status
}

func (s *slot[T]) pending() bool {
	return s.status == StatusPending
}
