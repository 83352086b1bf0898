package assets

import "fmt"

type LoadState int

const (
	StatusNone LoadState = iota
	StatusStarted
	StatusComplete
	StatusError
)

func (s LoadState) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusStarted:
		return "started"
	case StatusComplete:
		return "complete"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// LoadStatus is the progress of one map load. Err is set only in the
// StatusError state.
type LoadStatus struct {
	State LoadState
	Err   error
}

func (s LoadStatus) String() string {
	if s.State == StatusError && s.Err != nil {
		return fmt.Sprintf("error(%v)", s.Err)
	}
	return s.State.String()
}
