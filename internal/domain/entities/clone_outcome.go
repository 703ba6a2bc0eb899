package entities

// CloneStatus is the final state of a single clone task.
type CloneStatus int

const (
	CloneSucceeded CloneStatus = iota
	CloneFailed
)

func (s CloneStatus) String() string {
	switch s {
	case CloneSucceeded:
		return "success"
	case CloneFailed:
		return "failure"
	default:
		return "unknown"
	}
}

// CloneOutcome records what happened to one RepositoryRef.
type CloneOutcome struct {
	Ref    RepositoryRef
	Path   string
	Status CloneStatus
	Err    error // set only when Status is CloneFailed
}

// Reason returns the failure message, or an empty string on success.
func (o CloneOutcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// CloneReport aggregates the outcomes of a clone run, in the order of the input refs.
type CloneReport struct {
	Outcomes []CloneOutcome
}

// Succeeded returns how many repositories were cloned.
func (r *CloneReport) Succeeded() int {
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Status == CloneSucceeded {
			count++
		}
	}
	return count
}

// Failed returns the failed outcomes, preserving report order.
func (r *CloneReport) Failed() []CloneOutcome {
	var failed []CloneOutcome
	for _, outcome := range r.Outcomes {
		if outcome.Status == CloneFailed {
			failed = append(failed, outcome)
		}
	}
	return failed
}
