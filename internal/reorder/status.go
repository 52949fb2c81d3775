package reorder

import "fmt"

type Status string

const (
	StatusCritical    Status = "critical"
	StatusWarning     Status = "warning"
	StatusSafe        Status = "safe"
	StatusOverstocked Status = "overstocked"
	StatusUnknown     Status = "unknown"
)

var statusUrgency = map[Status]int{
	StatusCritical:    0,
	StatusWarning:     1,
	StatusSafe:        2,
	StatusOverstocked: 3,
	StatusUnknown:     4,
}

// Urgency orders statuses most urgent first. Unknown sorts last.
func (s Status) Urgency() int {
	if u, ok := statusUrgency[s]; ok {
		return u
	}
	return len(statusUrgency)
}

func (s Status) Valid() bool {
	_, ok := statusUrgency[s]
	return ok
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown reorder status %q", v)
	}
	return s, nil
}
