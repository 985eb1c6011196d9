package pickups

import "errors"

type Status string

const (
	StatusPending   Status = "pending"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// pending -> ready -> completed digerakkan fulfillment,
// pending -> cancelled oleh user. Tidak ada jalan keluar dari
// cancelled atau completed.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusReady: true, StatusCancelled: true},
	StatusReady:     {StatusCompleted: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func ToStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := validNext[status]; ok {
		return status, nil
	}
	return "", errors.New("invalid pickup status")
}
