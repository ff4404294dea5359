package order

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusPaid       Status = "PAID"
	StatusProcessing Status = "PROCESSING"
	StatusShipping   Status = "SHIPPING"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Forward-only lifecycle; CANCELLED is reachable from every non-terminal
// state and is terminal, as is COMPLETED.
var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusPaid: true, StatusCancelled: true},
	StatusPaid:       {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusShipping: true, StatusCancelled: true},
	StatusShipping:   {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func ValidStatus(s string) bool {
	_, ok := validNext[Status(s)]
	return ok
}
