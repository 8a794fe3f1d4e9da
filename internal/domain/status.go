package domain

// Status is the lifecycle state of an order. Orders start as pending and are
// moved by admin actions only; rejected and finished are dead ends.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusFinished Status = "finished"
)

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected, StatusFinished}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusFinished:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusFinished
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

// Action is an admin-triggered order transition.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionFinish  Action = "finish"
)

func (a Action) Valid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionFinish:
		return true
	}
	return false
}

func (a Action) String() string {
	return string(a)
}

// Target returns the status an action moves an order into.
func (a Action) Target() Status {
	switch a {
	case ActionApprove:
		return StatusApproved
	case ActionReject:
		return StatusRejected
	case ActionFinish:
		return StatusFinished
	}
	return ""
}

// Allows reports whether an order currently in status s permits action a.
// Only pending orders may be approved or rejected, only approved orders
// may be finished.
func (s Status) Allows(a Action) bool {
	switch a {
	case ActionApprove, ActionReject:
		return s == StatusPending
	case ActionFinish:
		return s == StatusApproved
	}
	return false
}

// AllowedActions lists the actions an order in status s may take. The UI
// offers exactly these and nothing else.
func (s Status) AllowedActions() []Action {
	var actions []Action
	for _, a := range []Action{ActionApprove, ActionReject, ActionFinish} {
		if s.Allows(a) {
			actions = append(actions, a)
		}
	}
	return actions
}
