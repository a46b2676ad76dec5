package audit

import "log"

// Actions recorded across the API.
const (
	ActionUserRegistered  = "user_registered"
	ActionUserLoggedIn    = "user_logged_in"
	ActionUserLoggedOut   = "user_logged_out"
	ActionPasswordUpdated = "password_updated"
	ActionAvatarUpdated   = "avatar_updated"
	ActionTiffinAdded     = "tiffin_added"
	ActionTiffinDeleted   = "tiffin_deleted"
	ActionBillGenerated   = "bill_generated"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// queued
	default:
		// full queue drops audit, never the request
		log.Println("audit queue full, dropping event")
	}
}
