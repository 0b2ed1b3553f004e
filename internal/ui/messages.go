package ui

import (
	"subgrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerDoneMsg reports that an external pager session ended
type pagerDoneMsg struct {
	err error
}
