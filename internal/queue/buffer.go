package queue

// EventBuffer stages domain events produced during a single command
// invocation. It is a plain value owned by one invocation: each call to a
// command handler creates its own buffer, so concurrent requests can never
// see each other's events.
type EventBuffer struct {
	events []DomainEvent
}

// Add stages an event for post-commit publication.
func (b *EventBuffer) Add(event DomainEvent) {
	b.events = append(b.events, event)
}

// Len returns the number of staged events.
func (b *EventBuffer) Len() int {
	return len(b.events)
}

// Drain returns the staged events and clears the buffer. The buffer is
// cleared whether or not the caller manages to publish anything.
func (b *EventBuffer) Drain() []DomainEvent {
	events := b.events
	b.events = nil
	return events
}
