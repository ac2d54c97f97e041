package session

// Subscriber receives a CellView for every cell render of one session.
type Subscriber struct {
	events chan CellView
}

func (s *Subscriber) Events() <-chan CellView { return s.events }

func (s *Session) Subscribe(backlog int) *Subscriber {
	sub := &Subscriber{events: make(chan CellView, backlog)}
	s.subscribers[sub] = struct{}{}
	s.log.WithField("subscribers", len(s.subscribers)).Debug("subscribed")
	return sub
}

// Unsubscribe closes the subscriber's channel. Safe to call twice.
func (s *Session) Unsubscribe(sub *Subscriber) {
	if _, ok := s.subscribers[sub]; !ok {
		return
	}
	delete(s.subscribers, sub)
	close(sub.events)
}

func (s *Session) unsubscribeAll() {
	for sub := range s.subscribers {
		s.Unsubscribe(sub)
	}
}

// broadcast never blocks the loop: a subscriber that cannot keep up is cut
// off.
func (s *Session) broadcast(v CellView) {
	for sub := range s.subscribers {
		select {
		case sub.events <- v:
		default:
			s.log.Warn("dropping slow subscriber")
			s.Unsubscribe(sub)
		}
	}
}
