package game

type EventType int

const (
	EventAttemptStart EventType = iota
	EventThrustStart
	EventThrustStop
	EventLowFuel
	EventSafeLanding
	EventCrash
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventAttemptStart:
		return "attempt_start"
	case EventThrustStart:
		return "thrust_start"
	case EventThrustStop:
		return "thrust_stop"
	case EventLowFuel:
		return "low_fuel"
	case EventSafeLanding:
		return "safe_landing"
	case EventCrash:
		return "crash"
	case EventGameOver:
		return "game_over"
	}
	return "unknown"
}

type Event struct {
	Type EventType
	X, Y float64
	Data int // Generic payload (e.g. attempt score for a landing).
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventAttemptStart; t <= EventGameOver; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
