package session

// ActivityEvent é um tipo de evento de entrada do usuário.
type ActivityEvent string

// Eventos que reiniciam o timer de inatividade.
const (
	EventMouseDown  ActivityEvent = "mousedown"
	EventMouseMove  ActivityEvent = "mousemove"
	EventKeyPress   ActivityEvent = "keypress"
	EventKeyDown    ActivityEvent = "keydown"
	EventScroll     ActivityEvent = "scroll"
	EventTouchStart ActivityEvent = "touchstart"
	EventClick      ActivityEvent = "click"
)

var activityEvents = map[ActivityEvent]struct{}{
	EventMouseDown:  {},
	EventMouseMove:  {},
	EventKeyPress:   {},
	EventKeyDown:    {},
	EventScroll:     {},
	EventTouchStart: {},
	EventClick:      {},
}

// ActivityEvents lista os eventos monitorados.
func ActivityEvents() []ActivityEvent {
	return []ActivityEvent{
		EventMouseDown, EventMouseMove, EventKeyPress, EventKeyDown,
		EventScroll, EventTouchStart, EventClick,
	}
}

// Valid informa se o evento reinicia o timer.
func (e ActivityEvent) Valid() bool {
	_, ok := activityEvents[e]
	return ok
}
