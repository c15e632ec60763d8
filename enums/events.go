package enums

const (
	EventSessionSet     = "session.set"
	EventSessionCleared = "session.cleared"
)
