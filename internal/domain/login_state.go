package domain

type LoginStateKind string

const (
	LoginInactive      LoginStateKind = "inactive"
	LoginActiveUnknown LoginStateKind = "active_unknown"
	LoginIdentified    LoginStateKind = "identified"
)

const activeUnknownDescription = "session active, identity unknown"

// LoginState is the detector's verdict about the live configuration directory.
// Source is the indicator path that produced the verdict, relative to the live directory.
type LoginState struct {
	Kind     LoginStateKind
	Identity string
	Source   string
}

func (s LoginState) Active() bool {
	return s.Kind == LoginActiveUnknown || s.Kind == LoginIdentified
}

func (s LoginState) Describe() string {
	switch s.Kind {
	case LoginIdentified:
		return s.Identity
	case LoginActiveUnknown:
		return activeUnknownDescription
	default:
		return "no active session"
	}
}
