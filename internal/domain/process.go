package domain

type Process struct {
	PID  int
	Name string
	Path string
}

type Termination struct {
	Signaled  []string
	Killed    []string
	Denied    []string
	Survivors []Process
}

func (t Termination) Empty() bool {
	return len(t.Signaled) == 0 && len(t.Killed) == 0 && len(t.Denied) == 0 && len(t.Survivors) == 0
}
