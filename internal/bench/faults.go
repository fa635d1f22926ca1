package bench

// Faults counts page faults.
type Faults struct {
	Minor int64 `json:"minor" yaml:"minor"`
	Major int64 `json:"major" yaml:"major"`
}

// Sub returns f - o.
func (f Faults) Sub(o Faults) Faults {
	return Faults{Minor: f.Minor - o.Minor, Major: f.Major - o.Major}
}

// FaultCounter reports cumulative page faults taken by the calling thread.
type FaultCounter interface {
	Faults() (Faults, error)
}

// ThreadFaults reads the calling thread's fault counters from getrusage.
// The engine locks its goroutine to one OS thread while measuring, so the
// counters cover exactly the touches of a phase.
type ThreadFaults struct{}
