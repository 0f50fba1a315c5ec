package services

// Phase marks how far an invocation has progressed. The boundary that
// matters is PhaseAcknowledged: everything before it can still surface an
// error to the caller, everything after it runs with the response channel
// already closed.
type Phase int

const (
	PhaseReceived Phase = iota
	PhaseDecoded
	PhaseFilteredIn
	PhaseTypeResolved
	PhaseAcknowledged
	PhaseAnalyzed
	PhaseDescribed
	PhaseTranslated
	PhaseCreated
	PhaseUpdated
	PhaseDone
)

var phaseNames = map[Phase]string{
	PhaseReceived:     "received",
	PhaseDecoded:      "decoded",
	PhaseFilteredIn:   "filtered_in",
	PhaseTypeResolved: "type_resolved",
	PhaseAcknowledged: "acknowledged",
	PhaseAnalyzed:     "analyzed",
	PhaseDescribed:    "described",
	PhaseTranslated:   "translated",
	PhaseCreated:      "created",
	PhaseUpdated:      "updated",
	PhaseDone:         "done",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// PostAck reports whether the phase lies past the acknowledgement boundary.
func (p Phase) PostAck() bool {
	return p >= PhaseAcknowledged
}
