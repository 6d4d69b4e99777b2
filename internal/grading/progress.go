package grading

// StatusEvent is one ordered progress update emitted during a grading
// run, ahead of the terminal report.
type StatusEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Progress receives status updates from the orchestrator. A nil
// channel is valid and disables reporting. Sends never block: a slow
// or absent consumer misses events rather than stalling grading.
type Progress chan<- StatusEvent

func (p Progress) send(stage, message string) {
	if p == nil {
		return
	}
	select {
	case p <- StatusEvent{Stage: stage, Message: message}:
	default:
	}
}
