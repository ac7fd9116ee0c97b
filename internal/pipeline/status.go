package pipeline

import "transcribed/pkg/types"

// Status builds the load snapshot for /api/status. queue_size is always zero
// because denied requests are rejected, never held.
func (s *Service) Status() types.StatusResponse {
	snap := s.gate.Snapshot()
	status := "ok"
	if !snap.Accepting {
		status = "busy"
	}
	return types.StatusResponse{
		Status:                status,
		ActiveRequests:        snap.Active,
		MaxConcurrentRequests: snap.Ceiling,
		QueueSize:             0,
		CanAcceptRequests:     snap.Accepting,
	}
}
