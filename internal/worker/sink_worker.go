package worker

import (
	"github.com/spec-kit/casegen/internal/service"
)

// StartSinkWorker registers sink handlers.
func StartSinkWorker(sinkService *service.SinkService) {
	if sinkService == nil {
		return
	}
	sinkService.RegisterHandlers()
}
