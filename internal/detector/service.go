package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// Service is the detection collaborator: it turns a frame into zero or more
// faces with normalized landmarks.
type Service interface {
	Detect(frame gocv.Mat) ([]Face, error)
	Close() error
}

// Handle is a replaceable reference to the active detection service.
// The capture loop reads it every frame while configuration changes may swap
// the service from another goroutine; the RWMutex guarantees a reader never
// observes a partially replaced value.
type Handle struct {
	mu  sync.RWMutex
	svc Service
}

// Set replaces the active service and returns the previous one (which the
// caller owns and should close once no frame is in flight on it).
func (h *Handle) Set(svc Service) Service {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.svc
	h.svc = svc
	return prev
}

// Current returns the active service, or nil if none is installed.
func (h *Handle) Current() Service {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svc
}

// CloseAndClear closes and removes the active service, if any.
func (h *Handle) CloseAndClear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.svc == nil {
		return nil
	}
	err := h.svc.Close()
	h.svc = nil
	return err
}
