package fixture

import "sync"

// HandleState is the lifecycle state of a ContainerHandle.
type HandleState int

const (
	// HandleRunning means the container was started and has not been released.
	HandleRunning HandleState = iota + 1
	// HandleStopped means Release has been called.
	HandleStopped
)

func (s HandleState) String() string {
	switch s {
	case HandleRunning:
		return "running"
	case HandleStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ContainerHandle is a running ephemeral container owned by the Fixture that acquired it.
type ContainerHandle struct {
	image       string
	exposedPort string
	host        string
	mappedPort  int
	ports       map[string]int
	id          string

	mu          sync.Mutex
	state       HandleState
	ctr         Container
	teardownErr *TeardownError
}

// Image returns the image the container was started from.
func (h *ContainerHandle) Image() string {
	if h == nil {
		return ""
	}
	return h.image
}

// ExposedPort returns the declared container port, ie: "9000/tcp".
func (h *ContainerHandle) ExposedPort() string {
	if h == nil {
		return ""
	}
	return h.exposedPort
}

// ID returns the container runtime's identifier.
func (h *ContainerHandle) ID() string {
	if h == nil {
		return ""
	}
	return h.id
}

// Host returns the resolved host. ErrNotAcquired is returned for a handle that was never started.
func (h *ContainerHandle) Host() (string, error) {
	if h == nil || h.host == "" {
		return "", ErrNotAcquired
	}
	return h.host, nil
}

// MappedPort returns the host port the runtime assigned to the exposed port.
func (h *ContainerHandle) MappedPort() (int, error) {
	if h == nil || h.mappedPort == 0 {
		return 0, ErrNotAcquired
	}
	return h.mappedPort, nil
}

// MappedPorts returns the host port for every exposed port, keyed by normalized container port.
func (h *ContainerHandle) MappedPorts() map[string]int {
	if h == nil {
		return map[string]int{}
	}
	out := make(map[string]int, len(h.ports))
	for k, v := range h.ports {
		out[k] = v
	}
	return out
}

// State returns the current lifecycle state.
func (h *ContainerHandle) State() HandleState {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// TeardownErr returns the error from stopping the container, if any. It is only set after Release.
func (h *ContainerHandle) TeardownErr() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.teardownErr == nil {
		return nil
	}
	return h.teardownErr
}
