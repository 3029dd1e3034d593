package health

import "github.com/gin-gonic/gin"

// Version is reported by the root endpoint.
const Version = "1.0.0"

const runningMessage = "Career Launch AI Backend is running"

// Service reports that the API is up.
type Service struct {
	version string
}

// NewService constructs a new health service.
func NewService(version string) *Service {
	if version == "" {
		version = Version
	}
	return &Service{version: version}
}

// Status is the payload under "data" on the root endpoint.
type Status struct {
	Version string `json:"version"`
}

// Status returns the running version.
func (s *Service) Status() Status {
	return Status{Version: s.version}
}

// RegisterRoutes attaches GET / to r.
func (s *Service) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", s.root)
}
