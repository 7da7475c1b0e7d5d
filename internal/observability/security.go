package observability

import "go.uber.org/zap"

// Security event tags written for downstream intrusion-detection matching.
const (
	EventAuthSuccess       = "AUTH_SUCCESS"
	EventAuthFailed        = "AUTH_FAILED"
	EventLogout            = "LOGOUT"
	EventMediaAccessOK     = "MEDIA_ACCESS_GRANTED"
	EventMediaAccessDenied = "MEDIA_ACCESS_DENIED"
)

// SecurityLog records authentication-relevant events with the remote address.
// No token, signature or secret material is ever written here.
type SecurityLog struct {
	logger *zap.Logger
}

// NewSecurityLog wraps an application logger with the security channel name.
func NewSecurityLog(logger *zap.Logger) *SecurityLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SecurityLog{logger: logger.Named("security")}
}

// Event writes one security event.
func (s *SecurityLog) Event(event, message, remoteAddr string) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Info(message,
		zap.String("event", event),
		zap.String("remote_addr", remoteAddr),
	)
}
