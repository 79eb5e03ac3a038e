package llm

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// ErrTransient marks a generation failure worth retrying.
var ErrTransient = errors.New("transient llm error")

// transientFragments match provider messages for throttling and transport
// failures. Anything else is treated as fatal for the current call.
var transientFragments = []string{
	"429",
	"rate limit",
	"too many requests",
	"overloaded",
	"service unavailable",
	"503",
	"connection refused",
	"connection reset",
	"broken pipe",
	"unexpected eof",
	"no such host",
	"timeout",
	"timed out",
}

// IsTransient reports whether a generation error should be retried.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTransient) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, fragment := range transientFragments {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
