package domain

import (
	"errors"
	"fmt"
)

// ConfigError is returned for invalid configuration or arguments.
// It is always detected before any network call.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TransportError wraps a network level failure talking to GitHub.
type TransportError struct {
	Login string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request for %q failed: %v", e.Login, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is returned when GitHub answers without a data payload.
// Payload holds the raw response body.
type UpstreamError struct {
	Login   string
	Payload []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("github returned no data for %q", e.Login)
}

// UnknownLoginError is returned when GitHub resolves a login to a null user.
type UnknownLoginError struct {
	Login   string
	Payload []byte
}

func (e *UnknownLoginError) Error() string {
	return fmt.Sprintf("unknown github login %q", e.Login)
}

// IsConfigError checks if err was caused by invalid configuration.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsTransportError checks if err was caused by a network failure.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsUpstreamError checks if err was caused by a response without data.
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// IsUnknownLogin checks if err was caused by a login GitHub does not know.
func IsUnknownLogin(err error) bool {
	var ul *UnknownLoginError
	return errors.As(err, &ul)
}

// UpstreamPayload returns the raw response body carried by err, if any.
func UpstreamPayload(err error) ([]byte, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Payload, true
	}
	var ul *UnknownLoginError
	if errors.As(err, &ul) {
		return ul.Payload, true
	}
	return nil, false
}
