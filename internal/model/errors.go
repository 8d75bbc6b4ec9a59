package model

// APIError means the provider was reachable but reported a business error,
// or the credentials were never configured. Its message is safe to show in
// a report segment.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError means the provider could not be reached: connection
// failure, timeout or a non-2xx status. The message is a generic
// description; raw transport errors are never surfaced to recipients.
type TransportError struct {
	Message string
}

func (e *TransportError) Error() string {
	return e.Message
}
