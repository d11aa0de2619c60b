package web

import "time"

// Test-only exports for internal functions.
var (
	HasParamTags  = hasParamTags
	HasBodyField  = hasBodyField
	HasRawRequest = hasRawRequest

	ValidateConstraints = validateConstraints
)

// FormatAccessLog renders one access log line in the given format, sizing the
// body as resp.Size does ("-" for streams).
func FormatAccessLog(format string, head *Head, resp *Response, start time.Time) string {
	return renderLogFormat(parseLogFormat(format), head, resp, resp.Size(), start)
}

// InFlightCount reports the dispatches in progress in a service built by InFlight.
func InFlightCount(svc Service) int {
	return svc.(*inFlight).inFlightCount()
}
