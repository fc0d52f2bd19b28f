// Package errors defines the failure taxonomy for the medvoice pipeline.
//
// Upstream model services can fail two distinct ways and callers need to
// tell them apart:
//
//   - UpstreamUnavailable: the service answered with a non-success status.
//     The upstream status code and raw body travel in Details.
//   - MalformedPayload: the service answered 200 but the body is not what
//     the gateway expects (an error envelope, or a non-list entity payload).
//
// Both map to 502 at the HTTP surface but carry different codes so clients
// and operators can distinguish "service down" from "service returned
// garbage".
//
//	err := errors.UpstreamUnavailable("huggingface", 503, body)
//	if appErr, ok := errors.AsAppError(err); ok {
//	    status, details = appErr.HTTPStatus, appErr.Details
//	}
package errors
