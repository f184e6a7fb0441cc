package analyzer

import "errors"

// The pipeline logs and reports these failure kinds differently, so the
// gateway converts every remote failure shape into exactly one of them.
var (
	// ErrTransport covers network failures and non-2xx responses.
	ErrTransport = errors.New("analysis service request failed")

	// ErrMalformedEnvelope covers responses missing the expected content
	// path (no candidates, no parts).
	ErrMalformedEnvelope = errors.New("analysis service returned an unexpected response shape")

	// ErrMalformedPayload covers assessment bodies that do not parse as the
	// agreed JSON schema.
	ErrMalformedPayload = errors.New("analysis service returned an unparseable assessment")

	// ErrProcessingTimeout means the uploaded attachment never became ready
	// within the polling budget.
	ErrProcessingTimeout = errors.New("attachment processing did not finish in time")

	// ErrProcessingFailed means the remote side reported a terminal failure
	// for the uploaded attachment.
	ErrProcessingFailed = errors.New("attachment processing failed remotely")
)
