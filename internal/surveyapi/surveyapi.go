// Package surveyapi provides typed facades over the gateway client, one per
// backend domain: auth, users, processes, statistics, agent analytics,
// reports, audit, and health. A facade translates a domain operation into
// endpoint path, query encoding and payload shape, and decodes the response
// into pkg/api types. Facades never inspect HTTP status themselves; every
// gateway error bubbles to the caller unchanged.
package surveyapi

import (
	"github.com/go-playground/validator/v10"
)

// validate checks outgoing payloads before they are sent; the backend would
// reject them anyway, but failing locally gives the caller a field-level
// message instead of a generic 422.
var validate = validator.New(validator.WithRequiredStructEnabled())
