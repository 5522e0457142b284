// Package apperrors provides the error type used across the Mirador client.
// It implements the standard error interface while adding error chaining and
// HTTP status code management, so transport failures can be classified by the
// CLI without string matching.
package apperrors

// Error defines the interface for application errors. It extends the standard
// error interface with methods for wrapping additional errors and carrying an
// HTTP status code. All methods return Error to support method chaining.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // creates a new error using current as template
	Msg(msg string) Error                  // creates a new error with message and wraps original
	MsgErr(msg string, err ...error) Error // creates error with message and wraps extra errors
	Err(err ...error) Error                // attaches additional errors to current error
	SetStatusCode(int) Error               // sets HTTP status code for the error
	StatusCode() int                       // returns the current status code
	UnwrapAll() []error                    // returns all wrapped errors
}
