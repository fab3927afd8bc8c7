package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Database errors
	ErrUnknownDriver   = fmt.Errorf("unknown database driver")
	ErrMigrationFailed = fmt.Errorf("migration failed")

	// Import errors
	ErrMalformedRow      = fmt.Errorf("malformed row")
	ErrDateParse         = fmt.Errorf("unparseable timestamp")
	ErrUnsupportedFormat = fmt.Errorf("unsupported file format")
	ErrEmptySource       = fmt.Errorf("empty input source")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
