// Package errors provides typed errors with exit codes for choice-ctl.
//
// # Error Types
//
// ChoiceError is the base error type that wraps an error with an exit code:
//
//	type ChoiceError struct {
//	    Code    int    // Exit code, doubles as the error kind
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess           = 0  // Success
//	ExitGeneralError      = 1  // General/unknown errors, CLI usage
//	ExitEmptySelection    = 2  // No region selected
//	ExitInvalidSelection  = 3  // Wrong number of regions for the policy
//	ExitRegionNotFound    = 4  // Selection names an unknown region
//	ExitResolutionFailure = 5  // Hostname lookup failed
//	ExitWriteFailure      = 6  // Hosts table could not be written
//	ExitConfigError       = 7  // Settings could not be loaded or saved
//
// # Error Constructors
//
//	errors.EmptySelection()
//	errors.RegionNotFound("Europe (London)")
//	errors.ResolutionFailure("gamelift.eu-west-2.amazonaws.com", err)
//	errors.WriteFailure(errors.ReasonPermission, "/etc/hosts", err)
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
