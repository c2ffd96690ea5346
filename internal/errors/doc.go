// Package errors provides typed errors with exit codes for prisma.
//
// # Error Types
//
// PrismaError is the base error type that wraps an error with an exit code:
//
//	type PrismaError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// Field validation rejections are not errors: they are reported through the
// notifier and never leave a section controller. Only malformed commands,
// settings problems and output failures surface as PrismaError.
//
// # Exit Codes
//
//	ExitSuccess      = 0  // Success
//	ExitGeneralError = 1  // General/unknown errors
//	ExitConfigError  = 2  // Settings file or environment error
//	ExitValidation   = 3  // One or more edits were rejected
//	ExitScriptError  = 4  // Malformed edit command or script
//	ExitOutputError  = 5  // Rendering or writing the document failed
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
