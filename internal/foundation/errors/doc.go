// Package errors provides the classified error primitives shared by the appshell commands.
//
// A ClassifiedError carries a category (what kind of thing went wrong), a severity
// (whether the run can continue) and a small context map that ends up in log output.
// The CLI adapter turns categories into process exit codes.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryNotFound, "input directory not found").
//		Fatal().
//		WithContext("path", dir).
//		Build()
package errors
