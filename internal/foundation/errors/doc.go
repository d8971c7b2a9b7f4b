// Package errors provides classified error primitives used across docsexport.
//
// Errors carry a category (config, validation, hugo, ...), a severity and a
// small context map. The CLI adapter maps categories to process exit codes.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryHugo, "hugo build failed").
//		WithContext("project_dir", dir).
//		Build()
package errors
