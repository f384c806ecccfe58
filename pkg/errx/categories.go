package errx

import "errors"

// CreateByCode creates an Error using the provided code, description, and message.
func CreateByCode(code, description, message string, cause error) *Error {
	if cause != nil {
		return Wrap(code, description, message, cause)
	}
	return New(code, description, message)
}

// FromSentinel creates an Error in the sentinel's category, with the sentinel as base.
// Sentinels built with the category constructors carry their code; anything else lands in CLI.
func FromSentinel(sentinel error, message string, cause error) *Error {
	code := CodeCLI
	var typed *Error
	if errors.As(sentinel, &typed) && IsValidCode(typed.code) {
		code = typed.code
	}
	desc, _ := DescriptionFor(code)
	return CreateByCode(code, desc, message, cause).WithBase(sentinel)
}

// Config creates an input/configuration error.
func Config(message string) *Error {
	return New(CodeConfig, DescConfig, message)
}

// Registry creates a registry push error.
func Registry(message string) *Error {
	return New(CodeRegistry, DescRegistry, message)
}

// ImageStore creates a local image store error.
func ImageStore(message string) *Error {
	return New(CodeImageStore, DescImageStore, message)
}

// Exec creates a process execution error.
func Exec(message string) *Error {
	return New(CodeExec, DescExec, message)
}
