// Package errx provides structured, code-based errors for the podman-push step.
//
// Every error carries:
//   - A stable 5-digit code (e.g., "72000" for registry push errors)
//   - A category description (e.g., "Registry error")
//   - The message shown to the user when the step fails
//   - Optional structured context (key-value pairs) for debug logs
//   - Optional cause and base sentinel errors
//
// The first two digits of a code name the domain:
//   - 70xxx: CLI/argument errors
//   - 71xxx: Configuration/input errors
//   - 72xxx: Registry push errors
//   - 73xxx: Local image store errors (list, daemon pull)
//   - 74xxx: Process execution errors
//
// The last three digits are reserved for subcodes.
//
// Example usage:
//
//	err := errx.Registry(stderr).
//		WithContext("destination", "quay.io/org/app:latest").
//		WithBase(ErrPushImageFailed)
//
//	if errors.Is(err, ErrPushImageFailed) {
//		// Handle specific error
//	}
//
//	fmt.Println(errx.UserString(err))  // Message reported by the step
//	fmt.Println(errx.DebugString(err)) // Full chain with codes and context
package errx
