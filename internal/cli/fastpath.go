package cli

const (
	// StartCommandName is the production start command.
	StartCommandName = "start"

	// OptimizedFlag requests a start that skips the full command dispatcher.
	// Exact match only; no prefix or abbreviation forms.
	OptimizedFlag = "--optimized"
)

// IsFastStart reports whether the invocation qualifies for the optimized
// start. True only for the exact two-token form naming the start command
// together with the optimized flag. Any additional flag forces the
// invocation through full dispatch.
func IsFastStart(args []string) bool {
	if len(args) != 2 || args[0] != StartCommandName {
		return false
	}
	return args[0] == OptimizedFlag || args[1] == OptimizedFlag
}
