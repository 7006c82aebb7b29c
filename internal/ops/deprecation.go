package ops

import "github.com/LexxFedoroff/cargo/internal/shell"

// ResolveDeprecated picks between a deprecated and a current form of the same
// parameter. A non-nil legacy value wins, even when it holds the zero value,
// and warning is printed once. Callers downstream only ever see the resolved
// value.
func ResolveDeprecated[T any](sh *shell.Shell, legacy *T, current T, warning string) T {
	if legacy == nil {
		return current
	}
	if sh != nil {
		sh.Warn(warning)
	}
	return *legacy
}
