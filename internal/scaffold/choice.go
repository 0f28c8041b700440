package scaffold

import (
	"strings"

	"github.com/spf13/cobra"
)

// Choose validates value against a closed allow-list and returns it typed.
// Matching is case-insensitive; the canonical spelling from allowed is returned.
func Choose[T ~string](flag, value string, allowed []T) (T, error) {
	for _, a := range allowed {
		if strings.EqualFold(string(a), strings.TrimSpace(value)) {
			return a, nil
		}
	}
	var zero T
	return zero, UsageError("invalid --%s %q (choose from: %s)", flag, value, JoinChoices(allowed))
}

// ChooseAll validates every value and stops at the first invalid one.
func ChooseAll[T ~string](flag string, values []string, allowed []T) ([]T, error) {
	out := make([]T, 0, len(values))
	seen := make(map[T]bool, len(values))
	for _, v := range values {
		c, err := Choose(flag, v, allowed)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}

// JoinChoices renders an allow-list for help text and error messages.
func JoinChoices[T ~string](allowed []T) string {
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}

// RegisterChoices wires the allow-list into shell completion for a flag.
func RegisterChoices[T ~string](cmd *cobra.Command, flag string, allowed []T) {
	values := make([]string, len(allowed))
	for i, a := range allowed {
		values[i] = string(a)
	}
	_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}
