package support

// RequireNonEmpty fails with a Usage error if s is empty. Used at API
// boundaries that need an explicit argument check instead of letting a
// nil/empty value propagate into the wire layer.
func RequireNonEmpty(s, argName string) error {
	if s == "" {
		return &UsageError{Msg: argName + " must not be empty"}
	}
	return nil
}

// RequireNonNegative fails with a Usage error if n is negative.
func RequireNonNegative(n int, argName string) error {
	if n < 0 {
		return &UsageError{Msg: argName + " must not be negative"}
	}
	return nil
}

// RequireNonEmptyServers fails with a Usage error if the resolver's
// forwarder list is empty, taking a length rather than the slice's
// element type to avoid an import of net/netip in this package.
func RequireNonEmptyServers(count int) error {
	if count == 0 {
		return &UsageError{Msg: "resolver requires at least one server"}
	}
	return nil
}
