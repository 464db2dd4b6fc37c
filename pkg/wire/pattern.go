package wire

import "strings"

// Wildcard is the trailing marker that turns a pattern into a prefix match.
const Wildcard = "*"

// Matches reports whether pattern matches the channel name.
//
// A pattern without a wildcard matches only the identical name. A pattern
// ending in Wildcard matches every name that starts with the text before
// it; segment boundaries are not considered, so "foo*" matches "foo.bar"
// and "foobar" alike.
func Matches(pattern, channel string) bool {
	if prefix, ok := strings.CutSuffix(pattern, Wildcard); ok {
		return strings.HasPrefix(channel, prefix)
	}
	return pattern == channel
}

// validatePattern checks a pattern used for registration or skip rules.
func validatePattern(op, pattern string) error {
	switch {
	case pattern == "":
		return invalid(op, "pattern", pattern, ErrEmptyPattern)
	case strings.HasPrefix(pattern, Wildcard):
		return invalid(op, "pattern", pattern, ErrLeadingWildcard)
	case strings.Count(pattern, Wildcard) > 1,
		strings.Contains(pattern, Wildcard) && !strings.HasSuffix(pattern, Wildcard):
		return invalid(op, "pattern", pattern, ErrWildcardPlacement)
	}
	return nil
}

// validateChannel checks a literal channel name used for emit.
func validateChannel(op, channel string) error {
	switch {
	case channel == "":
		return invalid(op, "channel", channel, ErrEmptyChannel)
	case strings.Contains(channel, Wildcard):
		return invalid(op, "channel", channel, ErrWildcardChannel)
	}
	return nil
}
