package eval

import "fmt"

// Help is implemented by anything that can describe itself to a user: every
// Command, and the closures users declare.
type Help interface {
	Signature() string
	ShortHelp() string
	LongHelp() string
}

// FormatHelp renders a full help block for h: its signature, its short
// help, and its long help when it has one.
func FormatHelp(name string, h Help) string {
	long := h.LongHelp()
	if long == "" {
		return fmt.Sprintf("%s\n\n    %s\n", h.Signature(), h.ShortHelp())
	}
	return fmt.Sprintf("%s\n\n    %s\n\n%s\n", h.Signature(), h.ShortHelp(), long)
}
