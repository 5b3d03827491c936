package cli

import "strings"

// HelpToken is the token an empty invocation is rewritten to.
const HelpToken = "--help"

// Preprocess normalizes raw process arguments into the token list handed to
// the startup-path decision and the command dispatcher. An empty invocation
// is rewritten to a help request. Malformed property syntax fails with a
// UsageError; the caller must map it to a usage exit and run nothing else.
func Preprocess(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{HelpToken}, nil
	}

	out := make([]string, 0, len(args))
	for _, arg := range args {
		if err := checkPropertySyntax(arg); err != nil {
			return nil, err
		}
		out = append(out, arg)
	}
	return out, nil
}

// checkPropertySyntax rejects long options with a missing or whitespace
// property key, such as "--=value" or "-- key=value". Values are not
// inspected here; individual commands own their value validation.
func checkPropertySyntax(arg string) error {
	if !strings.HasPrefix(arg, "--") || arg == "--" {
		return nil
	}

	body := arg[2:]
	key := body
	if i := strings.IndexByte(body, '='); i >= 0 {
		key = body[:i]
	}

	if key == "" {
		return Usagef("invalid option %q: option name is missing", arg)
	}
	if strings.ContainsAny(key, " \t") {
		return Usagef("invalid option %q: option name must not contain whitespace", arg)
	}
	return nil
}
