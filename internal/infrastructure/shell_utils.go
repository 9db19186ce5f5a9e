package infrastructure

import "strings"

// shellSpecial lists the characters that force quoting when a command line
// is rendered for log output.
const shellSpecial = " \t\n\r'\"$`\\!*?[](){}|;<>&~#%"

// ShellEscape escapes a string for safe display in a shell command line.
// Display only - exec.Command passes arguments directly to the process and
// needs no quoting.
func ShellEscape(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, shellSpecial) {
		return s
	}
	// Single-quote everything; an embedded single quote becomes '"'"'
	// (close quote, quoted quote, reopen quote).
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// ShellEscapeCommand renders a binary and its arguments as a shell-safe
// command line for logging.
func ShellEscapeCommand(binary string, args ...string) string {
	var b strings.Builder
	b.WriteString(ShellEscape(binary))
	for _, arg := range args {
		b.WriteByte(' ')
		b.WriteString(ShellEscape(arg))
	}
	return b.String()
}
