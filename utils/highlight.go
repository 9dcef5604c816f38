package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// HighlightCommandLine writes the command line to w as a shell snippet using
// the given chroma style. Arguments containing whitespace or quotes are quoted.
func HighlightCommandLine(w io.Writer, commandLine []string, theme string) error {
	quoted := make([]string, len(commandLine))
	for i, arg := range commandLine {
		quoted[i] = shellQuote(arg)
	}

	line := strings.Join(quoted, " \\\n    ") + "\n"
	if err := quick.Highlight(w, line, "bash", "terminal256", theme); err != nil {
		return fmt.Errorf("failed to highlight command line: %w", err)
	}
	return nil
}

func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n'\"\\$`") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
