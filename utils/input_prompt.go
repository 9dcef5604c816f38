package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/jjgen/constants/lipgloss"
)

// ConfirmPrompt asks a yes/no question and reports whether the answer was yes.
// An empty answer or end of input counts as no.
func ConfirmPrompt(reader *bufio.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprint(out, lipgloss.BlueSky.Render(question+" (y/N): "))

	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("error reading input: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
