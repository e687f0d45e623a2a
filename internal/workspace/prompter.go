package workspace

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/temirov/gareth/internal/repos/shared"
)

// IOPrompter reads operator answers from an io.Reader and writes prompts to an io.Writer.
type IOPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOPrompter constructs a prompter from the provided reader and writer.
func NewIOPrompter(input io.Reader, output io.Writer) *IOPrompter {
	if input == nil {
		input = strings.NewReader("")
	}
	return &IOPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and interprets affirmative responses (y/yes). End of input declines.
func (prompter *IOPrompter) Confirm(prompt string) (shared.ConfirmationResult, error) {
	response, readError := prompter.readLine(prompt)
	if readError != nil {
		return shared.ConfirmationResult{}, readError
	}

	switch strings.ToLower(response) {
	case "y", "yes":
		return shared.ConfirmationResult{Confirmed: true}, nil
	default:
		return shared.ConfirmationResult{}, nil
	}
}

// Ask writes the prompt and returns the trimmed answer, or defaultValue when the answer is empty.
func (prompter *IOPrompter) Ask(prompt string, defaultValue string) (string, error) {
	response, readError := prompter.readLine(prompt)
	if readError != nil {
		return "", readError
	}
	if len(response) == 0 {
		return defaultValue, nil
	}
	return response, nil
}

func (prompter *IOPrompter) readLine(prompt string) (string, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
			return "", writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return "", readError
	}
	return strings.TrimSpace(response), nil
}

// FileTerminalDetector reports whether an input stream is an interactive terminal.
type FileTerminalDetector struct {
	input io.Reader
}

// NewTerminalDetector constructs a detector for the provided input stream.
func NewTerminalDetector(input io.Reader) FileTerminalDetector {
	return FileTerminalDetector{input: input}
}

// IsInteractive reports true only for *os.File inputs attached to a terminal.
func (detector FileTerminalDetector) IsInteractive() bool {
	file, isFile := detector.input.(*os.File)
	if !isFile || file == nil {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
