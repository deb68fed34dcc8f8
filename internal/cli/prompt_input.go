package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// menuPrompter asks the menu's questions. Select returns the zero-based
// index of the chosen option.
type menuPrompter interface {
	Select(title string, options []string) (int, error)
	Input(title string) (string, error)
}

// linePrompter prints numbered options and reads answers line by line.
// It is used when stdin is not a terminal.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// newLinePrompter buffers in so a CRLF pair ends exactly one answer.
func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	if in == nil {
		in = eofReader{}
	}
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }

// Select re-asks until a listed number is entered. Input errors (io.EOF
// included) are returned as is.
func (p *linePrompter) Select(title string, options []string) (int, error) {
	for {
		fmt.Fprintf(p.out, "\n%s\n", title)
		for i, opt := range options {
			fmt.Fprintf(p.out, "%d) %s\n", i+1, opt)
		}
		fmt.Fprint(p.out, "Enter choice: ")

		text, err := readPromptLine(p.in)
		if err != nil {
			return -1, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(text))
		if convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprint(p.out, "\nInvalid choice.\n")
	}
}

func (p *linePrompter) Input(title string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", title)
	text, err := readPromptLine(p.in)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// readPromptLine reads until either LF or CR so Enter works in normal and raw terminal modes.
// When in is a *bufio.Reader, the LF of a CRLF pair is consumed with the CR.
// A final unterminated line is returned without error.
func readPromptLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var buf []byte
	var one [1]byte

	for {
		n, err := in.Read(one[:])
		if n > 0 {
			switch one[0] {
			case '\r':
				skipLF(in)
				return string(buf), nil
			case '\n':
				return string(buf), nil
			default:
				buf = append(buf, one[0])
			}
		}

		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}

func skipLF(in io.Reader) {
	br, ok := in.(*bufio.Reader)
	if !ok {
		return
	}
	if next, err := br.Peek(1); err == nil && next[0] == '\n' {
		br.Discard(1)
	}
}
