package runtime

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lambda-lang/lambda/internal/item"
)

// FnPrint writes s to stdout, grounded on the teacher's builtins_io.go
// fn_print. Always returns UNDEFINED, matching spec.md §4.5's print
// built-in (side effect only, no meaningful return value).
func (c *Context) FnPrint(s string) item.Item {
	fmt.Fprintln(os.Stdout, s)
	return item.UndefinedItem
}

// FnFormat is a thin Sprintf-style formatter (fn_format).
func (c *Context) FnFormat(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// FnInput reads one line from stdin (fn_input). Whether stdin is an
// interactive terminal is detected with mattn/go-isatty, grounded on the
// teacher's cmd/funxy CLI shape — an interactive terminal gets a prompt
// written to stderr first, a piped/redirected stdin does not.
func (c *Context) FnInput(prompt string) (string, item.Item) {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Fprint(os.Stderr, prompt)
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", item.ErrorItem
	}
	return trimNewline(line), item.UndefinedItem
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
