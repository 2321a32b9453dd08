// Package input reads console command lines for the interactive GDL
// query console, either directly from a stream or via GNU-readline-style
// editing and history when attached to a real terminal.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DirectCommandReader reads command lines from any generic input stream
// directly. It can be used with any io.Reader but does not sanitize
// input of control and escape sequences.
//
// DirectCommandReader should not be used directly; instead, create one
// with [NewDirectReader].
type DirectCommandReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveCommandReader reads command lines from stdin using a Go
// implementation of the GNU Readline library, keeping input clear of
// typing and editing escape sequences and enabling command history. This
// should generally only be used when directly connected to a TTY.
//
// InteractiveCommandReader should not be used directly; instead, create
// one with [NewInteractiveReader].
type InteractiveCommandReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectReader creates a DirectCommandReader and initializes a
// buffered reader on r. The returned reader must have Close called on it
// before disposal.
func NewDirectReader(r io.Reader) *DirectCommandReader {
	return &DirectCommandReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates an InteractiveCommandReader and
// initializes readline. The returned reader must have Close called on it
// before disposal to properly tear down readline resources.
func NewInteractiveReader(prompt string) (*InteractiveCommandReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveCommandReader{
		rl:     rl,
		prompt: prompt,
	}, nil
}

// Close cleans up resources associated with dcr. It does not currently
// own any, but callers should treat it as though it must have Close
// called on it, in case that changes.
func (dcr *DirectCommandReader) Close() error {
	return nil
}

// Close cleans up readline resources associated with icr.
func (icr *InteractiveCommandReader) Close() error {
	return icr.rl.Close()
}

// ReadCommand reads the next line from the underlying stream. The
// returned string is only empty on error or blank-line suppression;
// otherwise it blocks until a line containing non-space characters is
// read. At end of input, the returned error is io.EOF.
func (dcr *DirectCommandReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dcr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && dcr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// ReadCommand reads the next command from stdin via readline. The
// returned string is only empty on error or blank-line suppression;
// otherwise it blocks until a line containing non-space characters is
// read. At end of input, the returned error is io.EOF.
func (icr *InteractiveCommandReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = icr.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && icr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank sets whether a blank line is returned as-is rather than
// skipped. By default it is not.
func (dcr *DirectCommandReader) AllowBlank(allow bool) {
	dcr.blanksAllowed = allow
}

// AllowBlank sets whether a blank line is returned as-is rather than
// skipped. By default it is not.
func (icr *InteractiveCommandReader) AllowBlank(allow bool) {
	icr.blanksAllowed = allow
}

// SetPrompt updates the prompt text.
func (icr *InteractiveCommandReader) SetPrompt(p string) {
	icr.prompt = p
	icr.rl.SetPrompt(p)
}

// GetPrompt returns the current prompt text.
func (icr *InteractiveCommandReader) GetPrompt() string {
	return icr.prompt
}
