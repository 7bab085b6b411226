// Copyright (c) Microsoft. All rights reserved.

package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompt texts.
const (
	ChatPrompt  = "Enter the prompt (or type 'quit' to exit): "
	AgentPrompt = "Enter a prompt (or type 'quit' to exit): "

	blankNotice = "Please enter a prompt."
	quitCommand = "quit"

	maxLineSize = 1 << 20
)

// Prompter reads user input one line at a time.
type Prompter struct {
	sc     *bufio.Scanner
	out    io.Writer
	prompt string
}

// NewPrompter returns a [Prompter] reading from in and writing prompt text
// to out.
func NewPrompter(in io.Reader, out io.Writer, prompt string) *Prompter {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Prompter{sc: sc, out: out, prompt: prompt}
}

// Next returns the next non-blank line. It returns ok=false once the user
// types "quit" (in any case) or input is exhausted. Blank lines print a
// notice and are skipped.
func (p *Prompter) Next() (line string, ok bool, err error) {
	for {
		fmt.Fprint(p.out, p.prompt)
		if !p.sc.Scan() {
			if err := p.sc.Err(); err != nil {
				return "", false, fmt.Errorf("read input: %w", err)
			}
			return "", false, nil
		}

		line = strings.TrimRight(p.sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.EqualFold(trimmed, quitCommand):
			return "", false, nil
		case trimmed == "":
			fmt.Fprintln(p.out, blankNotice)
		default:
			return line, true, nil
		}
	}
}
