// Package prompt asks the user yes/no questions, through a huh form on a
// terminal and through plain line input everywhere else.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"

	"github.com/louiss0/vulkan-sdk-setup/custom_errors"
)

// YesNoAsker blocks until the user answers question.
type YesNoAsker interface {
	Ask(question string) (bool, error)
}

// New picks the huh confirm form when in is an interactive terminal and
// falls back to reading lines otherwise (pipes, CI, tests).
func New(in io.Reader, out io.Writer) YesNoAsker {
	if file, ok := in.(*os.File); ok && isTerminal(file) {
		return NewHuhAsker()
	}
	return NewLineAsker(in, out)
}

func isTerminal(file *os.File) bool {
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

type huhAsker struct {
	accessible bool
}

// NewHuhAsker renders the question as a huh confirm field.
// Setting ACCESSIBLE in the environment switches huh to its screen-reader mode.
func NewHuhAsker() YesNoAsker {
	return &huhAsker{accessible: os.Getenv("ACCESSIBLE") != ""}
}

func (a *huhAsker) Ask(question string) (bool, error) {
	var confirmed bool

	confirm := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	err := huh.NewForm(huh.NewGroup(confirm)).
		WithAccessible(a.accessible).
		Run()

	if errors.Is(err, huh.ErrUserAborted) {
		return false, fmt.Errorf("%w: aborted by user", custom_errors.ErrPromptFailed)
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", custom_errors.ErrPromptFailed, err)
	}
	return confirmed, nil
}

type lineAsker struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineAsker prints the question followed by "[Y/N]: " and reads lines
// until one starts with y or n, ignoring case and surrounding spaces.
func NewLineAsker(in io.Reader, out io.Writer) YesNoAsker {
	return &lineAsker{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (a *lineAsker) Ask(question string) (bool, error) {
	fmt.Fprintln(a.out, question)

	for {
		fmt.Fprint(a.out, "[Y/N]: ")

		line, err := a.in.ReadString('\n')
		if answer, ok := ParseAnswer(line); ok {
			return answer, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, fmt.Errorf("%w: input closed before an answer was given", custom_errors.ErrPromptFailed)
			}
			return false, fmt.Errorf("%w: %w", custom_errors.ErrPromptFailed, err)
		}
	}
}

// ParseAnswer reads the first letter of reply: y means yes, n means no.
// ok is false for anything else, including a blank reply.
func ParseAnswer(reply string) (answer bool, ok bool) {
	reply = strings.ToLower(strings.TrimSpace(reply))
	if reply == "" {
		return false, false
	}

	switch reply[0] {
	case 'y':
		return true, true
	case 'n':
		return false, true
	default:
		return false, false
	}
}

type fixedAsker struct {
	answer bool
	out    io.Writer
}

// NewFixedAsker answers every question with answer and echoes the decision,
// which is what --yes and --no-prompt use.
func NewFixedAsker(answer bool, out io.Writer) YesNoAsker {
	return &fixedAsker{answer: answer, out: out}
}

func (a *fixedAsker) Ask(question string) (bool, error) {
	fmt.Fprintf(a.out, "%s %s\n", question, lo.Ternary(a.answer, "[assumed yes]", "[assumed no]"))
	return a.answer, nil
}
