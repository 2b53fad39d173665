package recorder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"rec2txt/internal/app/errors"
	"rec2txt/internal/app/model"
)

type lineResult struct {
	line string
	err  error
}

// Prompter asks the interactive questions of the record command.
// Every question returns ErrSelectionAborted on end of input or cancellation.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	once      sync.Once
	lines     chan lineResult
	done      chan struct{}
	closeOnce sync.Once
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, done: make(chan struct{})}
}

// Close stops the background reader once it has a line it cannot hand over.
// A read already blocked on the terminal ends with the process.
func (p *Prompter) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

// SelectSource lists sources and returns the chosen name; an empty answer picks
// the first entry.
func (p *Prompter) SelectSource(ctx context.Context, sources []model.AudioSource) (string, error) {
	if len(sources) == 0 {
		return "", errors.ErrNoAudioSources
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Select audio source:")
	for i, source := range sources {
		marker := ""
		if i == 0 {
			marker = " (default)"
		}
		fmt.Fprintf(p.out, "  [%d] %s%s\n", i, source.Description, marker)
	}
	fmt.Fprintln(p.out)

	last := len(sources) - 1
	for {
		answer, err := p.ask(ctx, fmt.Sprintf("Choice (0-%d, Enter for default): ", last))
		if err != nil {
			return "", err
		}
		if answer == "" {
			return sources[0].Name, nil
		}
		idx, convErr := strconv.Atoi(answer)
		if convErr != nil {
			fmt.Fprintln(p.out, "Please enter a number.")
			continue
		}
		if idx < 0 || idx > last {
			fmt.Fprintf(p.out, "Invalid choice, please enter 0-%d.\n", last)
			continue
		}
		return sources[idx].Name, nil
	}
}

// AskLimit asks for an optional time limit; an empty answer means unlimited (0).
func (p *Prompter) AskLimit(ctx context.Context) (time.Duration, error) {
	for {
		answer, err := p.ask(ctx, "Recording length in minutes (Enter for unlimited): ")
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return 0, nil
		}
		minutes, convErr := strconv.Atoi(answer)
		if convErr != nil || minutes <= 0 {
			fmt.Fprintln(p.out, "Please enter a positive whole number of minutes.")
			continue
		}
		return time.Duration(minutes) * time.Minute, nil
	}
}

func (p *Prompter) ask(ctx context.Context, question string) (string, error) {
	fmt.Fprint(p.out, question)

	// A blocked read on a terminal cannot be interrupted, so lines are read
	// in the background and the wait selects on ctx.
	p.once.Do(func() {
		p.lines = make(chan lineResult)
		go p.readLines()
	})

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", errors.ErrSelectionAborted
	case <-p.done:
		return "", errors.ErrSelectionAborted
	case res, ok := <-p.lines:
		if !ok || res.err != nil {
			fmt.Fprintln(p.out)
			return "", errors.ErrSelectionAborted
		}
		return strings.TrimSpace(res.line), nil
	}
}

func (p *Prompter) readLines() {
	defer close(p.lines)
	for {
		line, err := p.in.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		select {
		case p.lines <- lineResult{line: line, err: err}:
		case <-p.done:
			return
		}
		if err != nil {
			return
		}
	}
}
