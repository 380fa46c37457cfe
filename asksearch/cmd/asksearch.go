// Command-line front-end for the asksearch proxy
package main

import (
	"asksearch/asksearch/submitter"
	"asksearch/asksearch/utils/color"
	"asksearch/asksearch/utils/jsonutils"
	"asksearch/asksearch/utils/logging"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

const defaultServerURL = "http://localhost:8000"

func main() {
	if err := logging.InitLogger(logging.Options{Dir: getEnv("ASKSEARCH_LOG_DIR", "./logs")}); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.Disable()
	}

	serverURL := getEnv("ASKSEARCH_URL", defaultServerURL)
	logging.AppLogger.Info("asksearch CLI started", zap.String("server", serverURL))

	s := submitter.New(submitter.NewHTTPTransport(serverURL, nil))
	fmt.Println(color.ColorInfo("Connected to " + serverURL))
	printHelp(os.Stdout)

	newREPL(s, os.Stdout).run(context.Background(), os.Stdin)
}

type repl struct {
	s   *submitter.Submitter
	out io.Writer
}

func newREPL(s *submitter.Submitter, out io.Writer) *repl {
	return &repl{s: s, out: out}
}

func (r *repl) run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, color.ColorPrompt("asksearch> "))
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			fmt.Fprintln(r.out, "Goodbye!")
			return
		}
		if line == "" {
			continue
		}
		r.handle(ctx, line)
	}
}

func (r *repl) handle(ctx context.Context, line string) {
	if !strings.HasPrefix(line, "/") {
		r.s.SetInput(line)
		r.submit(ctx, r.s.Submit)
		return
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/submit":
		r.submit(ctx, r.s.Submit)
	case "/retry":
		r.submit(ctx, r.s.Retry)
	case "/pick":
		i, ok := r.index(arg)
		if !ok {
			return
		}
		q, err := r.s.SelectFollowUp(i)
		if err != nil {
			r.warn(err)
			return
		}
		fmt.Fprintln(r.out, color.ColorInfo("Input set to: ")+q)
		fmt.Fprintln(r.out, color.ColorDim("Type /submit to search for it."))
	case "/expand":
		i, ok := r.index(arg)
		if !ok {
			return
		}
		if _, err := r.s.ToggleExpanded(i); err != nil {
			r.warn(err)
			return
		}
		r.render()
	case "/dismiss":
		r.s.DismissError()
		r.render()
	case "/show":
		r.render()
	case "/json":
		snap := r.s.Snapshot()
		if snap.Results == nil {
			r.warn(errors.New("no results to show"))
			return
		}
		fmt.Fprintln(r.out, jsonutils.ToJSON(snap.Results))
	case "/help":
		printHelp(r.out)
	default:
		r.warn(fmt.Errorf("unknown command %q", cmd))
	}
}

func (r *repl) submit(ctx context.Context, send func(context.Context) error) {
	fmt.Fprintln(r.out, color.ColorDim("Searching..."))
	err := send(ctx)
	switch {
	case errors.Is(err, submitter.ErrEmptyQuery):
		r.warn(errors.New("nothing to search for"))
	case errors.Is(err, submitter.ErrRequestPending):
		r.warn(err)
	default:
		r.render()
	}
}

// index parses a 1-based follow-up number.
func (r *repl) index(arg string) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		r.warn(fmt.Errorf("expected a follow-up number, got %q", arg))
		return 0, false
	}
	return n - 1, true
}

func (r *repl) render() {
	snap := r.s.Snapshot()
	switch snap.State {
	case submitter.StateError:
		fmt.Fprintln(r.out, color.ColorError("Search failed: ")+snap.Error)
		fmt.Fprintln(r.out, color.ColorDim("Type /retry to try again or /dismiss to clear."))
	case submitter.StateSuccess:
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, color.ColorAnswer(snap.Results.DirectAnswer))
		if len(snap.Results.PeopleAlsoAsk) == 0 {
			return
		}
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, color.ColorInfo("People also ask:"))
		for i, item := range snap.Results.PeopleAlsoAsk {
			marker := "+"
			if snap.Expanded[i] {
				marker = "-"
			}
			fmt.Fprintf(r.out, "  %s %d. %s\n", marker, i+1, color.ColorQuestion(item.Question))
			if snap.Expanded[i] {
				fmt.Fprintf(r.out, "       %s\n", item.Answer)
			}
		}
	case submitter.StatePending:
		fmt.Fprintln(r.out, color.ColorDim("A search is in progress."))
	default:
		fmt.Fprintln(r.out, color.ColorDim("No results yet."))
	}
}

func (r *repl) warn(err error) {
	fmt.Fprintln(r.out, color.ColorWarning(err.Error()))
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Type a question to search. Commands:")
	fmt.Fprintln(out, "  /pick N     put follow-up question N into the input")
	fmt.Fprintln(out, "  /submit     search for the current input")
	fmt.Fprintln(out, "  /expand N   show or hide the answer to follow-up N")
	fmt.Fprintln(out, "  /retry      repeat the last search")
	fmt.Fprintln(out, "  /dismiss    clear the error message")
	fmt.Fprintln(out, "  /show       print the current results")
	fmt.Fprintln(out, "  /json       print the current results as JSON")
	fmt.Fprintln(out, "  exit        quit")
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
