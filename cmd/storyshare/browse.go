package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"storyshare/internal/app"
	"storyshare/internal/story"

	"github.com/spf13/cobra"
)

const browseHelp = `Commands:
  search TEXT   show stories containing TEXT (search alone clears it)
  emotion NAME  toggle an emotion filter
  clear         remove all filters
  open ID       read a story
  help          show this help
  quit          leave`

// browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stories interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogName, _ := cmd.Flags().GetString("catalog")

		a, err := newApp(cmd.Context(), "Browse")
		if err != nil {
			return err
		}
		defer a.Close()

		return browse(cmd.Context(), a, catalogName, os.Stdin, os.Stdout)
	},
}

// readLines delivers lines from r until it ends or ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func browse(ctx context.Context, a *app.StoryApp, catalogName string, in io.Reader, out io.Writer) error {
	var state story.FilterState
	show := func() error {
		stories, err := a.Browse(ctx, catalogName, state)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		printStories(out, a, stories)
		fmt.Fprintf(out, "\n%s> ", describeFilter(state))
		return nil
	}

	fmt.Fprintln(out, browseHelp)
	if err := show(); err != nil {
		return err
	}

	lines := readLines(ctx, in)
	for {
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(l)
		}

		verb, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(verb) {
		case "":
		case "q", "quit", "exit":
			return nil
		case "h", "help", "?":
			fmt.Fprintln(out, browseHelp)
		case "s", "search":
			state = state.WithSearch(arg)
		case "e", "emotion":
			e, err := story.ParseEmotion(arg)
			if err != nil {
				fmt.Fprintf(out, "%v (choose from %s)\n", err, joinEmotions(story.Emotions()))
				break
			}
			state = state.Toggle(e)
		case "c", "clear":
			state = state.Clear()
		case "o", "open":
			s, err := a.Story(ctx, catalogName, arg)
			if err != nil {
				fmt.Fprintln(out, err)
				break
			}
			fmt.Fprintln(out)
			printStory(out, a, s)
			fmt.Fprintf(out, "\n%s> ", describeFilter(state))
			continue
		default:
			fmt.Fprintf(out, "unknown command %q, type help for a list\n", verb)
		}

		if err := show(); err != nil {
			return err
		}
	}
}

func describeFilter(state story.FilterState) string {
	if state.IsEmpty() {
		return "all stories "
	}
	var parts []string
	if state.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", state.Search))
	}
	if state.Emotions.Len() > 0 {
		parts = append(parts, joinEmotions(state.Emotions.Slice()))
	}
	return strings.Join(parts, " + ") + " "
}
