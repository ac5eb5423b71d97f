package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"storyshare/internal/app"
	"storyshare/internal/companion"

	"github.com/spf13/cobra"
)

const companionHelp = `Type a message and press Enter. Commands:
  /voice   start or stop dictation; dictated text is sent with the next Enter
  /draft   show the dictated text so far
  /quit    leave`

// companion command
var companionCmd = &cobra.Command{
	Use:   "companion",
	Short: "Talk with a supportive companion",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		voice, _ := cmd.Flags().GetString("voice")
		transcript, _ := cmd.Flags().GetString("transcript")
		encrypt, _ := cmd.Flags().GetBool("encrypt")

		if encrypt && transcript == "" {
			return fmt.Errorf("--encrypt requires --transcript")
		}

		a, err := newApp(cmd.Context(), "Companion")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.NewCompanion(name, voice, func(err error) {
			fmt.Fprintf(os.Stderr, "voice input stopped: %v\n", err)
		})
		if err != nil {
			return err
		}
		defer c.Dictation.Stop()

		chatErr := chat(cmd.Context(), c, os.Stdin, os.Stdout)

		if transcript != "" {
			if err := a.ExportTranscript(transcript, c.Session, encrypt); err != nil {
				return errors.Join(chatErr, err)
			}
			fmt.Printf("Transcript saved to %s\n", transcript)
		}
		return chatErr
	},
}

func chat(ctx context.Context, c *app.Companion, in io.Reader, out io.Writer) error {
	persona := c.Session.Persona()
	fmt.Fprintln(out, companionHelp)
	fmt.Fprintln(out)
	for _, m := range c.Session.Messages() {
		fmt.Fprintln(out, companion.FormatMessage(persona, m))
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

		switch line {
		case "/quit", "/exit":
			return nil
		case "/help":
			fmt.Fprintln(out, companionHelp)
			continue
		case "/draft":
			fmt.Fprintf(out, "draft: %s\n", c.Draft.Text())
			continue
		case "/voice":
			if err := c.Dictation.Toggle(ctx); err != nil {
				if errors.Is(err, companion.ErrVoiceUnsupported) {
					fmt.Fprintln(out, "Voice input is not available. Set companion.dictation_path in the config to enable it.")
					continue
				}
				fmt.Fprintf(out, "could not start voice input: %v\n", err)
				continue
			}
			if c.Dictation.Listening() {
				fmt.Fprintln(out, "listening...")
			} else {
				fmt.Fprintln(out, "voice input off")
			}
			continue
		}

		if line != "" {
			c.Draft.Append(line)
		}
		text := c.Draft.Take()

		pending, err := c.Session.Send(ctx, text)
		if errors.Is(err, companion.ErrSlowDown) {
			c.Draft.Set(text)
			fmt.Fprintln(out, "You're sending messages quickly. Take a breath, then try again.")
			continue
		}
		if err != nil {
			return err
		}
		if pending == nil {
			continue
		}

		msgs := c.Session.Messages()
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].FromUser {
				fmt.Fprintln(out, companion.FormatMessage(persona, msgs[i]))
				break
			}
		}
		fmt.Fprintf(out, "%s is typing...\n", persona.DisplayName())

		reply, err := pending.Wait(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(out, "%s could not reply: %v\n", persona.DisplayName(), err)
			continue
		}
		fmt.Fprintln(out, companion.FormatMessage(persona, reply))
	}
}

var companionDecryptCmd = &cobra.Command{
	Use:   "decrypt PATH",
	Short: "Print an encrypted transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "DecryptTranscript")
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.KeysConfigured() {
			return fmt.Errorf("transcript keys not set up: run `storyshare config keys`")
		}

		pass, err := readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		return a.DecryptTranscript(args[0], pass, os.Stdout)
	},
}
