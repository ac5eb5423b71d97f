package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"storyshare/internal/app"
	"storyshare/internal/config"
	"storyshare/internal/story"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a StoryApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Browse", "Submit").
func newApp(ctx context.Context, operation string) (*app.StoryApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadOrDefault(defaults["config_path"], defaults["base_dir"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewStoryApp(ctx, cfg, operation, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readPassphrase prompts on stderr. Input is hidden when stdin is a terminal.
func readPassphrase(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	fmt.Fprint(os.Stderr, prompt)
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(b), nil
}

var rootCmd = &cobra.Command{
	Use:          "storyshare",
	Short:        "Read and share personal stories",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])

		keys, _ := cmd.Flags().GetBool("keys")
		if !keys {
			return nil
		}
		return setupKeys(cmd.Context())
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Create transcript encryption keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setupKeys(cmd.Context())
	},
}

func setupKeys(ctx context.Context) error {
	a, err := newApp(ctx, "SetupKeys")
	if err != nil {
		return err
	}
	defer a.Close()

	if a.KeysConfigured() {
		fmt.Println("Encryption keys already exist.")
		return nil
	}

	pass, err := readPassphrase("Passphrase: ")
	if err != nil {
		return err
	}
	confirm, err := readPassphrase("Confirm passphrase: ")
	if err != nil {
		return err
	}
	if pass != confirm {
		return fmt.Errorf("passphrases do not match")
	}

	if err := a.SetupKeys(pass); err != nil {
		return err
	}

	enc := a.Config().Encryption
	fmt.Printf("Public key:  %s\n", enc.PublicKeyPath)
	fmt.Printf("Private key: %s\n", enc.PrivateKeyPath)
	return nil
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadOrDefault(defaults["config_path"], defaults["base_dir"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Log Level:  %s\n", cfg.Log.Level)
		fmt.Printf("Catalog:    %s", cfg.Catalog.Type)
		if cfg.Catalog.Path != "" {
			fmt.Printf(" (%s)", cfg.Catalog.Path)
		}
		fmt.Println()
		fmt.Printf("Assets:     %s", cfg.Assets.Type)
		switch cfg.Assets.Type {
		case "filesystem":
			fmt.Printf(" (%s)", cfg.Assets.Root)
		case "s3":
			fmt.Printf(" (s3://%s/%s)", cfg.Assets.S3Bucket, cfg.Assets.S3Prefix)
		}
		fmt.Println()
		fmt.Printf("Companion:  %s (%s)\n", cfg.Companion.Name, cfg.Companion.Voice)
		fmt.Printf("Encryption: %s\n", cfg.Encryption.Type)
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify catalogs and the image store are reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Check")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Check(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("Catalogs: %s\n", strings.Join(a.CatalogNames(), ", "))
		fmt.Println("OK")
		return nil
	},
}

// emotions command
var emotionsCmd = &cobra.Command{
	Use:   "emotions",
	Short: "List the emotions stories can be filtered by",
	Run: func(cmd *cobra.Command, args []string) {
		for _, e := range story.Emotions() {
			fmt.Println(e)
		}
	},
}

// stories command
var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "List stories, optionally filtered by text and emotion",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogName, _ := cmd.Flags().GetString("catalog")
		search, _ := cmd.Flags().GetString("search")
		emotions, _ := cmd.Flags().GetStringSlice("emotion")

		a, err := newApp(cmd.Context(), "Browse")
		if err != nil {
			return err
		}
		defer a.Close()

		state, err := app.NewFilterState(search, emotions)
		if err != nil {
			return err
		}

		stories, err := a.Browse(cmd.Context(), catalogName, state)
		if err != nil {
			return err
		}

		printStories(os.Stdout, a, stories)
		return nil
	},
}

var storiesShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a story in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogName, _ := cmd.Flags().GetString("catalog")
		imageOut, _ := cmd.Flags().GetString("image-out")

		a, err := newApp(cmd.Context(), "ShowStory")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.Story(cmd.Context(), catalogName, args[0])
		if err != nil {
			return err
		}

		printStory(os.Stdout, a, s)

		if imageOut != "" {
			if s.Image == "" {
				fmt.Println("This story has no image.")
				return nil
			}
			if err := a.SaveImage(cmd.Context(), s, imageOut); err != nil {
				return err
			}
			fmt.Printf("Image saved to %s\n", imageOut)
		}
		return nil
	},
}

func printStories(w io.Writer, a *app.StoryApp, stories []story.Story) {
	if len(stories) == 0 {
		fmt.Fprintln(w, "No stories found matching your criteria. Try adjusting your filters or search term.")
		return
	}
	now := a.Now()
	for _, s := range stories {
		fmt.Fprintf(w, "[%d] %s  (%s)\n", s.ID, s.Title, joinEmotions(s.Emotions))
		fmt.Fprintf(w, "     by %s, %s\n", s.DisplayAuthor(), s.DisplayTime(now))
	}
}

func printStory(w io.Writer, a *app.StoryApp, s story.Story) {
	fmt.Fprintf(w, "%s\n", s.Title)
	fmt.Fprintf(w, "by %s, %s\n", s.DisplayAuthor(), s.DisplayTime(a.Now()))
	fmt.Fprintf(w, "Emotions: %s\n\n", joinEmotions(s.Emotions))
	fmt.Fprintln(w, s.Content)
}

func joinEmotions(tags []story.Emotion) string {
	names := make([]string, len(tags))
	for i, e := range tags {
		names[i] = e.String()
	}
	return strings.Join(names, ", ")
}

// post command
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Share a story",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		content, _ := cmd.Flags().GetString("content")
		file, _ := cmd.Flags().GetString("file")
		emotions, _ := cmd.Flags().GetStringSlice("emotion")

		if file != "" {
			if content != "" {
				return fmt.Errorf("use either --content or --file, not both")
			}
			var b []byte
			var err error
			if file == "-" {
				b, err = io.ReadAll(os.Stdin)
			} else {
				b, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("reading story content: %w", err)
			}
			content = string(b)
		}

		a, err := newApp(cmd.Context(), "Submit")
		if err != nil {
			return err
		}
		defer a.Close()

		pending, err := a.Submit(cmd.Context(), title, content, author, emotions)
		if err != nil {
			return err
		}

		fmt.Println("Sharing your story...")
		receipt, err := pending.Wait(cmd.Context())
		if err != nil {
			return fmt.Errorf("sharing story: %w", err)
		}

		fmt.Printf("Story shared: %s\n", receipt.Title)
		fmt.Printf("ID:       %s\n", receipt.ID)
		fmt.Printf("Author:   %s\n", receipt.Author)
		fmt.Printf("Emotions: %s\n", joinEmotions(receipt.Emotions))
		fmt.Printf("Words:    %d\n\n", receipt.Words)
		fmt.Println(receipt.Message)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().Bool("keys", false, "Also create transcript encryption keys")
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configCheckCmd)

	// stories subcommands
	storiesCmd.PersistentFlags().StringP("catalog", "c", "", "Catalog to read (default from config)")
	storiesCmd.Flags().StringP("search", "s", "", "Only stories whose title or content contains this text")
	storiesCmd.Flags().StringSliceP("emotion", "e", nil, "Only stories tagged with any of these emotions")
	storiesCmd.AddCommand(storiesShowCmd)
	storiesShowCmd.Flags().String("image-out", "", "Save the story's image to this path")

	browseCmd.Flags().StringP("catalog", "c", "", "Catalog to read (default from config)")

	postCmd.Flags().StringP("title", "t", "", "Story title (required)")
	postCmd.Flags().StringP("author", "a", "", "Name to show (default Anonymous)")
	postCmd.Flags().String("content", "", "Story text")
	postCmd.Flags().StringP("file", "f", "", "Read story text from a file, or - for stdin")
	postCmd.Flags().StringSliceP("emotion", "e", nil, "Emotions the story carries (at least one)")

	companionCmd.Flags().String("name", "", "Companion name (default from config)")
	companionCmd.Flags().String("voice", "", "Companion voice: female or male")
	companionCmd.Flags().String("transcript", "", "Write the conversation to this file on exit")
	companionCmd.Flags().Bool("encrypt", false, "Encrypt the transcript with the configured keys")
	companionCmd.AddCommand(companionDecryptCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(emotionsCmd)
	rootCmd.AddCommand(storiesCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(companionCmd)
}
