package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"libris/internal/adapters/sqlite"
	"libris/internal/adapters/tui"
	"libris/internal/config"
	"libris/internal/shell"
)

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:   "libris",
	Short: "Interactive shell over a tagged book library",
	Long: `libris presents a relational book library as a Unix-like virtual
filesystem: books, authors, subjects, and hierarchical tags become
directories, files, and symlinks.

Running libris with no arguments starts the interactive shell. Commands
can be piped, e.g.:

  ls /tags/Work | sort | head -n 5
  cat /tags/Work/stats
  echo 4caf50 | write /tags/Work/color`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, closeStore, err := setup()
		if err != nil {
			return err
		}
		defer closeStore()

		sh := shell.New(env, shell.DefaultRegistry(), os.Stdin, os.Stdout)
		return sh.Run(cmd.Context())
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <line>",
	Short: "Run a single shell line and exit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, closeStore, err := setup()
		if err != nil {
			return err
		}
		defer closeStore()

		output, err := shell.DefaultRegistry().Run(cmd.Context(), env, args[0])
		if err != nil {
			return errors.New(err.Error() + shell.Hint(err))
		}
		if output != nil && *output != "" {
			fmt.Println(*output)
		}
		return nil
	},
}

var (
	addTitle    string
	addAuthors  []string
	addSubjects []string
)

var addBookCmd = &cobra.Command{
	Use:   "add-book",
	Short: "Add a book to the library",
	Long: `Add a book with its authors and subjects, e.g.:

  libris add-book --title "The Dispossessed" --author "Ursula K. Le Guin" --subject "Science Fiction"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.AddBook(cmd.Context(), addTitle, addAuthors, addSubjects)
		if err != nil {
			return err
		}
		fmt.Printf("✓ added book %d: %s\n", id, addTitle)
		return nil
	},
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	slog.SetLogLoggerLevel(cfg.Log.SlogLevel())
	return cfg, nil
}

func setup() (*shell.Env, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	env := shell.NewEnv(
		store,
		tui.NewConfirmer(os.Stdin, os.Stdout),
		tui.NewPager(),
		clipboard.WriteAll,
	)
	return env, func() { store.Close() }, nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the library database (overrides config)")

	addBookCmd.Flags().StringVar(&addTitle, "title", "", "book title")
	addBookCmd.Flags().StringArrayVar(&addAuthors, "author", nil, "author name (repeatable)")
	addBookCmd.Flags().StringArrayVar(&addSubjects, "subject", nil, "subject name (repeatable)")
	addBookCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(execCmd, addBookCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	if env := os.Getenv("LIBRIS_CONFIG"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.config/libris/config.yaml"
}
