package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/redline/internal/app"
	"github.com/zjrosen/redline/internal/config"
	"github.com/zjrosen/redline/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "redline",
	Short:   "An interactive prompt line with live spell highlighting",
	Long:    `An interactive prompt line that re-tokenizes the buffer as you type and highlights misspelled words against a Hunspell-style word list, with suggestions for the word under the cursor.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/redline/config.yaml)")
	rootCmd.Flags().String("aff", "", "path to Hunspell affix file (.aff)")
	rootCmd.Flags().String("dict", "", "path to Hunspell word list (.dic)")
	rootCmd.Flags().Bool("debug", false, "write a debug log to redline.log")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable automatic dictionary reload when the files change")

	// Bind flags to viper
	_ = viper.BindPFlag("dictionary.affix_path", rootCmd.Flags().Lookup("aff"))
	_ = viper.BindPFlag("dictionary.wordlist_path", rootCmd.Flags().Lookup("dict"))
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("dictionary.auto_reload", defaults.Dictionary.AutoReload)
	viper.SetDefault("dictionary.reload_debounce", defaults.Dictionary.ReloadDebounce)
	viper.SetDefault("dictionary.cache_ttl", defaults.Dictionary.CacheTTL)
	viper.SetDefault("theme.misspelled", defaults.Theme.Misspelled)
	viper.SetDefault("theme.suggestion", defaults.Theme.Suggestion)
	viper.SetDefault("theme.prompt", defaults.Theme.Prompt)

	viper.SetEnvPrefix("redline")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .redline/config.yaml (current directory)
		// 2. ~/.config/redline/config.yaml (user config)
		if _, err := os.Stat(".redline/config.yaml"); err == nil {
			viper.SetConfigFile(".redline/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "redline"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - continue with defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "reading config: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if cfg.Debug || os.Getenv("REDLINE_DEBUG") != "" {
		cleanup, err := log.InitWithTeaLog("redline.log", "redline")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()

		// REDLINE_DEBUG can carry a level name ("warn"); any other
		// non-empty value just enables debug logging.
		if level, ok := log.ParseLevel(os.Getenv("REDLINE_DEBUG")); ok {
			log.SetMinLevel(level)
		}
		log.Info(log.CatConfig, "configuration loaded", "file", viper.ConfigFileUsed())
	}

	if noReload, _ := cmd.Flags().GetBool("no-auto-reload"); noReload {
		cfg.Dictionary.AutoReload = false
	}

	model, err := app.New(cfg)
	if err != nil {
		return err
	}

	// Inline (no alt screen): the prompt renders where the shell left off.
	p := tea.NewProgram(model)
	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
