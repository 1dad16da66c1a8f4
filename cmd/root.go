package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/tokenizer/internal/frame"
	"github.com/kiesman99/tokenizer/internal/tokenize"
	"github.com/kiesman99/tokenizer/pkg/tile"
	"github.com/kiesman99/tokenizer/pkg/token"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tokenizer FILE",
	Short: "Turn a tile of a generated image grid into a round token",
	Long: `tokenizer cuts one tile out of an image grid, such as the four-up
montages produced by generative-art tools, resizes it, cuts it into a circle
and lays a decorative frame over it.

Frames are read from the assets folder as border-<n>.png. Use frame 0 for a
token without a frame.

Examples:
  # Token from the top-right tile with the default frame
  tokenizer grid.png --tile 2

  # Upscaled image, 512 pixel token, no frame
  tokenizer upscaled.webp --size 512 --frame 0 -o hero.png

  # List available frames
  tokenizer frames

  # Start HTTP server
  tokenizer serve --port 8080`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no args, show help
		if len(args) == 0 {
			return cmd.Help()
		}
		return runTokenize(cmd, args[0])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), userMessage(err))
		os.Exit(exitCode(err))
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tokenizer.yaml)")
	rootCmd.PersistentFlags().String("assets", "assets", "directory holding border-<n>.png frames")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log pipeline details")
	rootCmd.PersistentFlags().Int("max-size", tokenize.DefaultMaxSize, "largest token width and height in pixels")
	rootCmd.PersistentFlags().Int64("max-source-pixels", tokenize.DefaultMaxSourcePixels, "largest source image (width*height) accepted")

	// Token options
	rootCmd.Flags().IntP("tile", "t", 0, "tile to tokenize, 1-4 (omit for upscaled images)")
	rootCmd.Flags().IntP("size", "s", tokenize.DefaultSize, "token width and height in pixels")
	rootCmd.Flags().IntP("frame", "f", tokenize.DefaultFrame, "frame to draw over the token, 0 for none")
	rootCmd.Flags().StringP("output", "o", tokenize.DefaultOutput, "output file (png, gif, tiff or bmp)")
	rootCmd.Flags().String("filter", token.DefaultFilter, "resampling filter ("+strings.Join(token.FilterNames(), "|")+")")

	// Bind flags to viper
	viper.BindPFlag("assets", rootCmd.PersistentFlags().Lookup("assets"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("max-size", rootCmd.PersistentFlags().Lookup("max-size"))
	viper.BindPFlag("max-source-pixels", rootCmd.PersistentFlags().Lookup("max-source-pixels"))
	viper.BindPFlag("tile", rootCmd.Flags().Lookup("tile"))
	viper.BindPFlag("size", rootCmd.Flags().Lookup("size"))
	viper.BindPFlag("frame", rootCmd.Flags().Lookup("frame"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("filter", rootCmd.Flags().Lookup("filter"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".tokenizer" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tokenizer")
	}

	viper.SetEnvPrefix("tokenizer")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func newTokenizer(fs afero.Fs, logger *slog.Logger) *tokenize.Tokenizer {
	frames := frame.NewDirResolver(fs, viper.GetString("assets"))
	return tokenize.New(fs, frames, logger,
		tokenize.WithMaxSize(viper.GetInt("max-size")),
		tokenize.WithMaxSourcePixels(viper.GetInt64("max-source-pixels")),
	)
}

// tileFromConfig returns the configured tile, or nil when none was given
func tileFromConfig() *int {
	if !viper.IsSet("tile") {
		return nil
	}
	n := viper.GetInt("tile")
	return &n
}

func runTokenize(cmd *cobra.Command, source string) error {
	sel, err := tile.Parse(tileFromConfig())
	if err != nil {
		return err
	}

	req := tokenize.Request{
		Source: source,
		Tile:   sel,
		Size:   viper.GetInt("size"),
		Frame:  viper.GetInt("frame"),
		Output: viper.GetString("output"),
		Filter: viper.GetString("filter"),
	}

	tk := newTokenizer(afero.NewOsFs(), newLogger(cmd))
	if _, err := tk.TokenizeFile(req); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Success!")
	fmt.Fprintf(cmd.ErrOrStderr(), "Token written to %s\n", req.Output)
	return nil
}
