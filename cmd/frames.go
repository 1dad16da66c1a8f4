package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "List the frames found in the assets folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		frames := newTokenizer(afero.NewOsFs(), newLogger(cmd)).Frames()

		ids, err := frames.List()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "No frames found in %s\n", viper.GetString("assets"))
			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(framesCmd)
}
