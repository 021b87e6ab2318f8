package cmd

import (
	"fmt"
	"io"

	"rfm-segment/internal/config"
	"rfm-segment/pkg/models"
	"rfm-segment/pkg/params"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Parse and print the R/F/M scoring rules",
	Long: `Reads the rules from --params (or the config file) and prints them back in
parameter-file format, in evaluation order. Nothing is scored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(viper.GetViper())
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		return runRules(cfg, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cfg *config.Config, out io.Writer) error {
	rules, err := cfg.RuleSets()
	if err != nil {
		return err
	}
	if err := params.Format(out, rules); err != nil {
		return err
	}
	for _, d := range models.Dimensions {
		if rules[d].Len() == 0 {
			fmt.Fprintf(out, "# %s: no rules\n", d)
		}
	}
	return nil
}
