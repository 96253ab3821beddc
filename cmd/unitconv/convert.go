package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/unitconv/pkg/conversion"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <value>...",
	Short: "Convert values once and exit",
	Example: `  unitconv convert 100
  unitconv convert -m temperature 98.6 212`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("mode")
		jsonMode, _ := cmd.Flags().GetBool("json")

		mode, err := conversion.ParseMode(name)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, value := range args {
			result := conversion.Convert(value, mode)
			if jsonMode {
				if err := json.NewEncoder(out).Encode(map[string]string{
					"value":  value,
					"mode":   string(mode),
					"result": result,
				}); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintln(out, result)
		}
		return nil
	},
}

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the supported conversions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range conversion.Pairs() {
			fmt.Fprintln(cmd.OutOrStdout(), p.Description())
		}
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(modesCmd)

	convertCmd.Flags().StringP("mode", "m", "Distance", "Conversion mode: Distance, Temperature or Weight")
	convertCmd.Flags().Bool("json", false, "Print one JSON object per value")
}
