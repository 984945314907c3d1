package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

// configKeys are the settings the app actually reads, with what each one
// controls. Unknown keys are rejected so typos don't silently rot in the
// configuration table.
var configKeys = map[string]string{
	"openai.api_key":  "API key for model-backed session summaries (unset: keyword summaries)",
	"openai.base_url": "Alternate OpenAI-compatible endpoint",
	"openai.model":    "Chat model used for summaries",
	"speech.delivery": "Default narration pacing: single, chunked or wordByWord",
}

var deliveryModes = map[string]bool{
	"single":     true,
	"chunked":    true,
	"wordByWord": true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		value := args[1]

		if err := validateConfig(key, value); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		s := getStore()
		defer s.Close()

		if err := s.SetConfig(key, value); err != nil {
			fmt.Printf("Failed to set config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration saved: %s\n", key)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		s := getStore()
		defer s.Close()

		val, err := s.GetConfig(key)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if val == "" {
			fmt.Println("(not set)")
		} else {
			fmt.Println(val)
		}
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported keys and their current values",
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		keys := make([]string, 0, len(configKeys))
		for k := range configKeys {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			val, _ := s.GetConfig(k)
			if val == "" {
				val = "(not set)"
			} else if k == "openai.api_key" {
				val = "(set)"
			}
			fmt.Printf("%-16s %s\n                 %s\n", k, val, configKeys[k])
		}
	},
}

// validateConfig rejects keys nothing reads and values the reader would
// choke on.
func validateConfig(key, value string) error {
	if _, ok := configKeys[key]; !ok {
		return fmt.Errorf("unknown configuration key %q (see: remind config list)", key)
	}
	if key == "speech.delivery" && !deliveryModes[value] {
		return fmt.Errorf("unknown delivery mode %q (use single, chunked or wordByWord)", value)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
}
