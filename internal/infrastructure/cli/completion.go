package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:       "completion [bash|zsh|fish|powershell]",
	Short:     "Generate shell completion scripts",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return RootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return RootCmd.GenZshCompletion(out)
		case "fish":
			return RootCmd.GenFishCompletion(out, true)
		case "powershell":
			return RootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return fmt.Errorf("unsupported shell: %s", args[0])
	},
}

// completeOption offers the catalog's option tokens for one question flag.
// Completion stays silent when the catalog cannot be reached.
func completeOption(key string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		services, err := loadServices()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		opts, err := services.Catalog.FetchOptions(ctx)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var out []string
		for _, opt := range opts[key] {
			if strings.HasPrefix(opt, strings.ToLower(toComplete)) {
				out = append(out, opt+"\t"+questionnaire.Humanize(opt))
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

func init() {
	for _, step := range questionnaire.DefaultSteps() {
		_ = matchCmd.RegisterFlagCompletionFunc(step.Key, completeOption(step.Key))
	}
	RootCmd.AddCommand(completionCmd)
}
