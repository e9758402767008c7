package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/alphadex-cli/alphadex/icon"
	"github.com/alphadex-cli/alphadex/util"
	"github.com/alphadex-cli/alphadex/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget defines a filesystem resource eligible for automated cleanup.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

// clearTargets registry of all application artifacts that can be selectively cleared.
var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"cached responses", "responses", mo.Some("r"), where.Responses},
	{"queries history", "queries", mo.Some("q"), where.Queries},
	{"logs", "logs", mo.Some("l"), where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// clearCmd manages the cleanup of temporary and cached application artifacts.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear temporary and cached application artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		doClear := func(what string) bool {
			return lo.Must(cmd.Flags().GetBool(what))
		}

		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return doClear(t.argLong)
		})

		if len(selected) > 0 && !doClear("yes") {
			confirm := survey.Confirm{
				Message: fmt.Sprintf("Clear %s?", strings.Join(lo.Map(selected, func(t clearTarget, _ int) string {
					return t.name
				}), ", ")),
				Default: true,
			}
			var response bool
			handleErr(survey.AskOne(&confirm, &response))

			if !response {
				return
			}
		}

		for _, target := range selected {
			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), util.Capitalize(target.name)))
			err := util.Delete(target.location())
			e()

			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if len(selected) == 0 {
			handleErr(cmd.Help())
		}
	},
}
