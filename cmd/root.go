// Package cmd implements the command-line interface for alphadex.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/alphadex-cli/alphadex/color"
	"github.com/alphadex-cli/alphadex/config"
	"github.com/alphadex-cli/alphadex/constant"
	"github.com/alphadex-cli/alphadex/icon"
	"github.com/alphadex-cli/alphadex/key"
	"github.com/alphadex-cli/alphadex/log"
	"github.com/alphadex-cli/alphadex/query"
	"github.com/alphadex-cli/alphadex/style"
	"github.com/alphadex-cli/alphadex/tui"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().IntP("page-size", "n", 0, "Number of Pokémon fetched per page")
	lo.Must0(viper.BindPFlag(key.DexPageSize, rootCmd.PersistentFlags().Lookup("page-size")))

	rootCmd.PersistentFlags().BoolP("localize", "L", false, "Fetch species records and show localized names")
	lo.Must0(viper.BindPFlag(key.DexSpeciesLocalization, rootCmd.PersistentFlags().Lookup("localize")))

	rootCmd.PersistentFlags().String("language", "", "Language of localized names, e.g. fr or ja")
	lo.Must0(viper.BindPFlag(key.DexLanguage, rootCmd.PersistentFlags().Lookup("language")))

	rootCmd.Flags().StringP("mode", "m", "", "How the next page is requested: page or infinite-scroll")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("mode", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{config.PaginationPage, config.PaginationInfiniteScroll}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.DexPaginationMode, rootCmd.Flags().Lookup("mode")))

	rootCmd.Flags().StringP("query", "q", "", "Start with the search filter set to this query")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

// rootCmd defines the entry point for the alphadex application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "A terminal Pokédex with infinite scrolling and stat gauges",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal Pokédex with infinite scrolling and stat gauges"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		options := tui.OptionsFromConfig()
		options.Query = lo.Must(cmd.Flags().GetString("query"))
		handleErr(tui.Run(options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
