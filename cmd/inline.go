package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/alphadex-cli/alphadex/filesystem"
	"github.com/alphadex-cli/alphadex/inline"
	"github.com/alphadex-cli/alphadex/key"
	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/alphadex-cli/alphadex/query"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "Keep only Pokémon whose name contains the query")
	inlineCmd.Flags().StringP("pick", "p", "", "Criteria for selecting a single Pokémon from the filtered page")
	inlineCmd.Flags().StringP("pokemon", "P", "", "Fetch a single Pokémon by name or id instead of a page")
	inlineCmd.Flags().Int("page", 1, "First page to load")
	inlineCmd.Flags().Int("pages", 1, "Number of consecutive pages to load")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("hydrate", "f", false, "Fetch the full record of every listed Pokémon")
	lo.Must0(viper.BindPFlag(key.DexHydrateList, inlineCmd.Flags().Lookup("hydrate")))

	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	inlineCmd.MarkFlagsMutuallyExclusive("pokemon", "query")
	inlineCmd.MarkFlagsMutuallyExclusive("pokemon", "pick")

	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Load pages of the Pokédex and print them without starting the viewer.

Pickers:
  first - first Pokémon of the filtered page
  last - last Pokémon of the filtered page
  exact - the Pokémon named exactly like the query
  [number] - select by index (starting from 0)`,
	Example: `  alphadex inline --json --pages 2
  alphadex inline -q char -p first --hydrate
  alphadex inline --pokemon bulbasaur --localize --language fr --json`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			writer io.Writer = os.Stdout
			err    error
		)

		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		q := lo.Must(cmd.Flags().GetString("query"))

		picker := mo.None[inline.Picker]()
		if pick := lo.Must(cmd.Flags().GetString("pick")); pick != "" {
			fn, err := inline.ParsePicker(pick, q)
			handleErr(err)
			picker = mo.Some(fn)
		}

		options := &inline.Options{
			Out:         writer,
			Client:      pokeapi.FromConfig(),
			Pokemon:     lo.Must(cmd.Flags().GetString("pokemon")),
			Page:        lo.Must(cmd.Flags().GetInt("page")),
			Pages:       lo.Must(cmd.Flags().GetInt("pages")),
			PageSize:    viper.GetInt(key.DexPageSize),
			Hydrate:     viper.GetBool(key.DexHydrateList),
			Query:       q,
			Picker:      picker,
			Localize:    viper.GetBool(key.DexSpeciesLocalization),
			Language:    viper.GetString(key.DexLanguage),
			ClampGauges: viper.GetBool(key.TUIClampGauges),
			Json:        lo.Must(cmd.Flags().GetBool("json")),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		err = inline.Run(ctx, options)
		handleErr(err)
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates the JSON schema of the inline mode output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the structured inline mode output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "pokemon", "output", "gauge":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
