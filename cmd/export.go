package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alphadex-cli/alphadex/export"
	"github.com/alphadex-cli/alphadex/icon"
	"github.com/alphadex-cli/alphadex/key"
	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/alphadex-cli/alphadex/style"
	"github.com/alphadex-cli/alphadex/util"
	"github.com/alphadex-cli/alphadex/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "F", "", "Export format: csv or parquet")
	lo.Must0(exportCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(export.FormatCSV), string(export.FormatParquet)}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.ExportFormat, exportCmd.Flags().Lookup("format")))

	exportCmd.Flags().String("bucket", "", "Upload to this S3 bucket instead of writing locally")
	lo.Must0(viper.BindPFlag(key.ExportS3Bucket, exportCmd.Flags().Lookup("bucket")))

	exportCmd.Flags().String("region", "", "AWS region of the bucket")
	lo.Must0(viper.BindPFlag(key.ExportS3Region, exportCmd.Flags().Lookup("region")))

	exportCmd.Flags().StringP("dir", "d", "", "Local output directory (defaults to the exports directory)")
	exportCmd.Flags().Int("page", 1, "First page to export")
	exportCmd.Flags().Int("pages", 1, "Number of consecutive pages to export")
	exportCmd.Flags().StringP("query", "q", "", "Keep only Pokémon whose name contains the query")
}

// exportCmd writes loaded pages to CSV or Parquet, one row per type slot.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export Pokédex pages to CSV or Parquet, locally or to S3",
	Example: `  alphadex export --pages 3
  alphadex export --format parquet --bucket my-dex --region eu-west-1`,
	Run: func(cmd *cobra.Command, args []string) {
		format, err := export.ParseFormat(viper.GetString(key.ExportFormat))
		handleErr(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var sink export.Sink
		if bucket := viper.GetString(key.ExportS3Bucket); bucket != "" {
			sink, err = export.S3SinkFromEnv(ctx, bucket, viper.GetString(key.ExportS3Region))
			handleErr(err)
		} else {
			dir := lo.Must(cmd.Flags().GetString("dir"))
			sink = export.LocalSink{Dir: lo.Ternary(dir == "", where.Exports(), dir)}
		}

		pages := lo.Must(cmd.Flags().GetInt("pages"))
		erase := util.PrintErasable(fmt.Sprintf("%s Exporting %s...", icon.Get(icon.Progress), util.Quantify(pages, "page", "pages")))

		result, err := export.Run(ctx, export.Options{
			Client:   pokeapi.FromConfig(),
			Sink:     sink,
			Format:   format,
			Page:     lo.Must(cmd.Flags().GetInt("page")),
			Pages:    pages,
			PageSize: viper.GetInt(key.DexPageSize),
			Query:    lo.Must(cmd.Flags().GetString("query")),
		})
		erase()
		handleErr(err)

		fmt.Printf(
			"%s Exported %s (%s) to %s\n",
			icon.Get(icon.Success),
			util.Quantify(result.Pokemon, "Pokémon", "Pokémon"),
			util.Quantify(result.Rows, "row", "rows"),
			style.Fg(style.AccentColor)(result.Location),
		)
	},
}
