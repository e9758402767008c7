// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/log"
	"github.com/alphadex-cli/alphadex/query"
	"github.com/samber/lo"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if options.Client == nil {
		return errors.New("inline: no API client")
	}

	if options.Pokemon != "" {
		return runSingle(ctx, options)
	}

	return runList(ctx, options)
}

// runSingle fetches one Pokémon, chaining the species record when localization is enabled.
func runSingle(ctx context.Context, options *Options) error {
	name := strings.ToLower(strings.TrimSpace(options.Pokemon))
	entry := dex.Entry{Name: name, URL: options.Client.PokemonURL(name)}

	selection := dex.NewSelection(options.Client, nil, dex.SelectionOptions{
		Localize: options.Localize,
		Language: options.Language,
	})
	defer selection.Close()

	log.Infof("inline: fetching %s", entry.URL)
	detail, err := selection.Select(ctx, entry)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", name, err)
	}

	result := fromDetail(entry, detail, options.ClampGauges)
	if options.Json {
		return writeJson(options.Out, &Output{Count: 1, Result: []*Pokemon{result}})
	}

	writeText(options.Out, []*Pokemon{result})
	return nil
}

// runList loads one or more consecutive pages, filters them and optionally picks a single entry.
func runList(ctx context.Context, options *Options) error {
	pageSize := lo.Ternary(options.PageSize > 0, options.PageSize, 15)
	loader := dex.NewLoader(options.Client, pageSize, options.Hydrate)

	start := lo.Ternary(options.Page > 0, options.Page, 1)
	if _, err := loader.LoadPage(ctx, start); err != nil {
		return err
	}

	for i := 1; i < options.Pages; i++ {
		if _, err := loader.LoadNext(ctx); err != nil {
			if errors.Is(err, dex.ErrExhausted) {
				break
			}
			return err
		}
	}

	entries := dex.Filter(loader.Entries(), options.Query)
	if options.Query != "" {
		if err := query.Remember(options.Query, 1); err != nil {
			log.Warn(err)
		}
	}

	if options.Picker.IsPresent() {
		picked := options.Picker.MustGet()(entries)
		entries = lo.Ternary(picked.IsPresent(), []dex.Entry{picked.OrEmpty()}, nil)
	}

	result := lo.Map(entries, func(e dex.Entry, _ int) *Pokemon {
		return newPokemon(e, options.ClampGauges)
	})

	log.Infof("inline: %d of %d entries match %q", len(result), loader.Len(), options.Query)

	if options.Json {
		return writeJson(options.Out, &Output{
			Query:      options.Query,
			Page:       start,
			TotalPages: loader.TotalPages(),
			Count:      loader.Count(),
			Result:     result,
		})
	}

	writeText(options.Out, result)
	return nil
}

func writeJson(out io.Writer, output *Output) error {
	data, err := asJson(output)
	if err != nil {
		return err
	}

	_, err = out.Write(data)
	return err
}

func writeText(out io.Writer, result []*Pokemon) {
	for _, p := range result {
		if p.DisplayID == "" {
			fmt.Fprintln(out, p.Name)
			continue
		}

		fmt.Fprintf(out, "%s %s %s\n", p.DisplayID, p.DisplayName, strings.Join(p.Types, "/"))
	}
}
