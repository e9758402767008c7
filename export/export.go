package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/log"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Options struct {
	Client   dex.Fetcher
	Sink     Sink
	Format   Format
	Page     int
	Pages    int
	PageSize int
	Query    string
}

// Result describes a finished export.
type Result struct {
	Location string `json:"location"`
	Pokemon  int    `json:"pokemon"`
	Rows     int    `json:"rows"`
	Size     int    `json:"size"`
}

// Run loads hydrated pages, flattens them into rows and hands the encoded file to the sink.
func Run(ctx context.Context, options Options) (*Result, error) {
	if options.Client == nil || options.Sink == nil {
		return nil, errors.New("export: client and sink are required")
	}

	format := lo.Ternary(options.Format == "", FormatCSV, options.Format)
	encoder, err := NewEncoder(format)
	if err != nil {
		return nil, err
	}

	entries, err := load(ctx, options)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, errors.New("export: nothing to export")
	}

	var rows int
	for _, entry := range entries {
		for _, row := range Rows(entry.Detail) {
			if err := encoder.Write(row); err != nil {
				return nil, fmt.Errorf("encode %s: %w", entry.Name, err)
			}
			rows++
		}
	}

	if err := encoder.Finish(); err != nil {
		return nil, err
	}

	first, last := entries[0].Detail.ID, entries[len(entries)-1].Detail.ID
	name := ObjectName(first, last, format)

	log.With(log.Fields{"rows": rows, "size": encoder.Size()}).Infof("uploading export %s", name)
	location, err := options.Sink.Put(ctx, name, encoder.Reader())
	if err != nil {
		return nil, err
	}

	return &Result{
		Location: location,
		Pokemon:  len(entries),
		Rows:     rows,
		Size:     encoder.Size(),
	}, nil
}

func load(ctx context.Context, options Options) ([]dex.Entry, error) {
	loader := dex.NewLoader(options.Client, lo.Ternary(options.PageSize > 0, options.PageSize, 15), true)
	if _, err := loader.LoadPage(ctx, options.Page); err != nil {
		return nil, err
	}

	for i := 1; i < options.Pages; i++ {
		if _, err := loader.LoadNext(ctx); err != nil {
			if errors.Is(err, dex.ErrExhausted) {
				break
			}
			return nil, err
		}
	}

	return dex.Filter(loader.Entries(), options.Query), nil
}

// ObjectName returns pokemon/<first>_<last>-<uuid>.<ext>.
func ObjectName(first, last int, format Format) string {
	return fmt.Sprintf("pokemon/%d_%d-%s.%s", first, last, uuid.NewString(), format.Extension())
}
