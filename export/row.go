// Package export writes loaded Pokédex pages as CSV or Parquet, to disk or to S3.
package export

import (
	"reflect"
	"strings"

	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/samber/lo"
)

// Row is one exported record. A Pokémon with two types produces two rows.
type Row struct {
	ID     int32  `parquet:"name=id, type=INT32"`
	Name   string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Height int32  `parquet:"name=height, type=INT32"`
	Weight int32  `parquet:"name=weight, type=INT32"`
	Type   string `parquet:"name=type, type=BYTE_ARRAY, convertedtype=UTF8"`
	Slot   int32  `parquet:"name=slot, type=INT32"`
	Color  string `parquet:"name=color, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// Rows flattens p into one row per type slot.
func Rows(p *pokeapi.Pokemon) []Row {
	return lo.Map(p.Types, func(t pokeapi.TypeSlot, _ int) Row {
		return Row{
			ID:     int32(p.ID),
			Name:   p.Name,
			Height: int32(p.Height),
			Weight: int32(p.Weight),
			Type:   t.Type.Name,
			Slot:   int32(t.Slot),
			Color:  dex.TypeColor(t.Type.Name),
		}
	})
}

var rowFields = reflect.VisibleFields(reflect.TypeOf(Row{}))

// Columns returns the column names declared by the parquet tags of Row.
func Columns() []string {
	return lo.Map(rowFields, func(f reflect.StructField, _ int) string {
		return tagProperties(f.Tag.Get("parquet"))["name"]
	})
}

func tagProperties(tag string) map[string]string {
	properties := make(map[string]string)
	for _, entry := range strings.Split(tag, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if ok {
			properties[k] = v
		}
	}
	return properties
}
