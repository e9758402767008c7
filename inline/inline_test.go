package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/filesystem"
	"github.com/alphadex-cli/alphadex/internal/fakeapi"
	"github.com/alphadex-cli/alphadex/key"
	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/alphadex-cli/alphadex/query"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty result", func() {
			var buf bytes.Buffer
			err := writeJson(&buf, &Output{Query: "test"})
			So(err, ShouldBeNil)

			var output Output
			err = json.Unmarshal(buf.Bytes(), &output)
			So(err, ShouldBeNil)
			So(output.Query, ShouldEqual, "test")
			So(output.Result, ShouldNotBeNil)
			So(output.Result, ShouldHaveLength, 0)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running API", t, func() {
		server := fakeapi.New(36)
		defer server.Close()

		var buf bytes.Buffer
		options := &Options{
			Out:      &buf,
			Client:   pokeapi.NewClient(server.URL),
			PageSize: 15,
			Json:     true,
		}

		decode := func() Output {
			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			return output
		}

		Convey("Without a client it fails", func() {
			So(Run(context.Background(), &Options{Out: &buf}), ShouldNotBeNil)
		})

		Convey("The first page is written in list order", func() {
			So(Run(context.Background(), options), ShouldBeNil)

			output := decode()
			So(output.Page, ShouldEqual, 1)
			So(output.Count, ShouldEqual, 36)
			So(output.TotalPages, ShouldEqual, 3)
			So(output.Result, ShouldHaveLength, 15)
			So(output.Result[0].Name, ShouldEqual, "bulbasaur")
			So(output.Result[14].Name, ShouldEqual, "beedrill")
			So(output.Result[0].Detail, ShouldBeNil)
		})

		Convey("Several pages are concatenated and stop at exhaustion", func() {
			options.Pages = 5
			So(Run(context.Background(), options), ShouldBeNil)

			output := decode()
			So(output.Result, ShouldHaveLength, 36)
			So(output.Result[35].Name, ShouldEqual, "clefable")
			So(server.ListHits(), ShouldEqual, 3)
		})

		Convey("A query filters the loaded entries", func() {
			options.Query = "CHAR"
			So(Run(context.Background(), options), ShouldBeNil)

			output := decode()
			So(output.Query, ShouldEqual, "CHAR")
			So(lo.Map(output.Result, func(p *Pokemon, _ int) string { return p.Name }),
				ShouldResemble, []string{"charmander", "charmeleon", "charizard"})
		})

		Convey("A query is remembered for suggestions", func() {
			filesystem.SetMemMapFs()
			viper.Set(key.SearchRememberQueries, true)
			viper.Set(key.SearchShowQuerySuggestions, true)
			defer viper.Set(key.SearchRememberQueries, false)
			So(query.Clear(), ShouldBeNil)

			options.Query = "char"
			So(Run(context.Background(), options), ShouldBeNil)
			So(query.SuggestMany("ch"), ShouldContain, "char")

			Convey("And a query store that cannot be written does not fail the run", func() {
				buf.Reset()
				filesystem.SetReadOnlyFs()
				defer filesystem.SetMemMapFs()

				options.Query = "saur"
				So(Run(context.Background(), options), ShouldBeNil)
				So(decode().Result, ShouldHaveLength, 3)
			})
		})

		Convey("Hydrated results carry types, colors and gauges", func() {
			options.Hydrate = true
			options.Picker = mo.Some(lo.Must(ParsePicker("exact", "charizard")))
			So(Run(context.Background(), options), ShouldBeNil)

			output := decode()
			So(output.Result, ShouldHaveLength, 1)
			charizard := output.Result[0]
			So(charizard.DisplayID, ShouldEqual, "#006")
			So(charizard.Types, ShouldResemble, []string{"fire", "flying"})
			So(charizard.Colors, ShouldResemble, []string{"#ee8130", "#a98ff3"})
			So(charizard.Artwork, ShouldEndWith, "/official-artwork/6.png")
			So(charizard.Gauges, ShouldHaveLength, 6)
			So(charizard.Gauges[3].Value, ShouldEqual, 155)
		})

		Convey("A failing page is reported", func() {
			server.Fail("/pokemon", 503)
			err := Run(context.Background(), options)
			So(err, ShouldNotBeNil)
			So(buf.Len(), ShouldEqual, 0)
		})

		Convey("A single Pokémon is fetched by name", func() {
			options.Pokemon = "Bulbasaur"
			So(Run(context.Background(), options), ShouldBeNil)

			output := decode()
			So(output.Result, ShouldHaveLength, 1)
			So(output.Result[0].ID, ShouldEqual, 1)
			So(output.Result[0].DisplayName, ShouldEqual, "bulbasaur")
			So(server.Hits(fakeapi.SpeciesPath(1)), ShouldEqual, 0)

			Convey("And localized through its species", func() {
				buf.Reset()
				options.Localize = true
				options.Language = "fr"
				So(Run(context.Background(), options), ShouldBeNil)
				So(decode().Result[0].DisplayName, ShouldEqual, "Bulbizarre")
			})
		})

		Convey("An unknown Pokémon fails", func() {
			options.Pokemon = "missingno"
			err := Run(context.Background(), options)
			So(err, ShouldNotBeNil)
		})

		Convey("Text mode prints one line per result", func() {
			options.Json = false
			options.Hydrate = true
			options.Query = "saur"
			So(Run(context.Background(), options), ShouldBeNil)
			So(buf.String(), ShouldEqual,
				"#001 bulbasaur grass/poison\n#002 ivysaur grass/poison\n#003 venusaur grass/poison\n")
		})
	})
}

func TestParsePicker(t *testing.T) {
	Convey("Given three entries", t, func() {
		entries := []dex.Entry{{Name: "bulbasaur"}, {Name: "ivysaur"}, {Name: "venusaur"}}
		pick := func(kind, value string) mo.Option[dex.Entry] {
			picker, err := ParsePicker(kind, value)
			So(err, ShouldBeNil)
			return picker(entries)
		}

		Convey("first and last pick the ends", func() {
			So(pick("first", "").MustGet().Name, ShouldEqual, "bulbasaur")
			So(pick("last", "").MustGet().Name, ShouldEqual, "venusaur")
		})

		Convey("exact matches a name case-insensitively", func() {
			So(pick("exact", "IvySaur").MustGet().Name, ShouldEqual, "ivysaur")
			So(pick("exact", "pikachu").IsPresent(), ShouldBeFalse)
		})

		Convey("an index is clamped to the last entry", func() {
			So(pick("1", "").MustGet().Name, ShouldEqual, "ivysaur")
			So(pick("99", "").MustGet().Name, ShouldEqual, "venusaur")
		})

		Convey("an unknown kind is an error", func() {
			_, err := ParsePicker("random", "")
			So(err, ShouldNotBeNil)
		})

		Convey("nothing is picked from nothing", func() {
			picker := lo.Must(ParsePicker("first", ""))
			So(picker(nil).IsPresent(), ShouldBeFalse)
		})
	})
}
