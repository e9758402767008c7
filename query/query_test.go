package query

import (
	"testing"

	"github.com/alphadex-cli/alphadex/filesystem"
	"github.com/alphadex-cli/alphadex/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given remembered queries", t, func() {
		viper.Set(key.SearchRememberQueries, true)
		viper.Set(key.SearchShowQuerySuggestions, true)
		So(Clear(), ShouldBeNil)

		So(Remember("charmander", 1), ShouldBeNil)
		So(Remember("Charizard", 10), ShouldBeNil)
		So(Remember("  ", 5), ShouldBeNil)

		Convey("Suggestions are sorted by rank", func() {
			s := SuggestMany("char")
			So(s, ShouldResemble, []string{"charizard", "charmander"})
			So(Suggest("char").MustGet(), ShouldEqual, "charizard")
		})

		Convey("Remembering again raises the rank", func() {
			So(Remember("charmander", 20), ShouldBeNil)
			So(Suggest("char").MustGet(), ShouldEqual, "charmander")
		})

		Convey("An exact match is not suggested back", func() {
			So(SuggestMany("charizard"), ShouldBeEmpty)
		})

		Convey("Nothing is suggested when suggestions are off", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("char"), ShouldBeEmpty)
			So(Suggest("char").IsAbsent(), ShouldBeTrue)
		})

		Convey("Nothing is remembered when remembering is off", func() {
			viper.Set(key.SearchRememberQueries, false)
			So(Remember("squirtle", 1), ShouldBeNil)
			So(SuggestMany("squ"), ShouldBeEmpty)
		})

		Convey("Clear forgets everything", func() {
			So(Clear(), ShouldBeNil)
			So(SuggestMany("char"), ShouldBeEmpty)
		})

		Convey("Input is sanitized", func() {
			So(sanitize("  PIKACHU  "), ShouldEqual, "pikachu")
		})
	})
}
