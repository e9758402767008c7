package dex

import (
	"math"
	"testing"

	"github.com/alphadex-cli/alphadex/pokeapi"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFilter(t *testing.T) {
	Convey("Given a short list", t, func() {
		entries := []Entry{{Name: "bulbasaur"}, {Name: "charmander"}, {Name: "squirtle"}}

		Convey("A substring matches regardless of case", func() {
			So(names(Filter(entries, "char")), ShouldResemble, []string{"charmander"})
			So(names(Filter(entries, "CHAR")), ShouldResemble, []string{"charmander"})
		})

		Convey("No match yields an empty result", func() {
			So(Filter(entries, "zzz"), ShouldBeEmpty)
		})

		Convey("An empty query keeps everything", func() {
			So(Filter(entries, ""), ShouldHaveLength, 3)
		})

		Convey("Whitespace is part of the query", func() {
			So(Filter(entries, "  "), ShouldBeEmpty)
			So(Filter(entries, " char"), ShouldBeEmpty)
		})
	})
}

func TestTypeColor(t *testing.T) {
	Convey("Type colors come from the fixed table", t, func() {
		So(TypeColor("fire"), ShouldEqual, "#ee8130")
		So(TypeColor("Water"), ShouldEqual, "#6390f0")
		So(TypeColor("unknown-type"), ShouldEqual, "#777")
	})

	Convey("The primary color and gradient follow the type slots", t, func() {
		charizard := &pokeapi.Pokemon{Types: []pokeapi.TypeSlot{
			{Slot: 1, Type: pokeapi.NamedResource{Name: "fire"}},
			{Slot: 2, Type: pokeapi.NamedResource{Name: "flying"}},
		}}
		So(PrimaryColor(charizard), ShouldEqual, "#ee8130")
		So(Gradient(charizard), ShouldResemble, []string{"#ee8130", "#a98ff3"})
		So(Gradient(&pokeapi.Pokemon{}), ShouldResemble, []string{"#777"})
	})
}

func TestGauge(t *testing.T) {
	stat := func(v int) pokeapi.StatEntry {
		return pokeapi.StatEntry{BaseStat: v, Stat: pokeapi.NamedResource{Name: "speed"}}
	}

	Convey("Given stat gauges", t, func() {
		Convey("Half a circle is swept for 50", func() {
			g := NewGauge(stat(50), false)
			So(g.Fraction, ShouldEqual, 0.5)
			So(g.DashOffset, ShouldAlmostEqual, math.Pi*50)
			So(g.Overdraw(), ShouldBeFalse)
		})

		Convey("Values over 100 overdraw", func() {
			g := NewGauge(stat(150), false)
			So(g.Fraction, ShouldEqual, 1.5)
			So(g.DashOffset, ShouldBeLessThan, 0)
			So(g.Overdraw(), ShouldBeTrue)
		})

		Convey("Clamping stops at a full circle", func() {
			g := NewGauge(stat(150), true)
			So(g.Fraction, ShouldEqual, 1.0)
			So(g.DashOffset, ShouldEqual, 0.0)
			So(g.Value, ShouldEqual, 150)
		})

		Convey("Gauges keep stat order", func() {
			p := &pokeapi.Pokemon{Stats: []pokeapi.StatEntry{stat(1), stat(2)}}
			gauges := Gauges(p, false)
			So(gauges, ShouldHaveLength, 2)
			So(gauges[1].Value, ShouldEqual, 2)
		})
	})
}
