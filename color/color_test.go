package color

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestContrast(t *testing.T) {
	Convey("Contrast", t, func() {
		Convey("Light backgrounds get black text", func() {
			So(Contrast("#f7d02c"), ShouldEqual, Black)
			So(Contrast("#e0e0e0"), ShouldEqual, Black)
		})

		Convey("Dark backgrounds get white text", func() {
			So(Contrast("#705746"), ShouldEqual, New("#ffffff"))
			So(Contrast("#777"), ShouldEqual, New("#ffffff"))
		})

		Convey("Invalid input falls back to white", func() {
			So(Contrast("not-a-color"), ShouldEqual, White)
		})
	})
}
