package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Should refuse writes when read-only", func() {
			SetMemMapFs()
			So(API().WriteFile("kept.txt", []byte("x"), 0o644), ShouldBeNil)

			SetReadOnlyFs()
			So(API().WriteFile("refused.txt", []byte("x"), 0o644), ShouldNotBeNil)
			data, err := API().ReadFile("kept.txt")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "x")
		})
	})
}
