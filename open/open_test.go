package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStart(t *testing.T) {
	Convey("Only web URLs are opened", t, func() {
		So(Start("file:///etc/passwd"), ShouldNotBeNil)
		So(Start("not a url"), ShouldNotBeNil)
	})
}
