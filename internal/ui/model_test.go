package ui

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		var m Model

		Convey("Unrelated messages are ignored", func() {
			cmd, handled := m.Update("key")
			So(cmd, ShouldBeNil)
			So(handled, ShouldBeFalse)
			So(m.View("content"), ShouldEqual, "content")
		})

		Convey("A notification is shown until its timer fires", func() {
			cmd, handled := m.Update(NotifyError("page load failed", errors.New("boom"))())
			So(handled, ShouldBeTrue)
			So(cmd, ShouldNotBeNil)
			So(m.Notification(), ShouldEqual, "page load failed: boom")
			So(m.View("a\nb"), ShouldStartWith, "a\nb  ")

			Convey("A stale timer does not clear a newer notification", func() {
				_, _ = m.Update(NotificationMsg{Text: "second"})
				_, _ = m.Update(clearNotificationMsg{id: 1})
				So(m.Notification(), ShouldEqual, "second")

				_, _ = m.Update(clearNotificationMsg{id: 2})
				So(m.Notification(), ShouldBeEmpty)
			})
		})
	})
}
