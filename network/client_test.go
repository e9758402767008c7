package network

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alphadex-cli/alphadex/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a client built by NewClient", t, func() {
		var gotAgent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAgent = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		client := NewClient(5 * time.Second)
		So(client.Timeout, ShouldEqual, 5*time.Second)

		Convey("It sends the application User-Agent", func() {
			resp, err := client.Get(server.URL)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()
			So(gotAgent, ShouldEqual, constant.UserAgent)
		})

		Convey("It keeps an explicit User-Agent", func() {
			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			req.Header.Set("User-Agent", "custom")
			resp, err := client.Do(req)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()
			So(gotAgent, ShouldEqual, "custom")
		})
	})
}
