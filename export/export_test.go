package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/alphadex-cli/alphadex/filesystem"
	"github.com/alphadex-cli/alphadex/internal/fakeapi"
	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	. "github.com/smartystreets/goconvey/convey"
)

type fakePutter struct {
	bucket, key string
	body        []byte
	err         error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(params.Bucket)
	f.key = aws.ToString(params.Key)
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestRows(t *testing.T) {
	Convey("Given a Pokémon with two types", t, func() {
		p := &pokeapi.Pokemon{
			ID:     6,
			Name:   "charizard",
			Height: 17,
			Weight: 905,
			Types: []pokeapi.TypeSlot{
				{Slot: 1, Type: pokeapi.NamedResource{Name: "fire"}},
				{Slot: 2, Type: pokeapi.NamedResource{Name: "flying"}},
			},
		}

		Convey("It flattens into one row per type slot", func() {
			rows := Rows(p)
			So(rows, ShouldHaveLength, 2)
			So(rows[0], ShouldResemble, Row{ID: 6, Name: "charizard", Height: 17, Weight: 905, Type: "fire", Slot: 1, Color: "#ee8130"})
			So(rows[1].Type, ShouldEqual, "flying")
			So(rows[1].Slot, ShouldEqual, 2)
		})
	})

	Convey("Columns follow the parquet tags", t, func() {
		So(Columns(), ShouldResemble, []string{"id", "name", "height", "weight", "type", "slot", "color"})
	})
}

func TestEncoders(t *testing.T) {
	row := Row{ID: 4, Name: "charmander", Height: 6, Weight: 85, Type: "fire", Slot: 1, Color: "#ee8130"}

	Convey("The CSV encoder writes a header and one record per row", t, func() {
		encoder, err := NewEncoder(FormatCSV)
		So(err, ShouldBeNil)
		So(encoder.Write(row), ShouldBeNil)
		So(encoder.Finish(), ShouldBeNil)

		records, err := csv.NewReader(encoder.Reader()).ReadAll()
		So(err, ShouldBeNil)
		So(records, ShouldResemble, [][]string{
			{"id", "name", "height", "weight", "type", "slot", "color"},
			{"4", "charmander", "6", "85", "fire", "1", "#ee8130"},
		})
	})

	Convey("The Parquet encoder produces a parquet file", t, func() {
		encoder, err := NewEncoder(FormatParquet)
		So(err, ShouldBeNil)
		So(encoder.Write(row), ShouldBeNil)
		So(encoder.Finish(), ShouldBeNil)

		data, err := io.ReadAll(encoder.Reader())
		So(err, ShouldBeNil)
		So(encoder.Size(), ShouldBeGreaterThan, 8)
		So(string(data[:4]), ShouldEqual, "PAR1")
		So(string(data[len(data)-4:]), ShouldEqual, "PAR1")
	})

	Convey("Unknown formats are rejected", t, func() {
		_, err := ParseFormat("xlsx")
		So(err, ShouldNotBeNil)

		format, err := ParseFormat("parquet")
		So(err, ShouldBeNil)
		So(format, ShouldEqual, FormatParquet)
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running API", t, func() {
		server := fakeapi.New(36)
		defer server.Close()

		filesystem.SetMemMapFs()
		putter := &fakePutter{}
		options := Options{
			Client:   pokeapi.NewClient(server.URL),
			Sink:     NewS3Sink(putter, "dex-exports"),
			Page:     1,
			Pages:    1,
			PageSize: 9,
		}

		Convey("A page is exported as CSV to the bucket", func() {
			result, err := Run(context.Background(), options)
			So(err, ShouldBeNil)
			So(result.Pokemon, ShouldEqual, 9)
			// Ids 1-3 and 6 have two types.
			So(result.Rows, ShouldEqual, 13)
			So(putter.bucket, ShouldEqual, "dex-exports")
			So(putter.key, ShouldStartWith, "pokemon/1_9-")
			So(putter.key, ShouldEndWith, ".csv")
			So(result.Location, ShouldEqual, "s3://dex-exports/"+putter.key)

			records, err := csv.NewReader(bytes.NewReader(putter.body)).ReadAll()
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 14)
			So(records[1][1], ShouldEqual, "bulbasaur")
		})

		Convey("A query narrows the exported Pokémon", func() {
			options.Query = "char"
			result, err := Run(context.Background(), options)
			So(err, ShouldBeNil)
			So(result.Pokemon, ShouldEqual, 3)
			So(putter.key, ShouldStartWith, "pokemon/4_6-")
		})

		Convey("Nothing matching is an error", func() {
			options.Query = "zzz"
			_, err := Run(context.Background(), options)
			So(err, ShouldNotBeNil)
			So(putter.key, ShouldBeEmpty)
		})

		Convey("Upload failures are returned", func() {
			putter.err = errors.New("access denied")
			_, err := Run(context.Background(), options)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "access denied")
		})

		Convey("A failed hydration aborts the export", func() {
			server.Fail(fakeapi.DetailPath(5), 500)
			_, err := Run(context.Background(), options)
			So(err, ShouldNotBeNil)
			So(putter.key, ShouldBeEmpty)
		})

		Convey("Parquet exports are written to a local directory", func() {
			options.Format = FormatParquet
			options.Sink = LocalSink{Dir: "/exports"}
			options.Pages = 10

			result, err := Run(context.Background(), options)
			So(err, ShouldBeNil)
			So(result.Pokemon, ShouldEqual, 36)
			So(result.Location, ShouldStartWith, "/exports/pokemon/1_36-")
			So(strings.HasSuffix(result.Location, ".parquet"), ShouldBeTrue)

			data, err := filesystem.API().ReadFile(result.Location)
			So(err, ShouldBeNil)
			So(len(data), ShouldEqual, result.Size)
		})
	})
}
