package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"

	"github.com/samber/lo"
	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/writer"
)

// Format of an export file.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatCSV, FormatParquet:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q, expected one of: csv, parquet", name)
	}
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// InitialCapacity of the in-memory buffer behind every encoder.
const InitialCapacity = 1024 * 1024

// Encoder accumulates rows into an in-memory file.
type Encoder interface {
	Write(row Row) error
	// Finish flushes the encoder and rewinds its buffer for reading.
	Finish() error
	Size() int
	Reader() io.Reader
}

// NewEncoder returns the encoder for format.
func NewEncoder(format Format) (Encoder, error) {
	switch format {
	case FormatCSV:
		return newCSVEncoder()
	case FormatParquet:
		return newParquetEncoder()
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

type parquetEncoder struct {
	buffer *buffer.BufferFile
	writer *writer.ParquetWriter
}

func newParquetEncoder() (*parquetEncoder, error) {
	file := buffer.NewBufferFileCapacity(InitialCapacity)
	w, err := writer.NewParquetWriter(file, new(Row), 4)
	if err != nil {
		return nil, err
	}
	return &parquetEncoder{buffer: file, writer: w}, nil
}

func (e *parquetEncoder) Write(row Row) error {
	return e.writer.Write(&row)
}

func (e *parquetEncoder) Finish() error {
	if err := e.writer.WriteStop(); err != nil {
		return err
	}
	_, err := e.buffer.Seek(0, io.SeekStart)
	return err
}

func (e *parquetEncoder) Size() int {
	return len(e.buffer.Bytes())
}

func (e *parquetEncoder) Reader() io.Reader {
	return e.buffer
}

type csvEncoder struct {
	buffer *buffer.BufferFile
	writer *csv.Writer
}

func newCSVEncoder() (*csvEncoder, error) {
	file := buffer.NewBufferFileCapacity(InitialCapacity)
	e := &csvEncoder{buffer: file, writer: csv.NewWriter(file)}
	if err := e.writer.Write(Columns()); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *csvEncoder) Write(row Row) error {
	value := reflect.ValueOf(row)
	record := lo.Map(rowFields, func(f reflect.StructField, _ int) string {
		return fmt.Sprint(value.FieldByIndex(f.Index).Interface())
	})
	return e.writer.Write(record)
}

func (e *csvEncoder) Finish() error {
	e.writer.Flush()
	if err := e.writer.Error(); err != nil {
		return err
	}
	_, err := e.buffer.Seek(0, io.SeekStart)
	return err
}

func (e *csvEncoder) Size() int {
	return len(e.buffer.Bytes())
}

func (e *csvEncoder) Reader() io.Reader {
	return e.buffer
}
