package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/offsiteio/tripsim/internal/cloudwriter"
	"github.com/offsiteio/tripsim/internal/models"
)

// ItineraryRow is the flattened analytics schema: one row per
// (ranked option, attendee itinerary).
type ItineraryRow struct {
	RunID         string  `parquet:"name=run_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	EventID       string  `parquet:"name=event_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Rank          int32   `parquet:"name=rank, type=INT32"`
	Location      string  `parquet:"name=location, type=BYTE_ARRAY, convertedtype=UTF8"`
	WindowStart   string  `parquet:"name=window_start, type=BYTE_ARRAY, convertedtype=UTF8"`
	WindowEnd     string  `parquet:"name=window_end, type=BYTE_ARRAY, convertedtype=UTF8"`
	Score         float64 `parquet:"name=score, type=DOUBLE"`
	AttendeeID    string  `parquet:"name=attendee_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Origin        string  `parquet:"name=origin, type=BYTE_ARRAY, convertedtype=UTF8"`
	Airline       string  `parquet:"name=airline, type=BYTE_ARRAY, convertedtype=UTF8"`
	TravelClass   string  `parquet:"name=travel_class, type=BYTE_ARRAY, convertedtype=UTF8"`
	Stops         int32   `parquet:"name=stops, type=INT32"`
	TravelMinutes int32   `parquet:"name=travel_minutes, type=INT32"`
	Price         float64 `parquet:"name=price, type=DOUBLE"`
	Currency      string  `parquet:"name=currency, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// cloudParquetFile adapts a CloudWriter to the parquet source interface.
// Only sequential writes are supported; the object uploads on Close.
type cloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error)   { return c, nil }
func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) { return c, nil }

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

// ParquetExporter writes itinerary rows locally or, when a cloud factory
// is configured, straight to object storage.
type ParquetExporter struct {
	cloudFactory cloudwriter.CloudWriterFactory
	bucket       string
}

func NewParquetExporter() *ParquetExporter {
	return &ParquetExporter{}
}

func NewCloudParquetExporter(factory cloudwriter.CloudWriterFactory, bucket string) *ParquetExporter {
	return &ParquetExporter{cloudFactory: factory, bucket: bucket}
}

// Export writes one parquet file of itinerary rows for the run. path is a
// local file path or, in cloud mode, the object path within the bucket.
func (e *ParquetExporter) Export(ctx context.Context, path string, result *models.SimulationResult) error {
	var fw source.ParquetFile
	var err error
	if e.cloudFactory != nil {
		cw, err := e.cloudFactory.NewWriter(ctx, e.bucket, path)
		if err != nil {
			return fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = &cloudParquetFile{cloudWriter: cw}
	} else {
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return err
		}
		fw, err = local.NewLocalFileWriter(path)
		if err != nil {
			return fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	pw, err := writer.NewParquetWriter(fw, new(ItineraryRow), 4)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	for rank, optionResult := range result.Results {
		for _, itinerary := range optionResult.Itineraries {
			row := ItineraryRow{
				RunID:         result.RunID,
				EventID:       result.EventID,
				Rank:          int32(rank + 1),
				Location:      optionResult.Option.Location,
				WindowStart:   optionResult.Option.Window.Start.Format("2006-01-02"),
				WindowEnd:     optionResult.Option.Window.End.Format("2006-01-02"),
				Score:         optionResult.Score,
				AttendeeID:    itinerary.AttendeeID,
				Origin:        itinerary.Quote.Origin,
				Airline:       itinerary.Quote.Airline,
				TravelClass:   string(itinerary.Quote.TravelClass),
				Stops:         int32(itinerary.Quote.Stops),
				TravelMinutes: int32(itinerary.TravelMinutes),
				Price:         itinerary.Quote.Price,
				Currency:      itinerary.Quote.Currency,
			}
			if err := pw.Write(row); err != nil {
				return fmt.Errorf("failed to write itinerary row: %w", err)
			}
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return fw.Close()
}
