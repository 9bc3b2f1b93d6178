package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PierreLepagnol/foodops/internal/cloudwriter"
	"github.com/PierreLepagnol/foodops/internal/market"
	"github.com/PierreLepagnol/foodops/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// AllocationRow is the columnar form of an AllocationResult.
type AllocationRow struct {
	Turn            int32   `parquet:"name=turn,type=INT32"`
	RestaurantID    string  `parquet:"name=restaurant_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	AllocatedDemand int32   `parquet:"name=allocated_demand,type=INT32"`
	ServedCustomers int32   `parquet:"name=served_customers,type=INT32"`
	Capacity        int32   `parquet:"name=capacity,type=INT32"`
	UtilizationRate float64 `parquet:"name=utilization_rate,type=DOUBLE"`
	LostCustomers   int32   `parquet:"name=lost_customers,type=INT32"`
	Revenue         float64 `parquet:"name=revenue,type=DOUBLE"`
	AverageTicket   float64 `parquet:"name=average_ticket,type=DOUBLE"`
	Satisfaction    float64 `parquet:"name=satisfaction,type=DOUBLE"`
	ReputationAfter float64 `parquet:"name=reputation_after,type=DOUBLE"`
}

// AnalysisRow is the columnar form of a market Analysis.
type AnalysisRow struct {
	Turn               int32   `parquet:"name=turn,type=INT32"`
	TotalDemand        int32   `parquet:"name=total_demand,type=INT32"`
	TotalServed        int32   `parquet:"name=total_served,type=INT32"`
	TotalCapacity      int32   `parquet:"name=total_capacity,type=INT32"`
	TotalRevenue       float64 `parquet:"name=total_revenue,type=DOUBLE"`
	MarketUtilization  float64 `parquet:"name=market_utilization,type=DOUBLE"`
	DemandSatisfaction float64 `parquet:"name=demand_satisfaction,type=DOUBLE"`
	AverageTicket      float64 `parquet:"name=average_ticket,type=DOUBLE"`
}

// ParquetOutput writes one parquet file per topic, locally or into object
// storage when a cloud provider is configured.
type ParquetOutput struct {
	basePath string
	folder   string
	writers  map[string]*writer.ParquetWriter
	files    map[string]source.ParquetFile

	cloudFactory cloudwriter.Factory
	cloudBucket  string
}

func NewParquetOutput(cfg *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath: cfg.OutputPath,
		folder:   cfg.OutputFolder,
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}

	switch cfg.CloudStorage.Provider {
	case "":
		// local files
	case "s3":
		factory, err := cloudwriter.NewS3Factory(cfg.CloudStorage.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		p.cloudFactory = factory
		p.cloudBucket = cfg.CloudStorage.BucketName
	default:
		return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
	}

	return p, nil
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	pw, err := p.writerFor(topic)
	if err != nil {
		return err
	}

	row, err := rowFor(topic, msg)
	if err != nil {
		return err
	}

	if err := pw.Write(row); err != nil {
		return fmt.Errorf("failed to write parquet row for topic %s: %w", topic, err)
	}
	return nil
}

func (p *ParquetOutput) writerFor(topic string) (*writer.ParquetWriter, error) {
	if pw, ok := p.writers[topic]; ok {
		return pw, nil
	}

	var file source.ParquetFile
	var err error
	objectPath := filepath.Join(p.folder, topic+".parquet")

	if p.cloudFactory != nil {
		cw, cerr := p.cloudFactory.NewWriter(p.cloudBucket, objectPath)
		if cerr != nil {
			return nil, cerr
		}
		file = &cloudParquetFile{cloudWriter: cw}
	} else {
		dir := filepath.Join(p.basePath, p.folder)
		if mkErr := os.MkdirAll(dir, os.ModePerm); mkErr != nil {
			return nil, mkErr
		}
		file, err = local.NewLocalFileWriter(filepath.Join(p.basePath, objectPath))
		if err != nil {
			return nil, fmt.Errorf("failed to create parquet file for topic %s: %w", topic, err)
		}
	}

	pw, err := writer.NewParquetWriter(file, schemaFor(topic), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer for topic %s: %w", topic, err)
	}
	p.writers[topic] = pw
	p.files[topic] = file
	return pw, nil
}

func schemaFor(topic string) interface{} {
	if topic == TopicMarketAnalysis {
		return new(AnalysisRow)
	}
	return new(AllocationRow)
}

func rowFor(topic string, msg []byte) (interface{}, error) {
	if topic == TopicMarketAnalysis {
		var analysis market.Analysis
		if err := json.Unmarshal(msg, &analysis); err != nil {
			return nil, err
		}
		totalRevenue, _ := analysis.TotalRevenue.Float64()
		ticket, _ := analysis.AverageTicket.Float64()
		return AnalysisRow{
			Turn:               int32(analysis.Turn),
			TotalDemand:        int32(analysis.TotalDemand),
			TotalServed:        int32(analysis.TotalServed),
			TotalCapacity:      int32(analysis.TotalCapacity),
			TotalRevenue:       totalRevenue,
			MarketUtilization:  analysis.MarketUtilization,
			DemandSatisfaction: analysis.DemandSatisfaction,
			AverageTicket:      ticket,
		}, nil
	}

	var result models.AllocationResult
	if err := json.Unmarshal(msg, &result); err != nil {
		return nil, err
	}
	revenue, _ := result.Revenue.Float64()
	ticket, _ := result.AverageTicket.Float64()
	return AllocationRow{
		Turn:            int32(result.Turn),
		RestaurantID:    result.RestaurantID,
		AllocatedDemand: int32(result.AllocatedDemand),
		ServedCustomers: int32(result.ServedCustomers),
		Capacity:        int32(result.Capacity),
		UtilizationRate: result.UtilizationRate,
		LostCustomers:   int32(result.LostCustomers),
		Revenue:         revenue,
		AverageTicket:   ticket,
		Satisfaction:    result.Satisfaction,
		ReputationAfter: result.ReputationAfter,
	}, nil
}

func (p *ParquetOutput) Close() error {
	for topic, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			return fmt.Errorf("failed to finalize parquet writer for topic %s: %w", topic, err)
		}
		if err := p.files[topic].Close(); err != nil {
			return err
		}
	}
	return nil
}

// cloudParquetFile adapts a cloudwriter.Writer to the parquet source
// interface. Objects are write-once: reads and end-relative seeks are not
// supported.
type cloudParquetFile struct {
	cloudWriter cloudwriter.Writer
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

func (c *cloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
