package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/PierreLepagnol/foodops/internal/models"
)

// Topics written by the simulation loop.
const (
	TopicAllocationResults = "allocation_results"
	TopicMarketAnalysis    = "market_analysis"
)

// Destination receives serialized turn results, one message per row.
type Destination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// NewDestination builds the destination selected by the configuration.
func NewDestination(cfg *models.Config) (Destination, error) {
	switch cfg.OutputDestination {
	case "", "console":
		return &ConsoleOutput{}, nil
	case "json":
		return NewJSONOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case "csv":
		return NewCSVOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case "parquet":
		return NewParquetOutput(cfg)
	case "kafka":
		return NewKafkaOutput(cfg.KafkaBrokerList)
	case "postgres":
		return NewPostgresOutput(&cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported output destination: %s", cfg.OutputDestination)
	}
}

type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	_, err := fmt.Fprintf(os.Stdout, "[%s] %s\n", topic, string(msg))
	return err
}

func (c *ConsoleOutput) Close() error { return nil }

// JSONOutput appends newline-delimited JSON to one file per topic.
type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	file, ok := j.files[topic]
	if !ok {
		dir := filepath.Join(j.basePath, j.folder)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.Create(filepath.Join(dir, topic+".jsonl"))
		if err != nil {
			return fmt.Errorf("failed to create file for topic %s: %w", topic, err)
		}
		j.files[topic] = file
	}

	if _, err := file.Write(append(msg, '\n')); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	return nil
}

func (j *JSONOutput) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// CSVOutput writes one CSV file per topic, deriving the header from the
// first message's sorted keys.
type CSVOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
	writers  map[string]*csv.Writer
	headers  map[string][]string
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
		writers:  make(map[string]*csv.Writer),
		headers:  make(map[string][]string),
	}
}

func (c *CSVOutput) WriteMessage(topic string, msg []byte) error {
	var row map[string]interface{}
	if err := json.Unmarshal(msg, &row); err != nil {
		return err
	}

	writer, ok := c.writers[topic]
	if !ok {
		dir := filepath.Join(c.basePath, c.folder)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(dir, topic+".csv"))
		if err != nil {
			return fmt.Errorf("failed to create file for topic %s: %w", topic, err)
		}
		c.files[topic] = file
		writer = csv.NewWriter(file)
		c.writers[topic] = writer

		headers := make([]string, 0, len(row))
		for key := range row {
			headers = append(headers, key)
		}
		sort.Strings(headers)
		c.headers[topic] = headers
		if err := writer.Write(headers); err != nil {
			return err
		}
	}

	record := make([]string, 0, len(c.headers[topic]))
	for _, key := range c.headers[topic] {
		record = append(record, fmt.Sprintf("%v", row[key]))
	}
	if err := writer.Write(record); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func (c *CSVOutput) Close() error {
	for topic, writer := range c.writers {
		writer.Flush()
		if err := writer.Error(); err != nil {
			return err
		}
		if err := c.files[topic].Close(); err != nil {
			return err
		}
	}
	return nil
}
