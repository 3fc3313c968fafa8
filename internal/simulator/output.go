package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/offsiteio/tripsim/internal/cloudwriter"
	"github.com/offsiteio/tripsim/internal/models"
	"github.com/offsiteio/tripsim/internal/simulator/producers"
)

// OutputDestination receives serialized simulation output, one message
// per topic.
type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))
	if _, err := os.Stdout.Write([]byte(output)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	_ = os.Stdout.Sync()
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }

// JSONOutput appends one JSON document per line to a file per topic.
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
		fullPath := filepath.Join(j.basePath, j.folder, topic)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.Create(filepath.Join(fullPath, "data.json"))
		if err != nil {
			return err
		}
		j.files[topic] = file
	}
	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err := file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// S3Output uploads one object per message under folder/topic/.
type S3Output struct {
	ctx     context.Context
	factory cloudwriter.CloudWriterFactory
	bucket  string
	folder  string
	seq     int
}

func NewS3Output(ctx context.Context, cfg *models.Config) (*S3Output, error) {
	factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
	}
	return &S3Output{
		ctx:     ctx,
		factory: factory,
		bucket:  cfg.CloudStorage.BucketName,
		folder:  cfg.OutputFolder,
	}, nil
}

func (s *S3Output) WriteMessage(topic string, msg []byte) error {
	s.seq++
	objectPath := filepath.Join(s.folder, topic, fmt.Sprintf("%06d.json", s.seq))
	w, err := s.factory.NewWriter(s.ctx, s.bucket, objectPath)
	if err != nil {
		return fmt.Errorf("failed to create cloud writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *S3Output) Close() error { return nil }

// DetermineOutputDestination picks the sink from configuration: Kafka
// when enabled, otherwise S3 or local JSON files when an output path is
// set, console as the default.
func DetermineOutputDestination(ctx context.Context, cfg *models.Config) (OutputDestination, error) {
	if cfg.KafkaEnabled {
		producer, err := producers.NewSaramaProducer(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
		}
		return producer, nil
	}
	if cfg.OutputDestination == "s3" {
		return NewS3Output(ctx, cfg)
	}
	if cfg.OutputPath != "" {
		return NewJSONOutput(cfg.OutputPath, cfg.OutputFolder), nil
	}
	return &ConsoleOutput{}, nil
}

// PublishResult writes each option result to the option topic, then the
// full ranked document to the result topic.
func PublishResult(dest OutputDestination, cfg *models.Config, result *models.SimulationResult) error {
	for _, optionResult := range result.Results {
		msg, err := json.Marshal(optionResult)
		if err != nil {
			return fmt.Errorf("failed to marshal option result: %w", err)
		}
		if err := dest.WriteMessage(cfg.OptionTopic, msg); err != nil {
			return err
		}
	}

	msg, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal simulation result: %w", err)
	}
	if err := dest.WriteMessage(cfg.ResultTopic, msg); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"run_id":  result.RunID,
		"options": len(result.Results),
	}).Debug("simulation result published")
	return nil
}
