package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flight-route-service/internal/domain"

	"github.com/ghodss/yaml"
	"go.uber.org/zap"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func Decode(data []byte, format Format) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		// converts to JSON first, so the json tags and Flag apply
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return Document{}, fmt.Errorf("decode %s dataset: %w", format, err)
	}
	return doc, nil
}

func Encode(doc Document, format Format) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatYAML:
		out, err = yaml.Marshal(doc)
	default:
		out, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s dataset: %w", format, err)
	}
	return out, nil
}

func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read dataset %q: %w", path, err)
	}
	return Decode(data, FormatFromPath(path))
}

func WriteFile(path string, doc Document) error {
	data, err := Encode(doc, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset %q: %w", path, err)
	}
	return nil
}

// File-backed implementation of the NetworkRepository port.
type FileRepository struct {
	Path                 string
	DefaultMinConnection int
	Log                  *zap.Logger
}

func NewFileRepository(path string, defaultMinConnection int, log *zap.Logger) *FileRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileRepository{Path: path, DefaultMinConnection: defaultMinConnection, Log: log}
}

// Read, validate and index the dataset file. Skipped records are logged as warnings.
func (r *FileRepository) LoadNetwork(ctx context.Context) (*domain.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}

	n, warnings, err := Build(doc, r.DefaultMinConnection)
	for _, w := range warnings {
		r.Log.Warn("dataset record skipped", zap.String("path", r.Path), zap.Error(w))
	}
	if err != nil {
		return nil, fmt.Errorf("load network %q: %w", r.Path, err)
	}

	r.Log.Info("dataset loaded",
		zap.String("path", r.Path),
		zap.Int("airports", n.NumAirports()),
		zap.Int("flights", n.NumFlights()),
		zap.Int("skipped", len(warnings)),
	)
	return n, nil
}
