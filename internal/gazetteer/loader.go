package gazetteer

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/gazetteer.yaml
var embeddedYAML []byte

// Parse decodes gazetteer YAML into its file structure.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse gazetteer yaml: %w", err)
	}
	return f, nil
}

// EmbeddedFile returns the dataset compiled into the binary.
func EmbeddedFile() (File, error) {
	return Parse(embeddedYAML)
}

// EmbeddedLoader serves the dataset compiled into the binary.
type EmbeddedLoader struct {
	mapper *Mapper
}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{mapper: NewMapper()}
}

func (l *EmbeddedLoader) Name() string { return "embedded" }

func (l *EmbeddedLoader) Load(_ context.Context) (*Dataset, error) {
	f, err := EmbeddedFile()
	if err != nil {
		return nil, err
	}
	return l.mapper.MapFile(f)
}

// FileLoader reads a gazetteer YAML file from disk on every Load, so edits
// are picked up by the next reload.
type FileLoader struct {
	filePath string
	mapper   *Mapper
}

func NewFileLoader(filePath string) *FileLoader {
	return &FileLoader{filePath: filePath, mapper: NewMapper()}
}

func (l *FileLoader) Name() string { return "file" }

func (l *FileLoader) Load(_ context.Context) (*Dataset, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read gazetteer file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return l.mapper.MapFile(f)
}
