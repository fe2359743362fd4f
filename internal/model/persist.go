package model

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactName is the model file written under the output directory.
const ArtifactName = "model.gob"

// Save persists the fitted pipeline as one artifact.
func Save(p *Pipeline, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(outputDir, ArtifactName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create model artifact: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(p); err != nil {
		return "", fmt.Errorf("encode model: %w", err)
	}
	return path, nil
}

// Load reads a previously saved pipeline.
func Load(outputDir string) (*Pipeline, error) {
	path := filepath.Join(outputDir, ArtifactName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()

	var p Pipeline
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	return &p, nil
}
