// Package yamlutil wraps YAML decoding so callers never import the YAML
// library directly. Config files and mkdocs.yml both go through here.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrInvalidPath    = errors.New("yamlutil: invalid YAML path")
	ErrPathNotFound   = errors.New("yamlutil: path not found")
)

func checkInput(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := checkInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalPath decodes only the node selected by a YAML path expression
// such as "$.plugins". Documents with constructs the destination type cannot
// hold elsewhere in the file still decode, as long as the selected node fits.
func UnmarshalPath(data []byte, path string, v any) error {
	if err := checkInput(data, v); err != nil {
		return err
	}
	p, err := yaml.PathString(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPath, path, err)
	}
	if err := p.Read(bytes.NewReader(data), v); err != nil {
		if errors.Is(err, yaml.ErrNotFoundNode) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
