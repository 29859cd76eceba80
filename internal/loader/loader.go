// Package loader handles CHIP-8 program image loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
)

// ErrEmptyProgram is returned for program images without any content.
var ErrEmptyProgram = errors.New("program image is empty")

// Loader handles loading program images from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 program image from the given file. CHIP-8 images
// have no header, the whole file is copied verbatim to the program start.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads a raw program image and validates that it fits into
// the program space. Unlike the virtual machine, which accepts any image
// that fits, the file reader also rejects empty images.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized images
	data, err := io.ReadAll(io.LimitReader(reader, vm.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program image: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyProgram
	case len(data) > vm.MaxProgramSize:
		return nil, fmt.Errorf("program image exceeds %d bytes of program space: %w",
			vm.MaxProgramSize, vm.ErrOutOfRange)
	}
	return data, nil
}

// Install loads the font and the program image into the engine.
func Install(engine *vm.Engine, program []byte) error {
	if err := engine.LoadFont(Font[:]); err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	if err := engine.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return nil
}
