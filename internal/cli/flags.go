package cli

import (
	"errors"
	"fmt"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Flags holds all command-line flag values.
type Flags struct {
	ConfigFile  string
	BatchFile   string
	Output      string
	Concurrency int
	Explain     bool
}

// NewFlags creates a new Flags instance with default values.
func NewFlags() *Flags {
	return &Flags{
		Output:      OutputTable,
		Concurrency: 4,
	}
}

// Validate checks flag combinations that cobra cannot express.
func (f *Flags) Validate() error {
	switch f.Output {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("--output must be %q or %q, got %q", OutputTable, OutputJSON, f.Output)
	}
	if f.Concurrency < 1 {
		return errors.New("--concurrency must be at least 1")
	}
	return nil
}
