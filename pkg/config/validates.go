package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"dnpsim/pkg/structs"
)

var validate = validator.New()

func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigIsNil
	}
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Corpus.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return nil
}

func (c *SimulationConfig) Validate() error {
	return validateStruct("simulation", c)
}

func (c *CatalogConfig) Validate() error {
	if err := validateStruct("catalog", c); err != nil {
		return err
	}
	if _, err := c.BuildCatalog(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

func (c *OutputConfig) Validate() error {
	if !knownLogLevels.Contains(strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("%w %q, want one of %v", ErrUnknownLogLevel, c.LogLevel, structs.Sorted(knownLogLevels))
	}
	return nil
}

func (c *CorpusConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if !knownSaveModes.Contains(c.Save) {
		return fmt.Errorf("%w %q, want one of %v", ErrUnknownSaveMode, c.Save, structs.Sorted(knownSaveModes))
	}

	if !c.InMemory && c.Dir == "" {
		return ErrMissingCorpusDir
	}
	return nil
}

func (c *MetricsConfig) Validate() error {
	return nil
}

func validateStruct(section string, s any) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%s: %w: %w", section, ErrInvalidField, err)
	}
	return nil
}
