package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"life/src/universe"
)

//Config is the run configuration, flags override the values loaded from the environment
type Config struct {
	Generations int           `env:"LIFE_GENERATIONS"`
	Delay       time.Duration `env:"LIFE_DELAY"`
	Toroidal    bool          `env:"LIFE_TOROIDAL"`
	Silent      bool          `env:"LIFE_SILENT"`
	Verbose     bool          `env:"LIFE_VERBOSE"`
	Stable      bool          `env:"LIFE_STOP_WHEN_STABLE"`
	Input       string        `env:"LIFE_INPUT"`
	Output      string        `env:"LIFE_OUTPUT"`
}

//Default returns the configuration used when neither the environment nor flags say otherwise
func Default() Config {
	return Config{
		Generations: universe.DefGenerations,
		Delay:       universe.DefInterval,
	}
}

//Load reads the environment on top of the defaults
func Load() (Config, error) {
	c := Default()
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Generations < 0 {
		return fmt.Errorf("generations must not be negative: %d", c.Generations)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative: %v", c.Delay)
	}
	return nil
}

//SimulationOptions maps the configuration to the simulation options
//silent runs skip the pause between generations
func (c Config) SimulationOptions() universe.Options {
	o := universe.DefaultOptions
	o.Generations = c.Generations
	o.Interval = c.Delay
	o.StopWhenStable = c.Stable
	if c.Silent {
		o.Interval = 0
	}
	return o
}
