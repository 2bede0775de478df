package pass

import (
	"fmt"
	"time"

	"svdata-hq/svast/pkg/config"
	"svdata-hq/svast/pkg/telemetry/logging"
)

// Build creates the passes described by the pipeline configuration. A
// command pass without its own timeout gets defaultTimeout.
func Build(cfgs []config.PassConfig, defaultTimeout time.Duration, logger *logging.Logger) ([]Pass, error) {
	passes := make([]Pass, 0, len(cfgs))
	for i, c := range cfgs {
		p, err := build(c, defaultTimeout, logger)
		if err != nil {
			return nil, fmt.Errorf("pipeline.passes[%d] (%s): %w", i, c.Name, err)
		}
		passes = append(passes, p)
	}
	return passes, nil
}

func build(c config.PassConfig, defaultTimeout time.Duration, logger *logging.Logger) (Pass, error) {
	switch c.Type {
	case "rename":
		p, err := RenameIdentifier(c.From, c.To)
		if err != nil {
			return nil, err
		}
		return named{Pass: p, name: c.Name}, nil
	case "command":
		if len(c.Command) == 0 {
			return nil, fmt.Errorf("command pass requires a non-empty argv")
		}
		timeout := c.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		return Command(c.Name, c.Command, CommandOptions{
			Dir:     c.Dir,
			Env:     c.Env,
			Timeout: timeout,
			Logger:  logger,
		}), nil
	default:
		return nil, fmt.Errorf("unknown pass type %q", c.Type)
	}
}

// named overrides the name of a built-in pass with the configured one.
type named struct {
	Pass
	name string
}

func (n named) Name() string { return n.name }
