package jobs

import (
	"errors"
	"fmt"

	"github.com/mocassin-sim/mocassin-go/pkg/interop"
)

// ErrInvalidJob is returned for job settings the engine cannot run.
var ErrInvalidJob = errors.New("invalid job configuration")

// ExecutionFlags control the engine run.
type ExecutionFlags int64

const (
	FlagKmcSimulation ExecutionFlags = 1 << iota
	FlagMmcSimulation
	FlagPreRun
	FlagFixedNormalization
	FlagSkipSaving
)

// Job is a configuration that produces the records of one simulation job.
type Job interface {
	// JobName returns a name unique within a bundle.
	JobName() string

	// Validate checks the settings.
	Validate() error

	// Info returns the engine independent job record.
	Info() interop.JobInfo

	// Header returns the engine specific header record.
	Header() interop.Record
}

// Configuration holds the settings shared by all jobs.
type Configuration struct {
	Name               string         `yaml:"name"`
	Index              int32          `yaml:"index"`
	Flags              ExecutionFlags `yaml:"flags"`
	TargetMcsp         int64          `yaml:"targetMcsp"`
	TimeLimit          int64          `yaml:"timeLimit"`
	RngStateSeed       int64          `yaml:"rngStateSeed"`
	RngIncreaseSeed    int64          `yaml:"rngIncreaseSeed"`
	Temperature        float64        `yaml:"temperature"`
	MinimalSuccessRate float64        `yaml:"minimalSuccessRate"`
}

// JobName implements Job.
func (c *Configuration) JobName() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("job-%d", c.Index)
}

// Validate checks the shared settings.
func (c *Configuration) Validate() error {
	switch {
	case c.TargetMcsp <= 0:
		return fmt.Errorf("%w: %s: target mcsp %d", ErrInvalidJob, c.JobName(), c.TargetMcsp)
	case c.TimeLimit < 0:
		return fmt.Errorf("%w: %s: negative time limit", ErrInvalidJob, c.JobName())
	case c.Temperature <= 0:
		return fmt.Errorf("%w: %s: temperature %g", ErrInvalidJob, c.JobName(), c.Temperature)
	case c.MinimalSuccessRate < 0 || c.MinimalSuccessRate > 1:
		return fmt.Errorf("%w: %s: minimal success rate %g", ErrInvalidJob, c.JobName(), c.MinimalSuccessRate)
	}
	return nil
}

func (c *Configuration) info(flags ExecutionFlags) interop.JobInfo {
	return interop.JobInfo{
		JobFlags:           int64(c.Flags | flags),
		TargetMcsp:         c.TargetMcsp,
		TimeLimit:          c.TimeLimit,
		RngStateSeed:       c.RngStateSeed,
		RngIncreaseSeed:    c.RngIncreaseSeed,
		Temperature:        c.Temperature,
		MinimalSuccessRate: c.MinimalSuccessRate,
		ObjectID:           c.Index,
	}
}

// KmcConfiguration is a kinetic Monte Carlo job.
type KmcConfiguration struct {
	Configuration            `yaml:",inline"`
	ElectricFieldModulus     float64 `yaml:"electricFieldModulus"`
	BaseFrequency            float64 `yaml:"baseFrequency"`
	FixedNormalizationFactor float64 `yaml:"fixedNormalizationFactor"`
	PreRunMcsp               int32   `yaml:"preRunMcsp"`
}

// Validate implements Job.
func (c *KmcConfiguration) Validate() error {
	if err := c.Configuration.Validate(); err != nil {
		return err
	}
	if c.BaseFrequency <= 0 {
		return fmt.Errorf("%w: %s: base frequency %g", ErrInvalidJob, c.JobName(), c.BaseFrequency)
	}
	if c.PreRunMcsp < 0 || c.FixedNormalizationFactor < 0 {
		return fmt.Errorf("%w: %s: negative pre-run or normalization", ErrInvalidJob, c.JobName())
	}
	return nil
}

func (c *KmcConfiguration) flags() ExecutionFlags {
	flags := FlagKmcSimulation
	if c.PreRunMcsp > 0 {
		flags |= FlagPreRun
	}
	if c.FixedNormalizationFactor > 0 {
		flags |= FlagFixedNormalization
	}
	return flags
}

// Info implements Job.
func (c *KmcConfiguration) Info() interop.JobInfo {
	return c.info(c.flags())
}

// Header implements Job.
func (c *KmcConfiguration) Header() interop.Record {
	return &interop.KmcJobHeader{
		JobFlags:                 int64(c.Flags | c.flags()),
		ElectricFieldModulus:     c.ElectricFieldModulus,
		BaseFrequency:            c.BaseFrequency,
		FixedNormalizationFactor: c.FixedNormalizationFactor,
		PreRunMcsp:               c.PreRunMcsp,
	}
}

// MmcConfiguration is a metropolis Monte Carlo job.
type MmcConfiguration struct {
	Configuration       `yaml:",inline"`
	AbortTolerance      float64 `yaml:"abortTolerance"`
	AbortSequenceLength int32   `yaml:"abortSequenceLength"`
	AbortSampleLength   int32   `yaml:"abortSampleLength"`
	AbortSampleInterval int32   `yaml:"abortSampleInterval"`
}

// Validate implements Job.
func (c *MmcConfiguration) Validate() error {
	if err := c.Configuration.Validate(); err != nil {
		return err
	}
	if c.AbortTolerance < 0 || c.AbortSequenceLength < 0 || c.AbortSampleLength < 0 || c.AbortSampleInterval < 0 {
		return fmt.Errorf("%w: %s: negative abort settings", ErrInvalidJob, c.JobName())
	}
	return nil
}

// Info implements Job.
func (c *MmcConfiguration) Info() interop.JobInfo {
	return c.info(FlagMmcSimulation)
}

// Header implements Job.
func (c *MmcConfiguration) Header() interop.Record {
	return &interop.MmcJobHeader{
		JobFlags:            int64(c.Flags | FlagMmcSimulation),
		AbortTolerance:      c.AbortTolerance,
		AbortSequenceLength: c.AbortSequenceLength,
		AbortSampleLength:   c.AbortSampleLength,
		AbortSampleInterval: c.AbortSampleInterval,
	}
}

var (
	_ Job = (*KmcConfiguration)(nil)
	_ Job = (*MmcConfiguration)(nil)
)
