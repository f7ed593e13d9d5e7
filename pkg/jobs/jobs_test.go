package jobs

import (
	"errors"
	"testing"

	"github.com/mocassin-sim/mocassin-go/pkg/interop"
)

func base() Configuration {
	return Configuration{
		Index:              3,
		TargetMcsp:         1000,
		TimeLimit:          3600,
		RngStateSeed:       42,
		RngIncreaseSeed:    7,
		Temperature:        1000,
		MinimalSuccessRate: 0.1,
	}
}

func TestKmcJob(t *testing.T) {
	job := &KmcConfiguration{
		Configuration:        base(),
		ElectricFieldModulus: 1e6,
		BaseFrequency:        1e13,
		PreRunMcsp:           100,
	}
	if err := job.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	info := job.Info()
	if info.ObjectID != 3 || info.TargetMcsp != 1000 || info.Temperature != 1000 {
		t.Errorf("unexpected job info %+v", info)
	}
	want := int64(FlagKmcSimulation | FlagPreRun)
	if info.JobFlags != want {
		t.Errorf("JobFlags = %b, want %b", info.JobFlags, want)
	}

	header, ok := job.Header().(*interop.KmcJobHeader)
	if !ok {
		t.Fatalf("Header type %T", job.Header())
	}
	if header.BaseFrequency != 1e13 || header.PreRunMcsp != 100 || header.JobFlags != want {
		t.Errorf("unexpected header %+v", header)
	}
	if job.JobName() != "job-3" {
		t.Errorf("JobName = %q", job.JobName())
	}
}

func TestMmcJob(t *testing.T) {
	job := &MmcConfiguration{
		Configuration:       base(),
		AbortTolerance:      1e-4,
		AbortSequenceLength: 10,
		AbortSampleLength:   100,
		AbortSampleInterval: 5,
	}
	job.Name = "anneal"
	job.Flags = FlagSkipSaving

	if err := job.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := job.Info().JobFlags; got != int64(FlagSkipSaving|FlagMmcSimulation) {
		t.Errorf("JobFlags = %b", got)
	}
	header := job.Header().(*interop.MmcJobHeader)
	if header.AbortSampleLength != 100 {
		t.Errorf("AbortSampleLength = %d", header.AbortSampleLength)
	}
	if job.JobName() != "anneal" {
		t.Errorf("JobName = %q", job.JobName())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		job  Job
	}{
		{"zero target", &MmcConfiguration{Configuration: func() Configuration { c := base(); c.TargetMcsp = 0; return c }()}},
		{"zero temperature", &MmcConfiguration{Configuration: func() Configuration { c := base(); c.Temperature = 0; return c }()}},
		{"success rate", &MmcConfiguration{Configuration: func() Configuration { c := base(); c.MinimalSuccessRate = 2; return c }()}},
		{"negative abort", &MmcConfiguration{Configuration: base(), AbortSampleLength: -1}},
		{"no frequency", &KmcConfiguration{Configuration: base()}},
		{"negative pre-run", &KmcConfiguration{Configuration: base(), BaseFrequency: 1, PreRunMcsp: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.job.Validate(); !errors.Is(err, ErrInvalidJob) {
				t.Errorf("Validate = %v, want ErrInvalidJob", err)
			}
		})
	}
}
