package interop

// Record sizes of the job records.
const (
	JobInfoSize      = 88
	KmcJobHeaderSize = 40
	MmcJobHeaderSize = 32
)

// JobInfo is the engine independent part of a simulation job.
type JobInfo struct {
	JobFlags           int64
	StatusFlags        int64
	StateSize          int64
	TargetMcsp         int64
	TimeLimit          int64
	RngStateSeed       int64
	RngIncreaseSeed    int64
	Temperature        float64
	MinimalSuccessRate float64
	// HeaderPtr is reserved for the engine and written as given.
	HeaderPtr int64
	ObjectID  int32
}

// Kind identifies the JobInfo record layout.
func (*JobInfo) Kind() Kind { return KindJobInfo }

// Size is the encoded length of a JobInfo in bytes.
func (*JobInfo) Size() int { return JobInfoSize }

// MarshalTo writes the JobInfo into b in wire layout.
func (r *JobInfo) MarshalTo(b []byte) error {
	if err := checkSize(b, KindJobInfo, JobInfoSize); err != nil {
		return err
	}
	putInt64(b, 0, r.JobFlags)
	putInt64(b, 8, r.StatusFlags)
	putInt64(b, 16, r.StateSize)
	putInt64(b, 24, r.TargetMcsp)
	putInt64(b, 32, r.TimeLimit)
	putInt64(b, 40, r.RngStateSeed)
	putInt64(b, 48, r.RngIncreaseSeed)
	putFloat64(b, 56, r.Temperature)
	putFloat64(b, 64, r.MinimalSuccessRate)
	putInt64(b, 72, r.HeaderPtr)
	putInt32(b, 80, r.ObjectID)
	clear(b[84:88])
	return nil
}

// UnmarshalFrom reads a JobInfo from b.
func (r *JobInfo) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindJobInfo, JobInfoSize); err != nil {
		return err
	}
	r.JobFlags = getInt64(b, 0)
	r.StatusFlags = getInt64(b, 8)
	r.StateSize = getInt64(b, 16)
	r.TargetMcsp = getInt64(b, 24)
	r.TimeLimit = getInt64(b, 32)
	r.RngStateSeed = getInt64(b, 40)
	r.RngIncreaseSeed = getInt64(b, 48)
	r.Temperature = getFloat64(b, 56)
	r.MinimalSuccessRate = getFloat64(b, 64)
	r.HeaderPtr = getInt64(b, 72)
	r.ObjectID = getInt32(b, 80)
	return nil
}

// KmcJobHeader holds the kinetic specific job settings.
type KmcJobHeader struct {
	JobFlags                 int64
	ElectricFieldModulus     float64
	BaseFrequency            float64
	FixedNormalizationFactor float64
	PreRunMcsp               int32
}

// Kind identifies the KmcJobHeader record layout.
func (*KmcJobHeader) Kind() Kind { return KindKmcJobHeader }

// Size is the encoded length of a KmcJobHeader in bytes.
func (*KmcJobHeader) Size() int { return KmcJobHeaderSize }

// MarshalTo writes the KmcJobHeader into b in wire layout.
func (r *KmcJobHeader) MarshalTo(b []byte) error {
	if err := checkSize(b, KindKmcJobHeader, KmcJobHeaderSize); err != nil {
		return err
	}
	putInt64(b, 0, r.JobFlags)
	putFloat64(b, 8, r.ElectricFieldModulus)
	putFloat64(b, 16, r.BaseFrequency)
	putFloat64(b, 24, r.FixedNormalizationFactor)
	putInt32(b, 32, r.PreRunMcsp)
	clear(b[36:40])
	return nil
}

// UnmarshalFrom reads a KmcJobHeader from b.
func (r *KmcJobHeader) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindKmcJobHeader, KmcJobHeaderSize); err != nil {
		return err
	}
	r.JobFlags = getInt64(b, 0)
	r.ElectricFieldModulus = getFloat64(b, 8)
	r.BaseFrequency = getFloat64(b, 16)
	r.FixedNormalizationFactor = getFloat64(b, 24)
	r.PreRunMcsp = getInt32(b, 32)
	return nil
}

// MmcJobHeader holds the metropolis specific job settings.
type MmcJobHeader struct {
	JobFlags            int64
	AbortTolerance      float64
	AbortSequenceLength int32
	AbortSampleLength   int32
	AbortSampleInterval int32
}

// Kind identifies the MmcJobHeader record layout.
func (*MmcJobHeader) Kind() Kind { return KindMmcJobHeader }

// Size is the encoded length of a MmcJobHeader in bytes.
func (*MmcJobHeader) Size() int { return MmcJobHeaderSize }

// MarshalTo writes the MmcJobHeader into b in wire layout.
func (r *MmcJobHeader) MarshalTo(b []byte) error {
	if err := checkSize(b, KindMmcJobHeader, MmcJobHeaderSize); err != nil {
		return err
	}
	putInt64(b, 0, r.JobFlags)
	putFloat64(b, 8, r.AbortTolerance)
	putInt32(b, 16, r.AbortSequenceLength)
	putInt32(b, 20, r.AbortSampleLength)
	putInt32(b, 24, r.AbortSampleInterval)
	clear(b[28:32])
	return nil
}

// UnmarshalFrom reads a MmcJobHeader from b.
func (r *MmcJobHeader) UnmarshalFrom(b []byte) error {
	if err := checkSize(b, KindMmcJobHeader, MmcJobHeaderSize); err != nil {
		return err
	}
	r.JobFlags = getInt64(b, 0)
	r.AbortTolerance = getFloat64(b, 8)
	r.AbortSequenceLength = getInt32(b, 16)
	r.AbortSampleLength = getInt32(b, 20)
	r.AbortSampleInterval = getInt32(b, 24)
	return nil
}
