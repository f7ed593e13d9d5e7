package translator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/mocassin-sim/mocassin-go/pkg/energy"
	"github.com/mocassin-sim/mocassin-go/pkg/interop"
	"github.com/mocassin-sim/mocassin-go/pkg/jobs"
	"github.com/mocassin-sim/mocassin-go/pkg/log"
	"github.com/mocassin-sim/mocassin-go/pkg/marshal"
	"github.com/mocassin-sim/mocassin-go/pkg/model"
	"github.com/mocassin-sim/mocassin-go/pkg/transition"
)

// Blob names of a bundle. Per-model blobs append "/<model id>", job blobs
// append "/<job name>".
const (
	BlobPairInteractions    = "pair-interactions"
	BlobPairTable           = "pair-table"
	BlobClusterInteractions = "cluster-interactions"
	BlobClusterCodes        = "cluster-codes"
	BlobClusterTable        = "cluster-table"
	BlobKineticRules        = "kinetic-rules"
	BlobMetropolisRules     = "metropolis-rules"
	BlobJumpSequences       = "jump-sequences"
	BlobMoveSequences       = "move-sequences"
	BlobJobInfo             = "job-info"
	BlobJobHeader           = "job-header"
)

// BlobName joins a blob prefix and a key.
func BlobName(prefix string, key any) string {
	return fmt.Sprintf("%s/%v", prefix, key)
}

// Unused cluster position slots.
const unusedPosition = -1

const cellTolerance = 1e-6

// EncoderConfig configures an Encoder.
type EncoderConfig struct {
	// Marshal converts records. Required.
	Marshal *marshal.Service

	// Logger for operational logging. Nil uses slog.Default().
	Logger *slog.Logger

	// Events receives blob events. Nil disables them.
	Events log.Logger
}

// Encoder turns project contexts into bundles.
type Encoder struct {
	marshal *marshal.Service
	logger  *slog.Logger
	events  log.Logger
}

// NewEncoder creates an encoder.
func NewEncoder(cfg EncoderConfig) *Encoder {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Events == nil {
		cfg.Events = log.NoopLogger{}
	}
	return &Encoder{marshal: cfg.Marshal, logger: cfg.Logger, events: cfg.Events}
}

// encodeRun is the state of one Encode call.
type encodeRun struct {
	*Encoder
	ctx    context.Context
	pc     *ProjectContext
	bundle *Bundle
	em     *emitter
}

// Encode produces the bundle of pc and the given jobs. Jobs are validated
// first; job names must be unique.
func (e *Encoder) Encode(ctx context.Context, pc *ProjectContext, jobList []jobs.Job) (*Bundle, error) {
	start := time.Now()
	r := &encodeRun{
		Encoder: e,
		ctx:     ctx,
		pc:      pc,
		bundle:  NewBundle(pc.BuildID, pc.Snapshot.Name),
		em:      &emitter{events: e.events, buildID: pc.BuildID, snapshot: pc.Snapshot.Name},
	}
	r.em.state(log.LayerEncode, log.StageStarted, "", 0)

	steps := []struct {
		name string
		fn   func() error
	}{
		{"jobs", func() error { return r.encodeJobs(jobList) }},
		{"pair interactions", r.encodePairs},
		{"cluster interactions", r.encodeClusters},
		{"kinetic transitions", r.encodeKinetic},
		{"metropolis transitions", r.encodeMetropolis},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			err = fmt.Errorf("encode %s: %w", step.name, err)
			r.em.fail(log.LayerEncode, step.name, err)
			r.em.state(log.LayerEncode, log.StageFailed, err.Error(), time.Since(start))
			return nil, err
		}
	}

	r.em.state(log.LayerEncode, log.StageCompleted, "", time.Since(start))
	e.logger.Info("bundle encoded", "build_id", pc.BuildID, "blobs", len(r.bundle.Blobs), "bytes", r.bundle.Size())
	return r.bundle, nil
}

// putArray encodes a into the bundle under name.
func putArray[T any, P interface {
	*T
	interop.Record
}](r *encodeRun, name string, a *interop.Array[T, P]) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	data, err := marshal.EncodeArray(r.marshal, a)
	if err != nil {
		return fmt.Errorf("blob %s: %w", name, err)
	}
	var zero T
	r.put(name, P(&zero).Kind(), a.Len(), data)
	return nil
}

func (r *encodeRun) put(name string, kind interop.Kind, count int, data []byte) {
	r.bundle.Blobs[name] = Blob{Kind: kind, Count: count, Data: data}
	r.em.log(log.LayerEncode, log.CategoryBlob, func(ev *log.Event) {
		ev.Blob = &log.BlobEvent{Name: name, Record: kind.String(), Count: count, Size: len(data)}
	})
}

func (r *encodeRun) putRecord(name string, rec interop.Record) error {
	buf := make([]byte, rec.Size())
	if err := r.marshal.ToBytesContext(r.ctx, buf, 0, rec); err != nil {
		return fmt.Errorf("blob %s: %w", name, err)
	}
	r.put(name, rec.Kind(), 1, buf)
	return nil
}

func (r *encodeRun) encodeJobs(jobList []jobs.Job) error {
	seen := make(map[string]bool, len(jobList))
	for _, j := range jobList {
		name := j.JobName()
		if seen[name] {
			return fmt.Errorf("%w: duplicate job name %q", jobs.ErrInvalidJob, name)
		}
		seen[name] = true
		if err := j.Validate(); err != nil {
			return err
		}
		info := j.Info()
		if err := r.putRecord(BlobName(BlobJobInfo, name), &info); err != nil {
			return err
		}
		if err := r.putRecord(BlobName(BlobJobHeader, name), j.Header()); err != nil {
			return err
		}
	}
	return nil
}

func tableArray(t *energy.Table) (*interop.Array[interop.Double, *interop.Double], error) {
	a, err := interop.NewArray[interop.Double](t.Rows(), t.Cols())
	if err != nil {
		return nil, err
	}
	for i, v := range t.Values() {
		a.Values[i] = interop.Double(v)
	}
	return a, nil
}

func (r *encodeRun) encodePairs() error {
	models := r.pc.Energy.PairModels
	interactions, err := interop.NewArray[interop.PairInteraction](len(models))
	if err != nil {
		return err
	}
	for i, m := range models {
		rel, err := relativeVector(m.Interaction)
		if err != nil {
			return err
		}
		interactions.Values[i] = interop.PairInteraction{RelativeVector: rel, TableID: int32(m.ModelID)}

		table, err := tableArray(m.Table)
		if err != nil {
			return err
		}
		if err := putArray(r, BlobName(BlobPairTable, m.ModelID), table); err != nil {
			return err
		}
	}
	return putArray(r, BlobPairInteractions, interactions)
}

// relativeVector returns the crystal vector of the second pair position
// seen from the first.
func relativeVector(p model.PairInteraction) (interop.Vector4I, error) {
	cell := p.Position0.Vector.Add(p.Distance).Sub(p.Position1.Vector)
	var out [3]int32
	for i, v := range []float64{cell.A, cell.B, cell.C} {
		rounded := math.Round(v)
		if math.Abs(v-rounded) > cellTolerance {
			return interop.Vector4I{}, model.Inconsistency("pair interaction", p.Index,
				"distance %s does not end on position %d", p.Distance, p.Position1.Index)
		}
		out[i] = int32(rounded)
	}
	return interop.Vector4I{A: out[0], B: out[1], C: out[2], D: int32(p.Position1.Index)}, nil
}

func (r *encodeRun) encodeClusters() error {
	models := r.pc.Energy.GroupModels
	interactions, err := interop.NewArray[interop.ClusterInteraction](len(models))
	if err != nil {
		return err
	}
	for i, m := range models {
		ci := interop.ClusterInteraction{TableID: int32(m.ModelID)}
		for slot := range ci.PositionIDs {
			ci.PositionIDs[slot] = unusedPosition
		}
		for slot, v := range m.Interaction.Geometry {
			id, err := positionID(r.pc.Snapshot, v)
			if err != nil {
				return model.Inconsistency("group interaction", m.Interaction.Index, "slot %d: %v", slot, err)
			}
			if id > math.MaxInt16 {
				return model.Inconsistency("group interaction", m.Interaction.Index,
					"slot %d: position %d exceeds the record range", slot, id)
			}
			ci.PositionIDs[slot] = int16(id)
		}
		interactions.Values[i] = ci

		codes, err := interop.NewArray[interop.ClusterCode](len(m.LookupCodes))
		if err != nil {
			return err
		}
		for k, c := range m.LookupCodes {
			codes.Values[k] = interop.ClusterCode{Code: c.Int64()}
		}
		if err := putArray(r, BlobName(BlobClusterCodes, m.ModelID), codes); err != nil {
			return err
		}

		table, err := tableArray(m.Table)
		if err != nil {
			return err
		}
		if err := putArray(r, BlobName(BlobClusterTable, m.ModelID), table); err != nil {
			return err
		}
	}
	return putArray(r, BlobClusterInteractions, interactions)
}

// positionID returns the index of the unit cell position at the fractional
// part of v.
func positionID(snap *model.Snapshot, v model.Vector3) (int, error) {
	f := model.Vector3{A: wrap(v.A), B: wrap(v.B), C: wrap(v.C)}
	for _, p := range snap.Positions {
		d := f.Sub(p.Vector)
		if math.Abs(d.A) <= cellTolerance && math.Abs(d.B) <= cellTolerance && math.Abs(d.C) <= cellTolerance {
			return p.Index, nil
		}
	}
	return 0, fmt.Errorf("no position at %s", f)
}

func wrap(x float64) float64 {
	f := x - math.Floor(x)
	if f > 1-cellTolerance {
		return 0
	}
	return f
}

func jumpRule(r *transition.RuleModel, transitionCode int64, frequencyFactor, fieldFactor float64) interop.JumpRule {
	return interop.JumpRule{
		StateCode0:      r.StartStateCode.Int64(),
		StateCode1:      transitionCode,
		StateCode2:      r.FinalStateCode.Int64(),
		FrequencyFactor: frequencyFactor,
		FieldFactor:     fieldFactor,
		TrackerOrder:    r.FinalTrackerOrderCode.Bytes(),
	}
}

// maxAttemptFrequency returns the largest attempt frequency of all kinetic
// rules.
func maxAttemptFrequency(models []*transition.KineticTransitionModel) float64 {
	var out float64
	for _, m := range models {
		for _, rule := range m.RuleModels {
			out = max(out, rule.AttemptFrequency)
		}
	}
	return out
}

func (r *encodeRun) encodeKinetic() error {
	maxFrequency := maxAttemptFrequency(r.pc.Kinetic)
	for _, m := range r.pc.Kinetic {
		rules, err := interop.NewArray[interop.JumpRule](len(m.RuleModels))
		if err != nil {
			return err
		}
		for i, rule := range m.RuleModels {
			var frequency float64
			if maxFrequency > 0 {
				frequency = rule.AttemptFrequency / maxFrequency
			}
			rules.Values[i] = jumpRule(&rule.RuleModel, rule.TransitionStateCode.Int64(), frequency, rule.ChargeTransportFactor())
		}
		if err := putArray(r, BlobName(BlobKineticRules, m.ModelID), rules); err != nil {
			return err
		}

		n := m.Transition.Abstract.PathLength()
		jumps, err := interop.NewArray[interop.Vector4I](len(m.MappingModels), n-1)
		if err != nil {
			return err
		}
		moves, err := interop.NewArray[interop.MoveVector](len(m.MappingModels), n)
		if err != nil {
			return err
		}
		for i, mm := range m.MappingModels {
			for k, v := range mm.TransitionSequence {
				jumps.Values[i*(n-1)+k] = interop.Vector4I{A: int32(v.A), B: int32(v.B), C: int32(v.C), D: int32(v.P)}
			}
			for k, v := range mm.MoveVectors {
				moves.Values[i*n+k] = interop.MoveVector{
					Vector:    interop.Vector3{A: v.A, B: v.B, C: v.C},
					TrackerID: int32(k),
				}
			}
		}
		if err := putArray(r, BlobName(BlobJumpSequences, m.ModelID), jumps); err != nil {
			return err
		}
		if err := putArray(r, BlobName(BlobMoveSequences, m.ModelID), moves); err != nil {
			return err
		}
	}
	return nil
}

func (r *encodeRun) encodeMetropolis() error {
	for _, m := range r.pc.Metropolis {
		rules, err := interop.NewArray[interop.JumpRule](len(m.RuleModels))
		if err != nil {
			return err
		}
		for i, rule := range m.RuleModels {
			rules.Values[i] = jumpRule(&rule.RuleModel, 0, 1, 0)
		}
		if err := putArray(r, BlobName(BlobMetropolisRules, m.ModelID), rules); err != nil {
			return err
		}
	}
	return nil
}
