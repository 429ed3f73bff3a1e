package vrml

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorderKinds extends the built-in table with test kinds: Recorder
// appends each "in" delivery to log, Emitter's "fire" emits late before
// early, and Exploder fails with ErrAllocationFailure.
func recorderKinds(log *[]float64) *KindTable {
	table := DefaultKinds()
	table.MustAdd(
		&Kind{
			Name: "Recorder",
			Interfaces: []InterfaceSpec{
				eventInSpec("in", KindSFTime, func(n *Node, v Value, ts float64) error {
					*log = append(*log, float64(v.(SFTime)))
					return nil
				}),
			},
		},
		&Kind{
			Name: "Emitter",
			Interfaces: []InterfaceSpec{
				eventInSpec("fire", KindSFTime, func(n *Node, v Value, ts float64) error {
					// Later timestamp first: the router must reorder.
					n.update("late", SFTime(ts+2), ts+2)
					n.update("early", SFTime(ts+1), ts+1)
					return nil
				}),
				eventOutSpec("early", KindSFTime),
				eventOutSpec("late", KindSFTime),
			},
		},
		&Kind{
			Name: "Exploder",
			Interfaces: []InterfaceSpec{
				eventInSpec("in", KindSFFloat, func(n *Node, v Value, ts float64) error {
					return ErrAllocationFailure
				}),
			},
		},
	)
	return table
}

func newMetricScene(t *testing.T, opts ...Option) (*Scene, *Metrics, *bytes.Buffer) {
	t.Helper()
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]Option{WithMetrics(m), WithLogger(logger)}, opts...)
	return NewScene(nil, opts...), m, &buf
}

func mustNode(t *testing.T, s *Scene, kind string, requested ...string) *Node {
	t.Helper()
	n, err := s.NewNode(kind, requested...)
	require.NoError(t, err)
	return n
}

func TestAddRouteTypeMismatchAtCreation(t *testing.T) {
	s := NewScene(nil)
	timer := mustNode(t, s, "TimeSensor")
	xf := mustNode(t, s, "Transform")

	r, err := s.AddRoute(timer, "fraction_changed", xf, "set_translation")
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.Nil(t, r)
	assert.Empty(t, s.Routes(timer, "fraction_changed"))

	_, err = s.AddRoute(timer, "no_such_out", xf, "set_translation")
	assert.ErrorIs(t, err, ErrUnsupportedInterface)
	_, err = s.AddRoute(timer, "fraction_changed", xf, "no_such_in")
	assert.ErrorIs(t, err, ErrUnsupportedInterface)
	_, err = s.AddRoute(nil, "fraction_changed", xf, "set_translation")
	assert.ErrorIs(t, err, ErrUnsupportedInterface)
	// A field is neither input nor output.
	box := mustNode(t, s, "Box")
	_, err = s.AddRoute(box, "size", xf, "set_scale")
	assert.ErrorIs(t, err, ErrUnsupportedInterface)
}

func TestAddRouteResolvesAliases(t *testing.T) {
	s := NewScene(nil)
	a := mustNode(t, s, "Transform")
	b := mustNode(t, s, "Transform")

	r1, err := s.AddRoute(a, "translation_changed", b, "set_translation")
	require.NoError(t, err)
	assert.Equal(t, "translation", r1.FromOut)
	assert.Equal(t, "translation", r1.ToIn)
	assert.Equal(t, KindSFVec3f, r1.Type)

	r2, err := s.AddRoute(a, "translation", b, "translation")
	require.NoError(t, err)
	assert.Same(t, r1, r2, "duplicate route returns the existing one")
	assert.Len(t, s.Routes(a, "translation_changed"), 1)
}

func TestRouteDeliversCascade(t *testing.T) {
	s := NewScene(nil)
	a := mustNode(t, s, "Transform")
	b := mustNode(t, s, "Transform")
	c := mustNode(t, s, "Transform")
	for _, n := range []*Node{a, b, c} {
		s.AddRoot(n)
	}
	s.Initialize(0)
	_, err := s.AddRoute(a, "translation_changed", b, "set_translation")
	require.NoError(t, err)
	_, err = s.AddRoute(b, "translation_changed", c, "set_translation")
	require.NoError(t, err)

	require.NoError(t, s.SendEvent(a, "set_translation", SFVec3f{1, 2, 3}, 4))

	v, ts, err := c.GetEventOut("translation_changed")
	require.NoError(t, err)
	assert.Equal(t, SFVec3f{1, 2, 3}, v)
	assert.Equal(t, 4.0, ts)
}

func TestRouteDeliveryTimestampOrder(t *testing.T) {
	var got []float64
	s := NewScene(NewRegistry(recorderKinds(&got)))
	em := mustNode(t, s, "Emitter")
	rec := mustNode(t, s, "Recorder")
	s.AddRoot(em)
	s.AddRoot(rec)
	s.Initialize(0)

	_, err := s.AddRoute(em, "late", rec, "in")
	require.NoError(t, err)
	_, err = s.AddRoute(em, "early", rec, "in")
	require.NoError(t, err)

	require.NoError(t, s.SendEvent(em, "fire", SFTime(0), 10))
	assert.Equal(t, []float64{11, 12}, got)
}

func TestRouteLoopBreaks(t *testing.T) {
	s, m, _ := newMetricScene(t)
	a := mustNode(t, s, "Material")
	b := mustNode(t, s, "Material")
	s.AddRoot(a)
	s.AddRoot(b)
	s.Initialize(0)

	_, err := s.AddRoute(a, "transparency_changed", b, "set_transparency")
	require.NoError(t, err)
	_, err = s.AddRoute(b, "transparency_changed", a, "set_transparency")
	require.NoError(t, err)

	require.NoError(t, s.SendEvent(a, "set_transparency", SFFloat(0.5), 1))

	vb, _ := b.GetField("transparency")
	assert.Equal(t, SFFloat(0.5), vb)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsDelivered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsDropped.WithLabelValues("loop")))

	// A later timestamp passes again.
	require.NoError(t, s.SendEvent(a, "set_transparency", SFFloat(0.75), 2))
	vb, _ = b.GetField("transparency")
	assert.Equal(t, SFFloat(0.75), vb)
}

func TestDeliverDropsBadEvents(t *testing.T) {
	s, m, buf := newMetricScene(t)
	a := mustNode(t, s, "Transform")
	b := mustNode(t, s, "Transform")
	s.AddRoot(a)
	s.AddRoot(b)
	s.Initialize(0)
	r, err := s.AddRoute(a, "translation_changed", b, "set_translation")
	require.NoError(t, err)

	require.NoError(t, s.Deliver(r, SFFloat(1), 3))
	assert.Contains(t, buf.String(), "event dropped")
	assert.Contains(t, buf.String(), "type mismatch")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsDropped.WithLabelValues("type_mismatch")))

	v, _ := b.GetField("translation")
	assert.Equal(t, SFVec3f{}, v, "sibling state untouched")

	// The step continues: a later good event still arrives.
	require.NoError(t, s.SendEvent(a, "set_translation", SFVec3f{1, 0, 0}, 4))
	v, _ = b.GetField("translation")
	assert.Equal(t, SFVec3f{1, 0, 0}, v)
}

func TestAllocationFailurePropagates(t *testing.T) {
	var log []float64
	s := NewScene(NewRegistry(recorderKinds(&log)))
	mat := mustNode(t, s, "Material")
	boom := mustNode(t, s, "Exploder")
	s.AddRoot(mat)
	s.AddRoot(boom)
	s.Initialize(0)
	_, err := s.AddRoute(mat, "transparency_changed", boom, "in")
	require.NoError(t, err)

	err = s.SendEvent(mat, "set_transparency", SFFloat(0.5), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAllocationFailure))
	assert.False(t, IsRecoverable(err))
}

func TestCascadeLimit(t *testing.T) {
	s, m, buf := newMetricScene(t, WithOptions(Options{MaxCascade: 3}))
	chain := make([]*Node, 6)
	for i := range chain {
		chain[i] = mustNode(t, s, "Material")
		s.AddRoot(chain[i])
	}
	s.Initialize(0)
	for i := 0; i+1 < len(chain); i++ {
		_, err := s.AddRoute(chain[i], "transparency_changed", chain[i+1], "set_transparency")
		require.NoError(t, err)
	}

	require.NoError(t, s.SendEvent(chain[0], "set_transparency", SFFloat(1), 1))

	v3, _ := chain[3].GetField("transparency")
	v4, _ := chain[4].GetField("transparency")
	assert.Equal(t, SFFloat(1), v3)
	assert.Equal(t, SFFloat(0), v4)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsDropped.WithLabelValues("cascade_limit")))
	assert.Contains(t, buf.String(), "event cascade limit reached")
}

func TestDeleteRouteStopsDelivery(t *testing.T) {
	s, m, _ := newMetricScene(t)
	a := mustNode(t, s, "Material")
	b := mustNode(t, s, "Material")
	s.AddRoot(a)
	s.AddRoot(b)
	s.Initialize(0)
	r, err := s.AddRoute(a, "transparency_changed", b, "set_transparency")
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Routes))

	assert.True(t, s.DeleteRoute(r))
	assert.False(t, s.DeleteRoute(r))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Routes))

	require.NoError(t, s.SendEvent(a, "set_transparency", SFFloat(0.5), 1))
	v, _ := b.GetField("transparency")
	assert.Equal(t, SFFloat(0), v)
}

func TestRoutesRemovedWithNode(t *testing.T) {
	s := NewScene(nil)
	a := mustNode(t, s, "Material")
	b := mustNode(t, s, "Material")
	s.AddRoot(a)
	s.AddRoot(b)
	s.Initialize(0)
	_, err := s.AddRoute(a, "transparency_changed", b, "set_transparency")
	require.NoError(t, err)

	require.True(t, s.RemoveRoot(b))
	assert.True(t, b.IsDestroyed())
	assert.Empty(t, s.Routes(a, "transparency_changed"))
	assert.NoError(t, s.SendEvent(a, "set_transparency", SFFloat(0.5), 1))
}

func TestSendEventReturnsDirectErrors(t *testing.T) {
	s := NewScene(nil)
	a := mustNode(t, s, "Material")
	s.AddRoot(a)
	s.Initialize(0)

	err := s.SendEvent(a, "set_nothing", SFFloat(1), 1)
	assert.ErrorIs(t, err, ErrUnsupportedInterface)
	err = s.SendEvent(a, "set_transparency", SFBool(true), 1)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

type sinkRecorder struct{ events []Event }

func (r *sinkRecorder) EmitEvent(e Event) { r.events = append(r.events, e) }

func TestEventSinkSeesEmissions(t *testing.T) {
	rec := &sinkRecorder{}
	s := NewScene(nil, WithEventSink(rec))
	a := mustNode(t, s, "Transform")
	s.AddRoot(a)
	s.Initialize(0)

	require.NoError(t, s.SendEvent(a, "set_scale", SFVec3f{2, 2, 2}, 7))
	require.Len(t, rec.events, 1)
	assert.Same(t, a, rec.events[0].Node)
	assert.Equal(t, "scale", rec.events[0].Interface)
	assert.Equal(t, 7.0, rec.events[0].Time)
}

func TestEventQueueOrder(t *testing.T) {
	var q eventQueue
	q.push(pending{ts: 3, seq: 1})
	q.push(pending{ts: 1, seq: 2})
	q.push(pending{ts: 1, seq: 3})
	q.push(pending{ts: 2, seq: 4})

	var got []uint64
	for q.Len() > 0 {
		got = append(got, q.pop().seq)
	}
	assert.Equal(t, []uint64{2, 3, 4, 1}, got)
}
