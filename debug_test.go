package vrml

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// captureDebugLog routes node-level debug warnings into a buffer for the
// duration of the test.
func captureDebugLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	old := debugLogger
	debugLogger = func() *slog.Logger { return logger }
	t.Cleanup(func() { debugLogger = old })
	return &buf
}

func debugScene(t *testing.T, opts ...Option) *Scene {
	t.Helper()
	s := NewScene(nil, opts...)
	s.SetDebugMode(true)
	t.Cleanup(func() { s.SetDebugMode(false) })
	return s
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	buf := captureDebugLog(t)
	s := debugScene(t)

	// Build a chain deeper than debugMaxTreeDepth, top down so every attach
	// sees the full ancestry.
	current, err := s.NewNode("Group")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < debugMaxTreeDepth+5; i++ {
		child, _ := s.NewNode("Group")
		if err := current.SetField("children", MFNode{child}); err != nil {
			t.Fatal(err)
		}
		current = child
	}

	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Errorf("expected tree depth warning, got: %q", buf.String())
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	buf := captureDebugLog(t)
	s := debugScene(t)

	parent, _ := s.NewNode("Group")
	kids := make(MFNode, debugMaxChildCount+1)
	for i := range kids {
		kids[i], _ = s.NewNode("Transform")
	}
	if err := parent.DispatchEvent("addChildren", kids, 1); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	if !strings.Contains(output, "child count exceeds threshold") || !strings.Contains(output, "children=1001") {
		t.Errorf("expected child count warning, got: %q", output)
	}
}

func TestReleaseMode_NoWarnings(t *testing.T) {
	buf := captureDebugLog(t)
	s := NewScene(nil)

	parent, _ := s.NewNode("Group")
	kids := make(MFNode, debugMaxChildCount+1)
	for i := range kids {
		kids[i], _ = s.NewNode("Transform")
	}
	if err := parent.DispatchEvent("addChildren", kids, 1); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("release mode should not warn, got: %q", buf.String())
	}
}

func TestDebugMode_StepTimings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := debugScene(t, WithLogger(logger))
	timer, _ := s.NewNode("TimeSensor")
	s.AddRoot(timer)
	s.Initialize(0)

	if err := s.Step(0.5); err != nil {
		t.Fatal(err)
	}
	output := buf.String()
	if !strings.Contains(output, "msg=step") {
		t.Fatalf("expected step log, got: %q", output)
	}
	if !strings.Contains(output, "ticked=1") {
		t.Errorf("expected one ticked node, got: %q", output)
	}
	if !strings.Contains(output, "scene="+s.ID().String()) {
		t.Errorf("expected scene id attribute, got: %q", output)
	}
}

func TestDebugMode_FromOptions(t *testing.T) {
	s := NewScene(nil, WithOptions(Options{Debug: true}))
	t.Cleanup(func() { s.SetDebugMode(false) })
	if !globalDebug {
		t.Error("Options.Debug should enable debug checks")
	}
}

func TestDebugMode_ResetOnShutdown(t *testing.T) {
	t.Cleanup(func() { globalDebug = false })
	s := NewScene(nil, WithOptions(Options{Debug: true}))
	if !globalDebug {
		t.Fatal("Options.Debug should enable debug checks")
	}
	s.Shutdown()
	if globalDebug {
		t.Error("Shutdown of a debug scene should clear the global flag")
	}
}

func TestDebugMode_ScopedToScene(t *testing.T) {
	buf := captureDebugLog(t)
	t.Cleanup(func() { globalDebug = false })

	loud := NewScene(nil, WithOptions(Options{Debug: true}))
	quiet := NewScene(nil)
	if !globalDebug || quiet.opts.Debug {
		t.Fatal("expected only the first scene in debug mode")
	}

	parent, _ := quiet.NewNode("Group")
	quiet.AddRoot(parent)
	quiet.Initialize(0)
	kids := make(MFNode, debugMaxChildCount+1)
	for i := range kids {
		kids[i], _ = quiet.NewNode("Transform")
	}
	if err := quiet.SendEvent(parent, "addChildren", kids, 1); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("nodes of a release-mode scene should not warn, got: %q", buf.String())
	}

	parent, _ = loud.NewNode("Group")
	loud.AddRoot(parent)
	loud.Initialize(0)
	more := make(MFNode, debugMaxChildCount+1)
	for i := range more {
		more[i], _ = loud.NewNode("Transform")
	}
	if err := loud.SendEvent(parent, "addChildren", more, 2); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "child count exceeds threshold") {
		t.Errorf("expected a warning from the debug scene, got: %q", buf.String())
	}
}
