package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeManifest, false},
		{LevelDetail, ScopeManifest, true},
		{LevelDebug, ScopeManifest, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
}

func TestStartNestsSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, run := Start(ctx, ScopeDriver, "run")
	mctx, m := Start(WithManifest(ctx, "Cargo.toml"), ScopeManifest, "manifest")
	Point(mctx, ScopeManifest, "cache-miss", "")
	m.WithExtra("changed", "true").End("")
	run.End("1 manifest")

	var events []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad line %q: %v", line, err)
		}
		events = append(events, ev)
	}
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d: %s", len(events), buf.String())
	}
	if events[1]["parent_id"] != events[0]["span_id"] {
		t.Fatalf("manifest span not parented on run: %v", events[1])
	}
	for i := 1; i <= 3; i++ {
		if events[i]["manifest"] != "Cargo.toml" {
			t.Fatalf("event %d not tagged with manifest: %v", i, events[i])
		}
	}
	if events[2]["parent_id"] != events[1]["span_id"] {
		t.Fatalf("point not parented on manifest span: %v", events[2])
	}
	if _, ok := events[4]["manifest"]; ok {
		t.Fatalf("run span must not carry a manifest: %v", events[4])
	}
	if events[4]["detail"] != "1 manifest" {
		t.Fatalf("detail = %v", events[4]["detail"])
	}
}

func TestDisabledTracerIsSilent(t *testing.T) {
	ctx, sp := Start(context.Background(), ScopeDriver, "run")
	if sp.ID() != 0 || CurrentSpan(ctx).SpanID != 0 {
		t.Fatal("nop tracer must not allocate spans")
	}
	if d := sp.End(""); d != 0 {
		t.Fatalf("End = %v", d)
	}
}

func TestTextFormatSortsExtra(t *testing.T) {
	ev := &Event{Kind: KindPoint, Name: "cache", Extra: map[string]string{"b": "2", "a": "1"}}
	got := string(FormatEvent(ev, FormatText, ev.Time))
	if !strings.HasSuffix(got, "\u2022 cache {a=1, b=2}\n") {
		t.Fatalf("got %q", got)
	}
}
