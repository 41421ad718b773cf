package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	NoopResolveHooks{}.OnResolve(ctx, "demo", 1, 5, 3, time.Millisecond)

	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "svg", 10)
	r.OnRenderComplete(ctx, "svg", 1024, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	NoopHTTPHooks{}.OnResponse(ctx, "GET", "/health", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Resolve().(NoopResolveHooks); !ok {
		t.Error("Resolve() should return NoopResolveHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customResolve := &testResolveHooks{}
	SetResolveHooks(customResolve)
	if Resolve() != customResolve {
		t.Error("SetResolveHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Resolve().(NoopResolveHooks); !ok {
		t.Error("Reset() should restore NoopResolveHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testRenderHooks{}
	SetRenderHooks(custom)
	SetRenderHooks(nil)

	if Render() != custom {
		t.Error("SetRenderHooks(nil) should be ignored")
	}
}

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)
	p.Register()
	defer Reset()

	ctx := context.Background()
	Resolve().OnResolve(ctx, "demo", 1, 4, 2, time.Millisecond)
	Render().OnRenderComplete(ctx, "svg", 100, time.Millisecond, nil)
	Render().OnRenderComplete(ctx, "svg", 0, time.Millisecond, errors.New("boom"))
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	HTTP().OnResponse(ctx, "GET", "/health", 200, time.Millisecond)

	if got := testutil.ToFloat64(p.cacheLookups.WithLabelValues("artifact", "miss")); got != 2 {
		t.Errorf("cache misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.renderErrors.WithLabelValues("svg")); got != 1 {
		t.Errorf("render errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.renderBytes.WithLabelValues("svg")); got != 100 {
		t.Errorf("render bytes = %v, want 100", got)
	}
	if n := testutil.CollectAndCount(p.httpDuration); n != 1 {
		t.Errorf("http series = %d, want 1", n)
	}
}

type testResolveHooks struct{ NoopResolveHooks }
type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
