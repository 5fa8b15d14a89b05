package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	NoopTreeHooks{}.OnMutation(ctx, "add", "child", "user_1", nil)

	p := NoopPipelineHooks{}
	p.OnBuildComplete(ctx, 3, 2, time.Millisecond)
	p.OnLayoutStart(ctx, 3)
	p.OnLayoutComplete(ctx, 3, time.Millisecond, nil)
	p.OnRenderStart(ctx, "svg")
	p.OnRenderComplete(ctx, "svg", time.Millisecond, nil)

	s := NoopStoreHooks{}
	s.OnLoad(ctx, "file", 3, time.Millisecond, nil)
	s.OnSave(ctx, "redis", 3, time.Millisecond, errors.New("down"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Tree().(NoopTreeHooks); !ok {
		t.Error("Tree() should return NoopTreeHooks by default")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	tree := &recordingTreeHooks{}
	SetTreeHooks(tree)
	if Tree() != tree {
		t.Error("SetTreeHooks should set custom hooks")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Tree().(NoopTreeHooks); !ok {
		t.Error("Reset() should restore NoopTreeHooks")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Reset() should restore NoopStoreHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	tree := &recordingTreeHooks{}
	SetTreeHooks(tree)
	SetTreeHooks(nil)
	if Tree() != tree {
		t.Error("SetTreeHooks(nil) should be ignored")
	}
}

func TestTreeHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	rec := &recordingTreeHooks{}
	SetTreeHooks(rec)

	ctx := context.Background()
	Tree().OnMutation(ctx, "add_root", "root", "user_1", nil)
	Tree().OnMutation(ctx, "add", "parent", "", errors.New("AGE_GAP"))

	if len(rec.ops) != 2 || rec.ops[0] != "add_root" || rec.ops[1] != "add" {
		t.Errorf("ops = %v", rec.ops)
	}
	if rec.failed != 1 {
		t.Errorf("failed = %d, want 1", rec.failed)
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testStoreHooks struct{ NoopStoreHooks }
type testCacheHooks struct{ NoopCacheHooks }

type recordingTreeHooks struct {
	mu     sync.Mutex
	ops    []string
	failed int
}

func (r *recordingTreeHooks) OnMutation(_ context.Context, op, _, _ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	if err != nil {
		r.failed++
	}
}
