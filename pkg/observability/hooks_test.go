package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Store hooks
	s := NoopStoreHooks{}
	s.OnLoad(ctx, "file", "campus.map", 120, time.Millisecond, nil)
	s.OnSave(ctx, "redis", "campus.map", 120, time.Millisecond, nil)
	s.OnDelete(ctx, "s3", "campus.map", nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "campus.map")
	c.OnCacheMiss(ctx, "campus.map")
	c.OnCacheSet(ctx, "campus.map", 1024)

	// Edit hooks
	e := NoopEditHooks{}
	e.OnPathCreated(ctx, 1, 10, 20)
	e.OnConnect(ctx, true, 2)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Edit().(NoopEditHooks); !ok {
		t.Error("Edit() should return NoopEditHooks by default")
	}

	// Set custom hooks
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

	customEdit := &testEditHooks{}
	SetEditHooks(customEdit)
	if Edit() != customEdit {
		t.Error("SetEditHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Reset() should restore NoopStoreHooks")
	}
	if _, ok := Edit().(NoopEditHooks); !ok {
		t.Error("Reset() should restore NoopEditHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testStoreHooks{}
	SetStoreHooks(custom)

	// Setting nil should be ignored
	SetStoreHooks(nil)

	if Store() != custom {
		t.Error("SetStoreHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testStoreHooks struct{ NoopStoreHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testEditHooks struct{ NoopEditHooks }
