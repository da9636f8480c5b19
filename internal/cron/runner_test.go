package cronrunner

import (
	"context"
	"testing"
)

func TestRunnerAdd(t *testing.T) {
	r := New(nil, context.Background())
	id, err := r.Add("model_retry", "@every 30s", func(context.Context) {})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("len=%d want=1", r.Len())
	}
	r.Remove(id)
	if r.Len() != 0 {
		t.Fatalf("len=%d want=0", r.Len())
	}
}

func TestRunnerAdd_BadSpec(t *testing.T) {
	r := New(nil, nil)
	if _, err := r.Add("bad", "every now and then", func(context.Context) {}); err == nil {
		t.Fatalf("expected error")
	}
}
