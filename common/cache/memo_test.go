package cache

import (
	"testing"
	"time"
)

func TestMemo(t *testing.T) {
	m, err := NewMemo[[]string](1000, 100, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if err := m.Set("q:inception", []string{"f1", "f2"}, 1); err != nil {
		t.Fatal(err)
	}
	got, ok := m.Get("q:inception")
	if !ok || len(got) != 2 || got[0] != "f1" {
		t.Fatalf("Get = %v, %v", got, ok)
	}
	m.Clear()
	if _, ok := m.Get("q:inception"); ok {
		t.Fatal("Clear must drop memoised values")
	}
}

func TestMemoDisabledTTL(t *testing.T) {
	m, err := NewMemo[int](1000, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()
	if err := m.Set("k", 1, 1); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Get("k"); ok {
		t.Fatal("a zero ttl memo must not store anything")
	}
}
