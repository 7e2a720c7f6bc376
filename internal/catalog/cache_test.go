package catalog

import (
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestCacheReusesEntries(t *testing.T) {
	cache, err := NewCache(2, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	key := Key{Step: Step{51, 51, 51}, MinContrast: 3, BucketWidth: 0.025}

	first, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	second, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	if first != second {
		t.Error("expected the same index for the same key")
	}
	if cache.Len() != 1 {
		t.Errorf("cache length = %d, want 1", cache.Len())
	}

	other, err := cache.Get(Key{Step: Step{51, 51, 51}, MinContrast: 3, BucketWidth: 0.01})
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if other == first {
		t.Error("different bucket widths must not share an index")
	}
	if other.BucketWidth() != 0.01 {
		t.Errorf("bucket width = %v, want 0.01", other.BucketWidth())
	}
}

func TestCacheEvicts(t *testing.T) {
	cache, err := NewCache(1, nil)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	for _, ratio := range []float64{2, 3, 4} {
		if _, err := cache.Get(Key{Step: Step{85, 85, 85}, MinContrast: ratio, BucketWidth: 0.1}); err != nil {
			t.Fatalf("Get() error: %v", err)
		}
	}

	if cache.Len() != 1 {
		t.Errorf("cache length = %d, want 1", cache.Len())
	}
}

func TestCacheInvalidKey(t *testing.T) {
	cache, err := NewCache(1, nil)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	if _, err := cache.Get(Key{Step: Step{0, 5, 5}, MinContrast: 3, BucketWidth: 0.1}); err == nil {
		t.Error("expected error for invalid step")
	}
	if _, err := cache.Get(Key{Step: Step{5, 5, 5}, MinContrast: 3, BucketWidth: 0}); err == nil {
		t.Error("expected error for invalid bucket width")
	}
	if cache.Len() != 0 {
		t.Errorf("failed builds should not be cached, length = %d", cache.Len())
	}
}
