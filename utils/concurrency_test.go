package utils

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestURLSetNoDuplicates(t *testing.T) {
	s := NewURLSet()

	added := s.Add("https://auto.mercadolibre.com.ar/MLA-corolla-2022")
	if !added {
		t.Error("first Add should return true")
	}

	added = s.Add("https://auto.mercadolibre.com.ar/MLA-corolla-2022")
	if added {
		t.Error("second Add of same listing URL should return false")
	}

	if !s.Contains("https://auto.mercadolibre.com.ar/MLA-corolla-2022") {
		t.Error("Contains should report the added URL")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestURLSetConcurrency(t *testing.T) {
	s := NewURLSet()
	var added int64

	// The same offer surfaces from every source at once; only one wins.
	pool := NewWorkerPool(10, 0)
	for i := 0; i < 100; i++ {
		url := "https://www.kavak.com/ar/usado/chevrolet-cruze-2021"
		pool.Submit(func() {
			if s.Add(url) {
				atomic.AddInt64(&added, 1)
			}
		})
	}
	pool.Wait()

	if added != 1 {
		t.Errorf("expected exactly 1 successful add, got %d", added)
	}
}

func TestURLSetDistinctListings(t *testing.T) {
	s := NewURLSet()

	pool := NewWorkerPool(5, 0)
	for i := 0; i < 20; i++ {
		url := fmt.Sprintf("https://autos.deruedas.com.ar/aviso/%d", i)
		pool.Submit(func() {
			s.Add(url)
		})
	}
	pool.Wait()

	if s.Size() != 20 {
		t.Errorf("size: got %d, want 20 distinct listings", s.Size())
	}
}

func TestWorkerPoolRateLimit(t *testing.T) {
	rateLimitMs := 100
	pool := NewWorkerPool(1, rateLimitMs)

	var timestamps []time.Time
	mu := make(chan struct{}, 1)
	mu <- struct{}{}

	for i := 0; i < 3; i++ {
		pool.Submit(func() {
			<-mu
			timestamps = append(timestamps, time.Now())
			mu <- struct{}{}
		})
	}
	pool.Wait()

	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		min := time.Duration(rateLimitMs) * time.Millisecond
		if gap < min {
			t.Errorf("gap between job %d and %d: %v < minimum %v", i-1, i, gap, min)
		}
	}
}
