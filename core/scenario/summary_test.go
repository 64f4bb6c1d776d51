package scenario

import (
	"math"
	"testing"

	"github.com/ewoodward/gridshift/core/results"
)

func TestSummarizePerStrategy(t *testing.T) {
	rows := []results.DayResult{
		{Strategy: "low_intensity", ReductionPct: 10, Valid: true},
		{Strategy: "low_intensity", ReductionPct: 20, Valid: true},
		{Strategy: "low_intensity", ReductionPct: 30, Valid: true},
		{Strategy: "max_renewable", ReductionPct: -5, Valid: true},
		{Strategy: "max_renewable", Valid: false, Note: "zero baseline emissions"},
	}
	got := Summarize(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries got %d", len(got))
	}
	li := got[0]
	if li.Strategy != "low_intensity" {
		t.Fatalf("expected low_intensity first, got %s", li.Strategy)
	}
	if li.Days != 3 || li.Skipped != 0 {
		t.Fatalf("unexpected counts: %+v", li)
	}
	if math.Abs(li.MeanPct-20) > 1e-12 || li.MinPct != 10 || li.MaxPct != 30 {
		t.Fatalf("unexpected stats: %+v", li)
	}
	if math.Abs(li.StdPct-10) > 1e-12 {
		t.Fatalf("expected sample std 10 got %v", li.StdPct)
	}

	mr := got[1]
	if mr.Days != 2 || mr.Skipped != 1 {
		t.Fatalf("expected skipped day counted: %+v", mr)
	}
	if mr.MeanPct != -5 || mr.MinPct != -5 || mr.MaxPct != -5 || mr.StdPct != 0 {
		t.Fatalf("single-day stats wrong: %+v", mr)
	}
}

func TestSummarizeAllSkipped(t *testing.T) {
	rows := []results.DayResult{
		{Strategy: "low_intensity", Valid: false},
		{Strategy: "low_intensity", Valid: false},
	}
	got := Summarize(rows)
	if len(got) != 1 {
		t.Fatalf("expected 1 summary got %d", len(got))
	}
	if got[0].Days != 2 || got[0].Skipped != 2 {
		t.Fatalf("unexpected counts: %+v", got[0])
	}
	if got[0].MeanPct != 0 || got[0].MinPct != 0 || got[0].MaxPct != 0 {
		t.Fatalf("expected zero stats for fully skipped strategy: %+v", got[0])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Fatalf("expected no summaries got %v", got)
	}
}
