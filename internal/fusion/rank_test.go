package fusion

import (
	"testing"

	"sifter/internal/evidence"
)

func TestRankOrdersByConfidence(t *testing.T) {
	bundle := evidence.NewBundle(
		evidence.Signal{Source: evidence.SourceObvious, Category: "audio", Confidence: 0.95},
		evidence.Signal{Source: evidence.SourceModality, Category: "podcasts", Confidence: 0.6},
		evidence.Signal{Source: evidence.SourceHistory, Category: "music", Confidence: 0.7},
	)
	ranked := Rank(bundle)
	if len(ranked) != 3 {
		t.Fatalf("len = %d, want 3", len(ranked))
	}
	want := []evidence.Source{evidence.SourceObvious, evidence.SourceHistory, evidence.SourceModality}
	for i, src := range want {
		if ranked[i].Source != src {
			t.Errorf("ranked[%d].Source = %s, want %s", i, ranked[i].Source, src)
		}
	}
}

func TestRankTiesBreakBySourcePriority(t *testing.T) {
	bundle := evidence.NewBundle(
		evidence.Signal{Source: evidence.SourceObvious, Category: "documents", Confidence: 0.8},
		evidence.Signal{Source: evidence.SourceModality, Category: "contracts", Confidence: 0.8},
		evidence.Signal{Source: evidence.SourceHistory, Category: "financial_documents", Confidence: 0.8},
	)
	ranked := Rank(bundle)
	want := []evidence.Source{evidence.SourceObvious, evidence.SourceModality, evidence.SourceHistory}
	for i, src := range want {
		if ranked[i].Source != src {
			t.Errorf("ranked[%d].Source = %s, want %s", i, ranked[i].Source, src)
		}
	}
}

func TestRankSkipsNullOpinions(t *testing.T) {
	bundle := evidence.NewBundle(
		evidence.Signal{Source: evidence.SourceObvious},
		evidence.Signal{Source: evidence.SourceModality, Category: "creative", Confidence: 0.55},
		evidence.NullSignal(evidence.SourceHistory, "no verified patterns"),
	)
	ranked := Rank(bundle)
	if len(ranked) != 1 {
		t.Fatalf("len = %d, want 1", len(ranked))
	}
	if ranked[0].Source != evidence.SourceModality {
		t.Errorf("ranked[0].Source = %s", ranked[0].Source)
	}
}

func TestRankCarriesWeights(t *testing.T) {
	bundle := evidence.NewBundle(
		evidence.Signal{Source: evidence.SourceObvious, Category: "audio", Confidence: 0.95},
		evidence.Signal{Source: evidence.SourceModality, Category: "audio", Confidence: 0.6},
		evidence.Signal{Source: evidence.SourceHistory},
	)
	ranked := Rank(bundle)
	if ranked[0].Weight != 1.0 {
		t.Errorf("obvious weight = %v, want 1.0", ranked[0].Weight)
	}
	if ranked[1].Weight != 0.8 {
		t.Errorf("modality weight = %v, want 0.8", ranked[1].Weight)
	}
}

func TestRankEmptyBundle(t *testing.T) {
	bundle := evidence.NewBundle(evidence.Signal{}, evidence.Signal{}, evidence.Signal{})
	if ranked := Rank(bundle); len(ranked) != 0 {
		t.Errorf("ranked = %v, want empty", ranked)
	}
}
