package render

import (
	"bytes"
	"encoding/json"
	"testing"

	sent "github.com/revelaction/unseg/sentence"
)

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(nil); err != nil {
		t.Fatalf("render: %v", err)
	}

	var results []sent.Segment
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if results == nil || len(results) != 0 {
		t.Fatalf("expected an empty array, got %q", buf.String())
	}
}

func TestJSONRendererRenderOneSegment(t *testing.T) {
	seg := sent.Segment{
		Emissions: []sent.Emission{
			{
				Fragment: sent.Fragment{Tokens: []sent.Token{
					{Index: 0, Text: "cat", Head: sent.NoHead, Dep: "root", Tag: "A1|-"},
				}},
				Offset:   0,
				Link:     2,
				Absorbed: 1,
			},
			{
				Fragment: sent.Fragment{Tokens: []sent.Token{
					{Index: 0, Text: "dog", Head: sent.NoHead, Dep: "root", Tag: "A1|-"},
				}},
				Offset: 1,
			},
		},
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render([]sent.Segment{seg}); err != nil {
		t.Fatalf("render: %v", err)
	}

	var results []sent.Segment
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	em := results[0].Emissions
	if len(em) != 2 {
		t.Fatalf("expected 2 emissions, got %d", len(em))
	}

	if em[0].Link != 2 || em[0].Absorbed != 1 {
		t.Errorf("expected link 2 absorbed 1, got %+v", em[0])
	}

	if em[1].Offset != 1 || em[1].Fragment.Tokens[0].Text != "dog" {
		t.Errorf("unexpected second emission %+v", em[1])
	}
}
