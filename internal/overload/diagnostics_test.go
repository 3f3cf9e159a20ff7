package overload

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestDiagnosticsJSONRoundTrips(t *testing.T) {
	d := &Diagnostics{
		MemberName: "Greet",
		Candidates: []CandidateReport{
			{Signature: "Greet(string)", Score: 10},
			{Signature: "Greet(int64, int64)", Disqualified: true, DisqualifyReason: "arity mismatch"},
		},
	}

	out, err := d.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	if got := gjson.Get(out, "memberName").String(); got != "Greet" {
		t.Errorf("memberName = %q, want %q", got, "Greet")
	}
	if got := gjson.Get(out, "message").String(); got != d.ShortMessage() {
		t.Errorf("message = %q, want %q", got, d.ShortMessage())
	}
	if got := gjson.Get(out, "candidates.0.score").Int(); got != 10 {
		t.Errorf("candidates.0.score = %d, want 10", got)
	}
	if got := gjson.Get(out, "candidates.1.disqualifyReason").String(); got != "arity mismatch" {
		t.Errorf("candidates.1.disqualifyReason = %q, want %q", got, "arity mismatch")
	}
	if gjson.Get(out, "candidates.1.score").Exists() {
		t.Error("disqualified candidate should not carry a score field")
	}
}
