package overload

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/tidwall/sjson"
)

// CandidateReport records one candidate's fate during resolution, for the
// diagnostics sink spec.md §7 describes: "the set of considered
// executables ... per-candidate score and the first disqualifying
// reason".
type CandidateReport struct {
	Signature        string
	Score            int
	Disqualified     bool
	DisqualifyReason string
	NameMappingNote  string
}

// Diagnostics is the full resolution-failure report handed to an embedder:
// a short one-line message and a long, candidate-by-candidate rendering.
type Diagnostics struct {
	MemberName string
	Candidates []CandidateReport
}

func (d *Diagnostics) ShortMessage() string {
	return fmt.Sprintf("no viable overload for %q (%d candidate(s) considered)", d.MemberName, len(d.Candidates))
}

func (d *Diagnostics) LongMessage() string {
	sorted := append([]CandidateReport(nil), d.Candidates...)
	sort.Slice(sorted, func(i, j int) bool {
		return natural.Less(sorted[i].Signature, sorted[j].Signature)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "overload resolution failed for %q:\n", d.MemberName)
	for _, c := range sorted {
		if c.Disqualified {
			fmt.Fprintf(&b, "  %s: disqualified (%s)\n", c.Signature, c.DisqualifyReason)
		} else {
			fmt.Fprintf(&b, "  %s: score=%d\n", c.Signature, c.Score)
		}
		if c.NameMappingNote != "" {
			fmt.Fprintf(&b, "    %s\n", c.NameMappingNote)
		}
	}
	return b.String()
}

// JSON renders the full report as a JSON document an embedder can pipe
// into its own tooling without depending on this package's Go types
// (spec.md's logging & diagnostics stack). Built incrementally with sjson
// rather than a struct tag-driven Marshal, since CandidateReport's
// disqualify fields are only meaningful when Disqualified is true and
// omitting them entirely (rather than emitting zero-value clutter) keeps
// each candidate entry readable.
func (d *Diagnostics) JSON() (string, error) {
	json := `{}`
	var err error
	if json, err = sjson.Set(json, "memberName", d.MemberName); err != nil {
		return "", err
	}
	if json, err = sjson.Set(json, "message", d.ShortMessage()); err != nil {
		return "", err
	}
	for i, c := range d.Candidates {
		prefix := fmt.Sprintf("candidates.%d.", i)
		if json, err = sjson.Set(json, prefix+"signature", c.Signature); err != nil {
			return "", err
		}
		if c.Disqualified {
			if json, err = sjson.Set(json, prefix+"disqualifyReason", c.DisqualifyReason); err != nil {
				return "", err
			}
		} else {
			if json, err = sjson.Set(json, prefix+"score", c.Score); err != nil {
				return "", err
			}
		}
		if c.NameMappingNote != "" {
			if json, err = sjson.Set(json, prefix+"nameMappingNote", c.NameMappingNote); err != nil {
				return "", err
			}
		}
	}
	return json, nil
}
