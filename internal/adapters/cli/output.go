package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"refstar/internal/services/api/refstar/domain"
)

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc
}

func printSelect(w io.Writer, out domain.SelectOutput) {
	fmt.Fprintln(w, out.Message)
	for _, s := range out.Skipped {
		fmt.Fprintf(w, "  skipped %s (class %s): %s\n", s.Name, s.Class, s.Reason)
	}
}

func printPointing(w io.Writer, out domain.PointingOutput) {
	verdict := "valid"
	if !out.Valid {
		verdict = "violates solar angle constraint"
	}
	fmt.Fprintf(w, "%s: %s, %d of %d samples inside (%g, %g)\n",
		out.Star, verdict, out.Violations, len(out.Samples), out.SunMinDeg, out.SunMaxDeg)
	fmt.Fprintf(w, "%-23s  %9s  %9s  %9s\n", "time", "sun", "pitch", "yaw")
	for _, r := range out.Samples {
		fmt.Fprintf(w, "%-23s  %9.3f  %9.3f  %9.3f\n", r.Time, r.SunDeg, r.PitchDeg, r.YawDeg)
	}
}

func printCatalog(w io.Writer, out domain.CatalogOutput) {
	fmt.Fprintf(w, "total %d\n", out.Total)
	keys := make([]string, 0, len(out.ByClass))
	for k := range out.ByClass {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name := k
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(w, "  %-6s %d\n", name, out.ByClass[k])
	}
}
