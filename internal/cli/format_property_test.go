package cli

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPropertyFormatters(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("FormatPrice parses back close to the input", prop.ForAll(
		func(price float64) bool {
			parsed, err := strconv.ParseFloat(FormatPrice(price), 64)
			if err != nil {
				t.Logf("unparseable output %q for %v", FormatPrice(price), price)
				return false
			}
			// Worst case is the 4-decimal branch.
			return parsed >= price-5e-5 && parsed <= price+5e-5
		},
		gen.Float64Range(0, 1e6),
	))

	properties.Property("FormatVol always ends in %%", prop.ForAll(
		func(vol float64) bool {
			return strings.HasSuffix(FormatVol(vol), "%")
		},
		gen.Float64Range(0, 5),
	))

	properties.Property("TruncateString never exceeds the limit", prop.ForAll(
		func(s string, maxLen int) bool {
			out := TruncateString(s, maxLen)
			if len(out) > maxLen && len(s) > maxLen {
				t.Logf("TruncateString(%q, %d) = %q, too long", s, maxLen, out)
				return false
			}
			if len(s) <= maxLen && out != s {
				t.Logf("TruncateString(%q, %d) changed a short string", s, maxLen)
				return false
			}
			return true
		},
		gen.AlphaString(),
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t)
}
