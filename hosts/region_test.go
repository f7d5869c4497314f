package hosts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFormatRegion(t *testing.T) {
	entries := []Entry{
		{Address: "10.0.0.5", Names: []string{"app1", "app1.local"}},
		{Address: "", Names: []string{"ghost"}},
		{Address: "10.0.0.6"},
		{Address: "10.0.0.7", Names: []string{"db"}},
	}
	require.Equal(t, "\n10.0.0.5\tapp1 app1.local\n10.0.0.7\tdb\n", FormatRegion(entries, "\n"))
	require.Equal(t, "\r\n10.0.0.5\tapp1 app1.local\r\n10.0.0.7\tdb\r\n", FormatRegion(entries, "\r\n"))
	require.Equal(t, "\n\n", FormatRegion(nil, "\n"))
}

func TestBuildBlock(t *testing.T) {
	require.Equal(t,
		"\n# whales-names begin\n\n# whales-names end\n\n",
		BuildBlock(nil, "\n"))
	require.Equal(t,
		"\n# whales-names begin\n\n# whales-names end\n\n",
		BuildBlock([]Entry{}, "\n"))
	require.Equal(t,
		"\n# whales-names begin\n\n1.2.3.4\ta b\n# whales-names end\n\n",
		BuildBlock([]Entry{{Address: "1.2.3.4", Names: []string{"a", "b"}}}, "\n"))
}

func TestApplyInsertsMissingRegion(t *testing.T) {
	old := "127.0.0.1 localhost\n"
	entries := []Entry{{Address: "10.0.0.5", Names: []string{"app1", "app1.local"}}}

	res := Apply(old, entries, "\n")
	require.Equal(t, old+
		"\n# whales-names begin\n"+
		"\n10.0.0.5\tapp1 app1.local\n"+
		"# whales-names end\n\n\n", res)

	parsed, ok := ParseRegion(res)
	require.True(t, ok)
	require.Equal(t, entries, parsed)
}

func TestApplyTerminatesLastLine(t *testing.T) {
	res := Apply("127.0.0.1 localhost", nil, "\n")
	require.True(t, strings.HasPrefix(res, "127.0.0.1 localhost\n\n# whales-names begin\n"))

	res = Apply("127.0.0.1 localhost\r", nil, "\r\n")
	require.True(t, strings.HasPrefix(res, "127.0.0.1 localhost\r\r\n# whales-names begin\r\n"))
}

// An empty file gets a leading blank line from the block itself. Consumers
// already tolerate it, so it is kept as is.
func TestApplyEmptyContentKeepsLeadingBlankLine(t *testing.T) {
	res := Apply("", nil, "\n")
	require.Equal(t, "\n# whales-names begin\n\n# whales-names end\n\n\n", res)
	require.Equal(t, res, Apply(res, nil, "\n"))
}

func TestApplyReplacesRegion(t *testing.T) {
	a := []Entry{
		{Address: "10.0.0.1", Names: []string{"alpha"}},
		{Address: "10.0.0.2", Names: []string{"beta", "beta.local"}},
	}
	b := []Entry{{Address: "10.0.0.3", Names: []string{"gamma"}}}

	prefix := "127.0.0.1 localhost\n::1 localhost\n"
	suffix := "\n# user stuff\n192.168.1.1 router\n"
	withA := Apply(prefix, a, "\n") + suffix[1:]
	withB := Apply(withA, b, "\n")

	require.NotContains(t, withB, "alpha")
	require.NotContains(t, withB, "beta")
	require.True(t, strings.HasPrefix(withB, prefix))
	require.True(t, strings.HasSuffix(withB, suffix[1:]))

	parsed, ok := ParseRegion(withB)
	require.True(t, ok)
	require.Equal(t, b, parsed)
}

func TestApplyEmptyEntriesKeepsMarkers(t *testing.T) {
	old := Apply("127.0.0.1 localhost\n", []Entry{{Address: "1.1.1.1", Names: []string{"one"}}}, "\n")
	for _, entries := range [][]Entry{nil, {}} {
		res := Apply(old, entries, "\n")
		require.Equal(t, "127.0.0.1 localhost\n\n# whales-names begin\n\n# whales-names end\n\n\n", res)
		parsed, ok := ParseRegion(res)
		require.True(t, ok)
		require.Empty(t, parsed)
	}
}

func TestApplyCRLF(t *testing.T) {
	entries := []Entry{{Address: "10.0.0.5", Names: []string{"app"}}}
	res := Apply("127.0.0.1 localhost\r\n", entries, "\r\n")
	require.Equal(t, "127.0.0.1 localhost\r\n"+
		"\r\n# whales-names begin\r\n"+
		"\r\n10.0.0.5\tapp\r\n"+
		"# whales-names end\r\n\r\n\r\n", res)
	require.Equal(t, res, Apply(res, entries, "\r\n"))
}

func TestApplyKeepsForeignLineEndings(t *testing.T) {
	old := "127.0.0.1 localhost\r\n" +
		"# whales-names begin\r\n10.0.0.1\told\r\n# whales-names end\r\n" +
		"1.2.3.4 other\r\n"
	res := Apply(old, []Entry{{Address: "10.0.0.2", Names: []string{"new"}}}, "\n")
	require.Equal(t, "127.0.0.1 localhost\r"+
		"\n# whales-names begin\n\n10.0.0.2\tnew\n# whales-names end\n\n"+
		"1.2.3.4 other\r\n", res)
}

func TestFindRegionFirstPairWins(t *testing.T) {
	first := "# whales-names begin\n1.1.1.1\tfirst\n# whales-names end\n"
	second := "# whales-names begin\n2.2.2.2\tsecond\n# whales-names end\n"
	content := "x\n" + first + "y\n" + second

	entries, ok := ParseRegion(content)
	require.True(t, ok)
	require.Equal(t, []Entry{{Address: "1.1.1.1", Names: []string{"first"}}}, entries)

	res := Apply(content, nil, "\n")
	require.True(t, strings.HasSuffix(res, "y\n"+second))
	require.NotContains(t, res, "first")
}

func TestFindRegionUnpairedMarkers(t *testing.T) {
	cases := map[string]string{
		"begin only":      "x\n# whales-names begin\n1.1.1.1\ta\n",
		"end only":        "x\n# whales-names end\n",
		"end before":      "# whales-names end\n# whales-names begin\n",
		"not whole lines": "x # whales-names begin\n# whales-names end tail\n",
		"prefixed":        "## whales-names begin\n# whales-names end\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := FindRegion(content)
			require.False(t, ok)

			res := Apply(content, nil, "\n")
			require.True(t, strings.HasPrefix(res, content))
			require.Equal(t, res, Apply(res, nil, "\n"))
		})
	}
}

func TestFindRegionClosestBegin(t *testing.T) {
	content := "# whales-names begin\nstray\n# whales-names begin\n1.1.1.1\ta\n# whales-names end\n"
	r, ok := FindRegion(content)
	require.True(t, ok)
	require.Equal(t, "1.1.1.1\ta\n", content[r.BodyStart:r.BodyEnd])
	require.Equal(t, "# whales-names begin\nstray", content[:r.Start])
}

func TestFindRegionTrailingConsumption(t *testing.T) {
	content := "a\n# whales-names begin\n# whales-names end\n\n\n\nb\n"
	r, ok := FindRegion(content)
	require.True(t, ok)
	require.Equal(t, 1, r.Start)
	require.Equal(t, "\n\nb\n", content[r.End:])

	content = "a\n# whales-names begin\n# whales-names end"
	r, ok = FindRegion(content)
	require.True(t, ok)
	require.Equal(t, len(content), r.End)
	require.Equal(t, r.BodyStart, r.BodyEnd)
}

var (
	genMarkerish = rapid.SampledFrom([]string{
		"", "\n", "\r\n", "\r", " ", "\t", "#", "x", "127.0.0.1 localhost",
		BeginMarker, EndMarker, "# whales-names", "end", "begin",
	})
	genContent = rapid.Custom(func(t *rapid.T) string {
		return strings.Join(rapid.SliceOfN(genMarkerish, 0, 24).Draw(t, "parts"), "")
	})
	genName  = rapid.StringMatching(`[a-z][a-z0-9.-]{0,12}`)
	genEntry = rapid.Custom(func(t *rapid.T) Entry {
		return Entry{
			Address: rapid.SampledFrom([]string{"", "10.0.0.1", "::1", "fe80::1%eth0"}).Draw(t, "address"),
			Names:   rapid.SliceOfN(genName, 0, 3).Draw(t, "names"),
		}
	})
	genEntries = rapid.SliceOfN(genEntry, 0, 5)
	genEOL     = rapid.SampledFrom([]string{"\n", "\r\n"})
)

func TestApplyIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		content := genContent.Draw(t, "content")
		entries := genEntries.Draw(t, "entries")
		eol := genEOL.Draw(t, "eol")

		once := Apply(content, entries, eol)
		require.Equal(t, once, Apply(once, entries, eol))
	})
}

func TestApplyIsolation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		content := genContent.Draw(t, "content")
		entries := genEntries.Draw(t, "entries")
		eol := genEOL.Draw(t, "eol")

		res := Apply(content, entries, eol)
		block := BuildBlock(entries, eol)
		if r, ok := FindRegion(content); ok {
			require.True(t, strings.HasSuffix(res, block+content[r.End:]))
			prefix := res[:len(res)-len(block)-len(content[r.End:])]
			require.Contains(t, []string{content[:r.Start], strings.TrimSuffix(content[:r.Start], "\r")}, prefix)
		} else {
			require.True(t, strings.HasPrefix(res, content))
			require.True(t, strings.HasSuffix(res, block+eol))
		}
	})
}

func TestApplyFiltersEntries(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entries := genEntries.Draw(t, "entries")
		res := Apply("127.0.0.1 localhost\n", entries, "\n")

		parsed, ok := ParseRegion(res)
		require.True(t, ok)
		var valid []Entry
		for _, e := range entries {
			if e.Valid() {
				valid = append(valid, e)
			}
		}
		require.Equal(t, valid, parsed)
	})
}
