package match_test

import (
	"testing"

	"github.com/seaward/citetrack"
	"github.com/seaward/citetrack/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vesselTable(rows ...[]string) *citetrack.Table {
	return &citetrack.Table{
		Kind:       citetrack.KindVessel,
		Columns:    []string{"Vessel name", "Crime Report Links"},
		Rows:       rows,
		NameIndex:  0,
		LinksIndex: 1,
	}
}

func TestMatcher_MatchTable(t *testing.T) {
	t.Parallel()

	t.Run("matches whole word case-insensitively", func(t *testing.T) {
		t.Parallel()

		table := vesselTable([]string{"Don Pepe", ""})
		citations := []*citetrack.Citation{
			{URL: "http://a.com", Content: "[Source: a.com] Vessel DON PEPE departed yesterday"},
			{URL: "http://b.com", Content: "[Source: b.com] nothing relevant here"},
		}

		res, err := match.New().MatchTable(table, citations)
		require.NoError(t, err)

		assert.Equal(t, []string{"http://a.com"}, table.Links(0))
		assert.Equal(t, 1, res.Matched)
		assert.Equal(t, 1, res.Links)
	})

	t.Run("matches names with accented first or last letters", func(t *testing.T) {
		t.Parallel()

		table := vesselTable([]string{"Limón", ""}, []string{"Ñandú", ""})
		citations := []*citetrack.Citation{
			{URL: "http://a.com", Content: "pesca ilegal del buque Limón hoy"},
			{URL: "http://b.com", Content: "el Ñandú fue detenido en puerto"},
		}

		res, err := match.New().MatchTable(table, citations)
		require.NoError(t, err)

		assert.Equal(t, []string{"http://a.com"}, table.Links(0))
		assert.Equal(t, []string{"http://b.com"}, table.Links(1))
		assert.Equal(t, 2, res.Matched)
	})

	t.Run("does not match partial words", func(t *testing.T) {
		t.Parallel()

		table := vesselTable([]string{"on Pepe", ""})
		citations := []*citetrack.Citation{
			{URL: "http://a.com", Content: "Vessel Don Pepe departed"},
		}

		_, err := match.New().MatchTable(table, citations)
		require.NoError(t, err)

		assert.Empty(t, table.Links(0))
	})

	t.Run("skips rows with empty names", func(t *testing.T) {
		t.Parallel()

		table := vesselTable([]string{"", ""}, []string{"   ", ""})
		citations := []*citetrack.Citation{
			{URL: "http://a.com", Content: "anything at all"},
		}

		res, err := match.New().MatchTable(table, citations)
		require.NoError(t, err)

		assert.Equal(t, 2, res.Skipped)
		assert.Empty(t, table.Links(0))
		assert.Empty(t, table.Links(1))
	})

	t.Run("failed citations contribute no matches", func(t *testing.T) {
		t.Parallel()

		table := vesselTable([]string{"Request", ""})
		citations := []*citetrack.Citation{
			{URL: "http://a.com", Content: "Error: Request timed out"},
		}

		_, err := match.New().MatchTable(table, citations)
		require.NoError(t, err)

		assert.Empty(t, table.Links(0))
	})

	t.Run("appends new links after existing ones", func(t *testing.T) {
		t.Parallel()

		table := vesselTable([]string{"ACME", "http://a.com"})
		citations := []*citetrack.Citation{
			{URL: "http://b.com", Content: "ACME fined for infractions"},
		}

		_, err := match.New().MatchTable(table, citations)
		require.NoError(t, err)

		assert.Equal(t, "http://a.com, http://b.com", table.Rows[0][1])
	})

	t.Run("rerun never removes recorded links", func(t *testing.T) {
		t.Parallel()

		table := vesselTable([]string{"ACME", "http://a.com, http://b.com"})
		citations := []*citetrack.Citation{
			{URL: "http://b.com", Content: "ACME fined for infractions"},
		}

		res, err := match.New().MatchTable(table, citations)
		require.NoError(t, err)

		assert.Equal(t, []string{"http://a.com", "http://b.com"}, table.Links(0))
		assert.Equal(t, 0, res.Matched)
	})

	t.Run("duplicate names accumulate independently", func(t *testing.T) {
		t.Parallel()

		table := vesselTable([]string{"ACME", ""}, []string{"ACME", "http://c.com"})
		citations := []*citetrack.Citation{
			{URL: "http://a.com", Content: "ACME fined"},
		}

		_, err := match.New().MatchTable(table, citations)
		require.NoError(t, err)

		assert.Equal(t, []string{"http://a.com"}, table.Links(0))
		assert.Equal(t, []string{"http://c.com", "http://a.com"}, table.Links(1))
	})

	t.Run("matches via aliases", func(t *testing.T) {
		t.Parallel()

		table := &citetrack.Table{
			Kind:       citetrack.KindTopic,
			Columns:    []string{"Topic", "Crime Report Links"},
			Rows:       [][]string{{"fishmeal", ""}},
			NameIndex:  0,
			LinksIndex: 1,
		}
		citations := []*citetrack.Citation{
			{URL: "http://a.com", Content: "exportaciones de harina de pescado"},
		}

		m := match.New(match.WithAliases(map[string][]string{
			"fishmeal": {"harina de pescado", "fish meal"},
		}))
		_, err := m.MatchTable(table, citations)
		require.NoError(t, err)

		assert.Equal(t, []string{"http://a.com"}, table.Links(0))
	})

	t.Run("normalizer strips legal suffixes before matching", func(t *testing.T) {
		t.Parallel()

		table := &citetrack.Table{
			Kind:       citetrack.KindPlant,
			Columns:    []string{"Company name", "Crime Report Links"},
			Rows:       [][]string{{"Pesquera Exalmar S.A.", ""}},
			NameIndex:  0,
			LinksIndex: 1,
		}
		citations := []*citetrack.Citation{
			{URL: "http://a.com", Content: "La empresa Pesquera Exalmar fue multada"},
		}

		m := match.New(match.WithNormalizer(match.CleanCompanyName))
		_, err := m.MatchTable(table, citations)
		require.NoError(t, err)

		assert.Equal(t, []string{"http://a.com"}, table.Links(0))
	})

	t.Run("returns error for invalid table", func(t *testing.T) {
		t.Parallel()

		table := &citetrack.Table{
			Kind:       citetrack.KindTopic,
			Columns:    []string{"Topic"},
			NameIndex:  0,
			LinksIndex: 5,
		}

		_, err := match.New().MatchTable(table, nil)
		require.Error(t, err)
		assert.Equal(t, citetrack.EINVALID, citetrack.ErrorCode(err))
	})
}

func TestWholeWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		term    string
		content string
		want    bool
	}{
		{"exact", "acme", "acme", true},
		{"case-insensitive", "acme", "ACME fined", true},
		{"bounded by punctuation", "acme", "fined: acme.", true},
		{"string edges", "don pepe", "don pepe", true},
		{"prefix of longer word", "acme", "acmecorp fined", false},
		{"suffix of longer word", "pepe", "donpepe departed", false},
		{"metacharacters are literal", "a.c", "abc", false},
		{"accented last letter at word edge", "perú", "pesca ilegal en el perú hoy", true},
		{"accented first letter at word edge", "única", "la planta única fue multada", true},
		{"accented case folding", "perú", "operaciones en PERÚ", true},
		{"accented term inside longer word", "ón", "el camarón llegó", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, match.WholeWord(tt.term).MatchString(tt.content))
		})
	}
}
