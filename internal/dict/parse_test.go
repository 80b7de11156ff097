package dict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func loadFixture(t *testing.T) []gjson.Result {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "cat.json"))
	require.NoError(t, err)
	values := Values(data)
	require.Len(t, values, 4)
	return values
}

func TestValues(t *testing.T) {
	assert.Len(t, Values([]byte(`[{"a":1}, "b", 3]`)), 3)
	assert.Nil(t, Values([]byte(`{"hwi":{"hw":"cat"}}`)))
	assert.Nil(t, Values([]byte(`Invalid API key`)))
	assert.Empty(t, Values([]byte(`[]`)))
}

func TestParseEntry_Fixture(t *testing.T) {
	values := loadFixture(t)

	t.Run("noun entry", func(t *testing.T) {
		e, ok := ParseEntry(values[0])
		require.True(t, ok)

		assert.Equal(t, "cat:1", e.ID)
		assert.Equal(t, "cat", e.Headword)
		assert.Equal(t, "noun", e.FunctionalLabel)
		assert.False(t, e.Offensive)
		assert.Len(t, e.ShortDefs, 3)
		require.Len(t, e.Definitions, 1)

		def := e.Definitions[0]
		assert.Empty(t, def.VerbDivider)

		seq, ok := def.Senses.(Sequence)
		require.True(t, ok)
		require.Len(t, seq, 3)

		first, ok := seq[0].(Sequence)
		require.True(t, ok)
		require.Len(t, first, 2)

		sense, ok := first[0].(SenseNode)
		require.True(t, ok)
		assert.Equal(t, "1 a", sense.Sense.Number)
		assert.Nil(t, sense.Sense.SubjectLabels)
		require.Len(t, sense.Sense.Body, 2)
		assert.Equal(t, Text("{bc}a carnivorous mammal ({it}Felis catus{/it}) long domesticated as a pet"), sense.Sense.Body[0])
		assert.Equal(t, Unhandled{Tag: "vis"}, sense.Sense.Body[1])

		labelled := seq[1].(Sequence)[0].(SenseNode)
		assert.Equal(t, []string{"slang", "dated"}, labelled.Sense.SubjectLabels)
	})

	t.Run("verb entry with dividers, bs and pseq", func(t *testing.T) {
		e, ok := ParseEntry(values[1])
		require.True(t, ok)
		require.Len(t, e.Definitions, 2)
		assert.Equal(t, "transitive verb", e.Definitions[0].VerbDivider)
		assert.Equal(t, "intransitive verb", e.Definitions[1].VerbDivider)

		group := e.Definitions[1].Senses.(Sequence)[0].(Sequence)
		require.Len(t, group, 2)

		bs, ok := group[0].(BaseSense)
		require.True(t, ok)
		assert.Equal(t, "1", bs.Sense.Number)

		pseq, ok := group[1].(Sequence)
		require.True(t, ok)
		require.Len(t, pseq, 2)
		assert.Equal(t, "(1)", pseq[0].(SenseNode).Sense.Number)
		assert.Equal(t, []string{"chiefly British"}, pseq[1].(SenseNode).Sense.SubjectLabels)
	})

	t.Run("suggestion string is not an entry", func(t *testing.T) {
		_, ok := ParseEntry(values[2])
		assert.False(t, ok)
	})

	t.Run("bullet substitution", func(t *testing.T) {
		e, ok := ParseEntry(values[3])
		require.True(t, ok)
		assert.Equal(t, "cat•fish", e.Headword)
		assert.Empty(t, e.ShortDefs)
	})
}

func TestParseEntry_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		wantOK bool
		check  func(t *testing.T, e Entry)
	}{
		{name: "missing hwi", json: `{"fl":"noun"}`},
		{name: "numeric headword", json: `{"hwi":{"hw":42}}`},
		{name: "hwi is a string", json: `{"hwi":"cat"}`},
		{name: "not an object", json: `[1,2,3]`},
		{
			name:   "non-string functional label",
			json:   `{"hwi":{"hw":"cat"},"fl":7}`,
			wantOK: true,
			check: func(t *testing.T, e Entry) {
				assert.Empty(t, e.FunctionalLabel)
			},
		},
		{
			name:   "def is not an array",
			json:   `{"hwi":{"hw":"cat"},"def":{"sseq":[]}}`,
			wantOK: true,
			check: func(t *testing.T, e Entry) {
				assert.Empty(t, e.Definitions)
			},
		},
		{
			name:   "non-object definitions are dropped",
			json:   `{"hwi":{"hw":"cat"},"def":["x", 1, {"vd":"verb"}]}`,
			wantOK: true,
			check: func(t *testing.T, e Entry) {
				require.Len(t, e.Definitions, 1)
				assert.Equal(t, "verb", e.Definitions[0].VerbDivider)
				assert.Nil(t, e.Definitions[0].Senses)
			},
		},
		{
			name:   "non-string verb divider",
			json:   `{"hwi":{"hw":"cat"},"def":[{"vd":true,"sseq":[]}]}`,
			wantOK: true,
			check: func(t *testing.T, e Entry) {
				require.Len(t, e.Definitions, 1)
				assert.Empty(t, e.Definitions[0].VerbDivider)
				assert.Equal(t, Sequence{}, e.Definitions[0].Senses)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := ParseEntry(gjson.Parse(tt.json))
			assert.Equal(t, tt.wantOK, ok)
			if tt.check != nil {
				tt.check(t, e)
			}
		})
	}
}

func TestParseTree(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Tree
	}{
		{name: "not an array", json: `{"sense":{}}`, want: nil},
		{name: "string", json: `"sense"`, want: nil},
		{name: "empty array", json: `[]`, want: Sequence{}},
		{
			name: "sense",
			json: `["sense", {"sn":"a"}]`,
			want: SenseNode{Sense: Sense{Number: "a"}},
		},
		{
			name: "sense with non-object payload",
			json: `["sense", 5]`,
			want: SenseNode{},
		},
		{
			name: "base sense unwraps sense",
			json: `["bs", {"sense": {"sn":"2"}}]`,
			want: BaseSense{Sense: Sense{Number: "2"}},
		},
		{
			name: "base sense without sense",
			json: `["bs", {"sn":"2"}]`,
			want: BaseSense{},
		},
		{
			name: "pseq is transparent",
			json: `["pseq", [["sense", {"sn":"(1)"}], ["sense", {"sn":"(2)"}]]]`,
			want: Sequence{
				SenseNode{Sense: Sense{Number: "(1)"}},
				SenseNode{Sense: Sense{Number: "(2)"}},
			},
		},
		{
			name: "unknown tag is skipped",
			json: `["sen", {"sn":"3"}]`,
			want: nil,
		},
		{
			name: "implicit nested sequences",
			json: `[[["sense", {"sn":"1"}]], [["sen", {}], ["sense", {"sn":"2"}]], 7, "x"]`,
			want: Sequence{
				Sequence{SenseNode{Sense: Sense{Number: "1"}}},
				Sequence{SenseNode{Sense: Sense{Number: "2"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTree(gjson.Parse(tt.json)))
		})
	}
}

func TestParseSense(t *testing.T) {
	t.Run("labels keep slots for non-strings", func(t *testing.T) {
		s := ParseSense(gjson.Parse(`{"sls":["law", 3, "archaic"]}`))
		assert.Equal(t, []string{"law", "", "archaic"}, s.SubjectLabels)
	})

	t.Run("present but empty labels", func(t *testing.T) {
		s := ParseSense(gjson.Parse(`{"sls":[]}`))
		assert.NotNil(t, s.SubjectLabels)
		assert.Empty(t, s.SubjectLabels)
	})

	t.Run("non-string sense number", func(t *testing.T) {
		s := ParseSense(gjson.Parse(`{"sn":1}`))
		assert.Empty(t, s.Number)
	})

	t.Run("body elements", func(t *testing.T) {
		s := ParseSense(gjson.Parse(`{"dt":[["text","a"],["uns",[]],["text",5],[3,"x"],"text",[],["text","b"]]}`))
		assert.Equal(t, []Element{
			Text("a"),
			Unhandled{Tag: "uns"},
			Unhandled{Tag: "text"},
			Text("b"),
		}, s.Body)
	})
}
