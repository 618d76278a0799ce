package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalog = Catalog{
	{Category: "Sleep", Activities: []string{"Sleeping", "Sleeplessness"}},
	{Category: "Personal care", Activities: []string{"Grooming", "Sleep-related care"}},
	{Category: "Work", Activities: []string{"Work, main job"}},
}

func labels(s []Suggestion) []string {
	var out []string
	for _, x := range s {
		out = append(out, x.Label)
	}
	return out
}

func TestSuggest(t *testing.T) {
	got := catalog.Suggest("SLEEP")
	assert.Equal(t, []string{"Sleep", "Sleeping", "Sleeplessness", "Personal care", "Sleep-related care"}, labels(got))
	assert.Equal(t, KindCategory, got[0].Kind)
	assert.Equal(t, "category:Sleep", got[0].Key())
	assert.Equal(t, "activity:Sleep-related care", got[4].Key())
	assert.Equal(t, "Personal care", got[4].Category)

	assert.Equal(t, []string{"Work", "Work, main job"}, labels(catalog.Suggest("work")))
	assert.Empty(t, catalog.Suggest("zzz"))
	assert.Empty(t, catalog.Suggest("personal"), "category names are not searched")
	assert.Len(t, catalog.Suggest(""), 8)
}

func TestKeyboardNavigationClampsToNone(t *testing.T) {
	s, eff := New().Input(catalog, "work")
	assert.True(t, eff.Refilter)
	require.Len(t, s.Suggestions, 2)
	assert.Equal(t, NoSelection, s.Selected)

	s, eff = s.Press(KeyDown)
	assert.False(t, eff.Refilter)
	assert.Equal(t, 0, s.Selected)
	s, _ = s.Press(KeyDown)
	assert.Equal(t, 1, s.Selected)
	s, _ = s.Press(KeyDown)
	assert.Equal(t, NoSelection, s.Selected)

	s, _ = s.Press(KeyUp)
	assert.Equal(t, 1, s.Selected)
	s, _ = s.Press(KeyUp)
	s, _ = s.Press(KeyUp)
	assert.Equal(t, NoSelection, s.Selected)
	_, ok := s.Highlighted()
	assert.False(t, ok)
}

func TestNavigationOnEmptyList(t *testing.T) {
	s, _ := New().Input(catalog, "zzz")
	s, _ = s.Press(KeyDown)
	assert.Equal(t, NoSelection, s.Selected)
	s, _ = s.Press(KeyUp)
	assert.Equal(t, NoSelection, s.Selected)
}

func TestCommitKeys(t *testing.T) {
	for _, k := range []Key{KeyEnter, KeyTab, KeyEscape} {
		t.Run(string(k), func(t *testing.T) {
			s, _ := New().Input(catalog, "slee")
			s, _ = s.Press(KeyDown)
			s, _ = s.Press(KeyDown)
			s, eff := s.Press(k)
			assert.True(t, eff.Refilter)
			assert.False(t, s.Open)
			assert.Equal(t, "Sleeping", s.Query)
			assert.Equal(t, NoSelection, s.Selected)
			require.NotNil(t, s.Picked)
			assert.Equal(t, Suggestion{Kind: KindActivity, Label: "Sleeping", Category: "Sleep"}, *s.Picked)
		})
	}
}

func TestCommitWithoutSelectionKeepsQuery(t *testing.T) {
	s, _ := New().Input(catalog, "slee")
	s, eff := s.Press(KeyEnter)
	assert.True(t, eff.Refilter)
	assert.Equal(t, "slee", s.Query)
	assert.Nil(t, s.Picked)
}

func TestTypingClearsPicked(t *testing.T) {
	s, _ := New().Input(catalog, "work")
	s, _ = s.Press(KeyDown)
	s, _ = s.Press(KeyEnter)
	require.NotNil(t, s.Picked)
	assert.Equal(t, KindCategory, s.Picked.Kind)

	s, _ = s.Blur()
	s, _ = s.Focus(catalog)
	assert.NotNil(t, s.Picked, "reopening keeps the pick")

	s, _ = s.Input(catalog, "Wor")
	assert.Nil(t, s.Picked)
}

func TestFocusAndBlur(t *testing.T) {
	s, _ := New().Input(catalog, "work")
	s, _ = s.Blur()
	assert.False(t, s.Open)

	s, eff := s.Focus(catalog)
	assert.False(t, eff.Refilter)
	assert.True(t, s.Open)
	assert.Equal(t, []string{"Work", "Work, main job"}, labels(s.Suggestions))

	s, eff = s.Blur()
	assert.True(t, eff.Refilter)
	assert.False(t, s.Open)
	assert.Equal(t, "work", s.Query)
}

func TestUnknownKeyIsIgnored(t *testing.T) {
	s, _ := New().Input(catalog, "work")
	next, eff := s.Press(Key("pagedown"))
	assert.Equal(t, s, next)
	assert.Equal(t, Effect{}, eff)
}

