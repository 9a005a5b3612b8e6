package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCorpus(t *testing.T) {
	table := Default()
	require.Equal(t, 4, table.Len())

	questions := make([]string, 0, table.Len())
	for _, e := range table.Entries() {
		questions = append(questions, e.Question)
	}
	want := []string{
		"Нужно ли записываться заранее?",
		"Какие способы оплаты вы принимаете?",
		"Есть ли парковка рядом?",
		"Как работает система лояльности?",
	}
	if diff := cmp.Diff(want, questions); diff != "" {
		t.Fatalf("questions mismatch (-want +got):\n%s", diff)
	}
}

func TestFindMatchParking(t *testing.T) {
	entry, ok := Default().FindMatch("у вас есть парковка?")
	require.True(t, ok)
	assert.Equal(t, "Есть ли парковка рядом?", entry.Question)
	assert.Contains(t, entry.Answer, "Můstek")
}

func TestFindMatchIsCaseInsensitive(t *testing.T) {
	entry, ok := Default().FindMatch("КАК ПРОХОДИТ ОПЛАТА")
	require.True(t, ok)
	assert.Equal(t, "Какие способы оплаты вы принимаете?", entry.Question)
}

func TestFindMatchSubstringNotToken(t *testing.T) {
	// "перезапись" contains "запись".
	entry, ok := Default().FindMatch("нужна перезапись")
	require.True(t, ok)
	assert.Equal(t, "Нужно ли записываться заранее?", entry.Question)
}

func TestFindMatchFirstEntryWins(t *testing.T) {
	// "записаться" (entry 1) and "парковка" (entry 3) both occur.
	entry, ok := Default().FindMatch("есть парковка, если записаться?")
	require.True(t, ok)
	assert.Equal(t, "Нужно ли записываться заранее?", entry.Question)
}

func TestFindMatchNoMatch(t *testing.T) {
	for _, in := range []string{"какая погода завтра", "", "   ", "\t\n"} {
		_, ok := Default().FindMatch(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestFindMatchIsPure(t *testing.T) {
	table := Default()
	first, ok := table.FindMatch("бонусы")
	require.True(t, ok)
	first.Keywords[0] = "mutated"

	second, ok := table.FindMatch("бонусы")
	require.True(t, ok)
	assert.Equal(t, "лояльность", second.Keywords[0])
	assert.Equal(t, first.Question, second.Question)
}

func TestNewTableNormalizesKeywords(t *testing.T) {
	table, err := NewTable([]Entry{{Question: "Q", Answer: "A", Keywords: []string{"  Борода ", ""}}})
	require.NoError(t, err)

	entry, ok := table.FindMatch("уход за бородой? нет, борода")
	require.True(t, ok)
	assert.Equal(t, []string{"борода"}, entry.Keywords)
}

func TestNewTableValidation(t *testing.T) {
	_, err := NewTable(nil)
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = NewTable([]Entry{{Question: "Q", Answer: " ", Keywords: []string{"a"}}})
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	_, err = NewTable([]Entry{{Question: "Q", Answer: "A", Keywords: []string{" "}}})
	assert.ErrorIs(t, err, ErrEmptyKeywords)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.yaml")
	data := "- question: Вы стрижете детей?\n  answer: Да, детская стрижка 450 Kč.\n  keywords: [детск, ребен]\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	table, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	entry, ok := table.FindMatch("Детская стрижка есть?")
	require.True(t, ok)
	assert.Equal(t, "Да, детская стрижка 450 Kč.", entry.Answer)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Entries(), table.Entries())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
