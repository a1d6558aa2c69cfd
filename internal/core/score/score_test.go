package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"#AI", 150},
		{"#Bitcoin", 150},
		{"Elon Musk", 50},
		{"SpaceX", 80},
		{"Bitcoin", 80},
		{"NASA", 60},
		{"Artificial Intelligence Conference Today", 0},
		{"Rise of the Machines", 30 - 40},
		{"War of the Worlds and the Rest of It", -20 * 5},
		{"Minister says deal is close", 10 - 50},
		{"", 0},
		{"   ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.in))
		})
	}
}

func TestScore_HashtagBeatsLongPhrase(t *testing.T) {
	assert.Greater(t, Score("#AI"), Score("Artificial Intelligence Conference Today"))
}

func TestScore_Idempotent(t *testing.T) {
	for _, in := range []string{"#AI", "Taylor Swift", "the and the", "Minister says"} {
		assert.Equal(t, Score(in), Score(in), in)
	}
}

func TestScore_FunctionWordsDoNotOverlap(t *testing.T) {
	// " the the " holds one non-overlapping " the " match.
	assert.Equal(t, 50-20, Score("x the the y"))
}

func TestScore_HeadlineVerbIsFlat(t *testing.T) {
	assert.Equal(t, Score("ab says cd"), Score("ab says cd says"))
	assert.Equal(t, 0, Score("ab says cd"))
}

func TestRank(t *testing.T) {
	got := Rank([]string{"Elon Musk", "#Bitcoin", "#AI", "bitcoin"})

	assert.Equal(t, []string{"#Bitcoin", "#AI", "Elon Musk", "bitcoin"}, Texts(got))
	assert.Equal(t, 150, got[0].Score)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}
