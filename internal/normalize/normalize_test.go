package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTitle(t *testing.T) {
	assert.Equal(t, TitleKey("the matrix"), Title("The Matrix"))
	assert.Equal(t, TitleKey("the matrix"), Title("  THE MATRIX  "))
	assert.Equal(t, TitleKey(""), Title(""))
	assert.Equal(t, TitleKey(""), Title("   "))
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
		ok    bool
	}{
		{"float64", 7.5, 7.5, true},
		{"int", 8, 8.0, true},
		{"int32", int32(6), 6.0, true},
		{"int64", int64(9), 9.0, true},
		{"numeric string", "7.2", 7.2, true},
		{"padded string", " 6.8 ", 6.8, true},
		{"garbage string", "seven", 0, false},
		{"number double wrapper", map[string]interface{}{"$numberDouble": "8.3"}, 8.3, true},
		{"number int wrapper", map[string]interface{}{"$numberInt": "7"}, 7.0, true},
		{"wrapper with float", map[string]interface{}{"$numberDouble": 8.3}, 8.3, true},
		{"unknown wrapper", map[string]interface{}{"$oid": "abc123"}, 0, false},
		{"bson M wrapper", primitive.M{"$numberDouble": "6.1"}, 6.1, true},
		{"bson D wrapper", primitive.D{{Key: "$numberDouble", Value: "5.9"}}, 5.9, true},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"slice", []string{"7"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRating(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestFormatGenres(t *testing.T) {
	assert.Equal(t, "Drama, Crime", FormatGenres([]string{"Drama", "Crime"}))
	assert.Equal(t, "Drama, Crime", FormatGenres([]interface{}{"Drama", "Crime"}))
	assert.Equal(t, "Drama", FormatGenres("Drama"))
	assert.Equal(t, "Drama", FormatGenres([]string{"Drama", " "}))
	assert.Equal(t, "", FormatGenres(nil))
	assert.Equal(t, "", FormatGenres(42))
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Drama", "Crime"}, SplitGenres("Drama, Crime"))
	assert.Equal(t, []string{"Drama"}, SplitGenres(" Drama ,  "))
	assert.Nil(t, SplitGenres(""))
}
