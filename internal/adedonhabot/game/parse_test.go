package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("labeled lines", func(t *testing.T) {
		answers := Parse("Name: Carla\nAnimal: Cat\nFruit: Cherry", 3)
		assert.Equal(t, []string{"Carla", "Cat", "Cherry"}, answers)
	})

	t.Run("ordinal lines", func(t *testing.T) {
		answers := Parse("1. Carla\n2) Cat\n3. Cherry", 3)
		assert.Equal(t, []string{"Carla", "Cat", "Cherry"}, answers)
	})

	t.Run("bare lines", func(t *testing.T) {
		answers := Parse("Carla\nCat\nCherry", 3)
		assert.Equal(t, []string{"Carla", "Cat", "Cherry"}, answers)
	})

	t.Run("missing answers pad with empty", func(t *testing.T) {
		answers := Parse("Name: Carl\nAnimal: Cat", 3)
		assert.Equal(t, []string{"Carl", "Cat", ""}, answers)
	})

	t.Run("extra lines dropped", func(t *testing.T) {
		answers := Parse("a\nb\nc\nd\ne", 3)
		assert.Equal(t, []string{"a", "b", "c"}, answers)
	})

	t.Run("blank lines skipped", func(t *testing.T) {
		answers := Parse("\n  \nName: Carla\n\nAnimal: Cat\n", 2)
		assert.Equal(t, []string{"Carla", "Cat"}, answers)
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		answers := Parse("Name:   Carla  \n  2)   Cat ", 2)
		assert.Equal(t, []string{"Carla", "Cat"}, answers)
	})

	t.Run("empty input", func(t *testing.T) {
		answers := Parse("", 2)
		assert.Equal(t, []string{"", ""}, answers)
	})
}

func TestLooksLikeSubmission(t *testing.T) {
	t.Run("labeled list qualifies", func(t *testing.T) {
		assert.True(t, LooksLikeSubmission("Name: Carla\nAnimal: Cat\nFruit: Cherry", 3))
	})

	t.Run("ordinal list qualifies", func(t *testing.T) {
		assert.True(t, LooksLikeSubmission("1. Carla\n2. Cat", 2))
	})

	t.Run("plain chatter does not", func(t *testing.T) {
		assert.False(t, LooksLikeSubmission("hurry up folks", 2))
		assert.False(t, LooksLikeSubmission("good game everyone\nwell played", 2))
	})

	t.Run("too few shaped lines", func(t *testing.T) {
		assert.False(t, LooksLikeSubmission("Name: Carla\nsomething else", 2))
	})

	t.Run("colon chatter below the category count", func(t *testing.T) {
		chatter := "meet at: noon\nscore was 3: 2\nmy rank: 1st"
		assert.False(t, LooksLikeSubmission(chatter, 5))
	})

	t.Run("zero expected never matches", func(t *testing.T) {
		assert.False(t, LooksLikeSubmission("a: b", 0))
	})
}
