package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	categories := []string{"Name", "Animal", "Fruit"}

	t.Run("unique and shared split", func(t *testing.T) {
		answers := map[int64][]string{
			1: {"Carla", "Cat", "Cherry"},
			2: {"Carl", "Cat", ""},
		}
		valid := map[int64][]bool{
			1: {true, true, true},
			2: {true, true, false},
		}

		points, validated := Score(categories, answers, valid)

		// Carla unique, Cat shared, Cherry unique
		assert.Equal(t, 25, points[1])
		// Carl unique, Cat shared, empty slot earns nothing
		assert.Equal(t, 15, points[2])
		assert.Equal(t, 3, validated[1])
		assert.Equal(t, 2, validated[2])
	})

	t.Run("uniqueness is case and space insensitive", func(t *testing.T) {
		answers := map[int64][]string{
			1: {"carla", "", ""},
			2: {" CARLA ", "", ""},
		}
		valid := map[int64][]bool{
			1: {true, false, false},
			2: {true, false, false},
		}

		points, _ := Score(categories, answers, valid)

		assert.Equal(t, PointsShared, points[1])
		assert.Equal(t, PointsShared, points[2])
	})

	t.Run("invalid answers do not break uniqueness", func(t *testing.T) {
		answers := map[int64][]string{
			1: {"Cat", "", ""},
			2: {"Cat", "", ""},
		}
		valid := map[int64][]bool{
			1: {true, false, false},
			2: {false, false, false},
		}

		points, validated := Score(categories, answers, valid)

		// player 2's rejected Cat must not demote player 1 to shared
		assert.Equal(t, PointsUnique, points[1])
		assert.Equal(t, 0, points[2])
		assert.Equal(t, 0, validated[2])
	})

	t.Run("every submitter gets an entry", func(t *testing.T) {
		answers := map[int64][]string{
			1: {"", "", ""},
		}
		valid := map[int64][]bool{
			1: {false, false, false},
		}

		points, validated := Score(categories, answers, valid)

		assert.Equal(t, 0, points[1])
		assert.Equal(t, 0, validated[1])
	})

	t.Run("short records never panic", func(t *testing.T) {
		answers := map[int64][]string{
			1: {"Carla"},
		}
		valid := map[int64][]bool{
			1: {true},
		}

		points, _ := Score(categories, answers, valid)
		assert.Equal(t, PointsUnique, points[1])
	})
}
