package game

import "strings"

// Score computes round points per player with the uniqueness rule: for
// each category a valid non-empty answer earns PointsUnique when its
// normalized form occurs exactly once across all players, PointsShared
// otherwise. Invalid or empty slots earn nothing. The second return value
// counts the categories each player scored in, used for stats.
func Score(categories []string, answers map[int64][]string, valid map[int64][]bool) (map[int64]int, map[int64]int) {
	freq := make([]map[string]int, len(categories))
	for idx := range categories {
		freq[idx] = map[string]int{}
		for playerID, list := range answers {
			if !slotValid(valid[playerID], list, idx) {
				continue
			}
			freq[idx][normalizeAnswer(list[idx])]++
		}
	}

	points := make(map[int64]int, len(answers))
	validated := make(map[int64]int, len(answers))
	for playerID, list := range answers {
		points[playerID] = 0
		validated[playerID] = 0
		for idx := range categories {
			if !slotValid(valid[playerID], list, idx) {
				continue
			}

			if freq[idx][normalizeAnswer(list[idx])] == 1 {
				points[playerID] += PointsUnique
			} else {
				points[playerID] += PointsShared
			}
			validated[playerID]++
		}
	}

	return points, validated
}

func slotValid(record []bool, answers []string, idx int) bool {
	if idx >= len(answers) || idx >= len(record) {
		return false
	}
	return record[idx] && strings.TrimSpace(answers[idx]) != ""
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
