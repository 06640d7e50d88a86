package services

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"rentalsite/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// ScoredRoom là phòng kèm điểm phù hợp với câu tìm kiếm
type ScoredRoom struct {
	models.Room
	Score int `json:"score"`
}

const (
	nameScore        = 20
	provinceScore    = 13
	locationScore    = 5
	featureScore     = 4
	maxFeatureScore  = 12
	descriptionScore = 2
	similarityCutoff = 0.7
)

// normalizeInput bỏ dấu, chuyển về ASCII viết thường
func normalizeInput(input string) string {
	t := norm.NFD.String(strings.TrimSpace(input))
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(unidecode.Unidecode(b.String()))
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// calculateSimilarity trả về 1 - khoảng cách levenshtein / độ dài lớn nhất
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

func uniqueNormalized(rooms []models.Room, field func(models.Room) string) []string {
	seen := make(map[string]bool)
	list := make([]string, 0, len(rooms))
	for _, room := range rooms {
		v := normalizeInput(field(room))
		if v != "" && !seen[v] {
			seen[v] = true
			list = append(list, v)
		}
	}
	return list
}

type roomMatchers struct {
	province *closestmatch.ClosestMatch
	location *closestmatch.ClosestMatch
}

func scoreRoom(query string, room models.Room, m roomMatchers) int {
	score := 0

	name := normalizeInput(room.Name)
	if name != "" && (strings.Contains(name, query) || calculateSimilarity(query, name) > similarityCutoff) {
		score += nameScore
	}

	province := normalizeInput(room.Province)
	if province != "" && (strings.Contains(query, province) || m.province.Closest(query) == province && calculateSimilarity(query, province) > 0.5) {
		score += provinceScore
	}

	location := normalizeInput(room.Location)
	if location != "" && (strings.Contains(location, query) || m.location.Closest(query) == location && calculateSimilarity(query, location) > 0.5) {
		score += locationScore
	}

	features := 0
	for _, feature := range room.Features {
		title := normalizeInput(models.FeatureTitle(feature))
		if title == "" {
			continue
		}
		if strings.Contains(query, title) || strings.Contains(title, query) || calculateSimilarity(query, title) > similarityCutoff {
			features += featureScore
			if features >= maxFeatureScore {
				break
			}
		}
	}
	score += features

	if strings.Contains(normalizeInput(room.Description), query) {
		score += descriptionScore
	}
	return score
}

// SearchRooms chấm điểm mọi phòng theo câu tìm kiếm, trả về các phòng có điểm > 0
// theo điểm giảm dần (cùng điểm thì theo id)
func SearchRooms(rooms []models.Room, query string) []ScoredRoom {
	q := normalizeInput(query)
	if q == "" || len(rooms) == 0 {
		return []ScoredRoom{}
	}

	m := roomMatchers{
		province: createMatcher(uniqueNormalized(rooms, func(r models.Room) string { return r.Province })),
		location: createMatcher(uniqueNormalized(rooms, func(r models.Room) string { return r.Location })),
	}

	scoreCh := make(chan ScoredRoom, len(rooms))
	var wg sync.WaitGroup
	for _, room := range rooms {
		wg.Add(1)
		go func(room models.Room) {
			defer wg.Done()
			if score := scoreRoom(q, room, m); score > 0 {
				scoreCh <- ScoredRoom{Room: room, Score: score}
			}
		}(room)
	}
	wg.Wait()
	close(scoreCh)

	results := make([]ScoredRoom, 0, len(rooms))
	for scored := range scoreCh {
		results = append(results, scored)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	return results
}
