package ai

import (
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"unicode"
)

// PreferenceDimension is the length of vectors produced by the local encoders.
const PreferenceDimension = 128

// Categories is the fixed travel lexicon, in the order used for vector slots.
var Categories = []string{
	"adventure",
	"cultural",
	"relaxation",
	"urban",
	"nature",
	"food",
	"budget",
	"luxury",
}

// CategoryKeywords lists the cue phrases of each category.
var CategoryKeywords = map[string][]string{
	"adventure":  {"hiking", "climbing", "camping", "rafting", "skydiving", "trekking", "mountain"},
	"cultural":   {"museums", "history", "art", "architecture", "local customs", "heritage"},
	"relaxation": {"beach", "spa", "resort", "meditation", "yoga"},
	"urban":      {"shopping", "nightlife", "restaurants", "city tours"},
	"nature":     {"wildlife", "national parks", "photography", "bird watching", "forest", "lake"},
	"food":       {"culinary tours", "wine tasting", "cooking classes", "street food", "cuisine"},
	"budget":     {"hostels", "backpacking", "public transport", "cheap"},
	"luxury":     {"five-star hotels", "private tours", "fine dining"},
}

// placeTypes maps provider place types onto categories.
var placeTypes = map[string]string{
	"museum":             "cultural",
	"art_gallery":        "cultural",
	"church":             "cultural",
	"place_of_worship":   "cultural",
	"library":            "cultural",
	"park":               "nature",
	"natural_feature":    "nature",
	"zoo":                "nature",
	"aquarium":           "nature",
	"campground":         "adventure",
	"amusement_park":     "adventure",
	"spa":                "relaxation",
	"beauty_salon":       "relaxation",
	"shopping_mall":      "urban",
	"night_club":         "urban",
	"bar":                "urban",
	"tourist_attraction": "urban",
	"restaurant":         "food",
	"cafe":               "food",
	"bakery":             "food",
	"lodging":            "luxury",
	"transit_station":    "budget",
}

func categoryIndex(name string) int {
	for i, c := range Categories {
		if c == name {
			return i
		}
	}
	return -1
}

func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return ' '
	}, s)
	return " " + strings.Join(strings.Fields(s), " ") + " "
}

// stem strips a plural/gerund suffix so "hike", "hikes" and "hiking" meet.
func stem(w string) string {
	for _, suf := range []string{"ing", "es", "s", "e"} {
		if len(w) > len(suf)+2 && strings.HasSuffix(w, suf) {
			return strings.TrimSuffix(w, suf)
		}
	}
	return w
}

func stemPhrase(p string) string {
	words := strings.Fields(p)
	for i, w := range words {
		words[i] = stem(w)
	}
	return " " + strings.Join(words, " ") + " "
}

// categoryHits counts lexicon matches per category in text.
func categoryHits(text string) map[string]float64 {
	stemmed := stemPhrase(strings.TrimSpace(normalizeText(text)))
	hits := make(map[string]float64)
	for _, cat := range Categories {
		if strings.Contains(stemmed, stemPhrase(cat)) {
			hits[cat]++
		}
		for _, kw := range CategoryKeywords[cat] {
			if strings.Contains(stemmed, stemPhrase(kw)) {
				hits[cat]++
			}
		}
	}
	return hits
}

// MatchCategories maps free-form terms (place types, tags, names) to the
// categories they evoke. The result is ordered by lexicon order, without repeats.
func MatchCategories(terms ...string) []string {
	seen := make(map[string]bool)
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if c, ok := placeTypes[t]; ok {
			seen[c] = true
		}
		for c := range categoryHits(strings.ReplaceAll(t, "_", " ")) {
			seen[c] = true
		}
	}
	var out []string
	for _, c := range Categories {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// scoresFromHits normalises hit counts into descending category scores.
func scoresFromHits(hits map[string]float64) []CategoryScore {
	var total float64
	for _, h := range hits {
		total += h
	}
	if total == 0 {
		return nil
	}
	out := make([]CategoryScore, 0, len(hits))
	for _, cat := range Categories {
		if h := hits[cat]; h > 0 {
			out = append(out, CategoryScore{Category: cat, Score: h / total})
		}
	}
	sortScores(out)
	return out
}

func sortScores(s []CategoryScore) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Score > s[j].Score })
}

func hashSlot(token string, dim int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return len(Categories) + int(h.Sum32()%uint32(dim-len(Categories)))
}

// EncodePreferences builds a 128-entry unit vector from preference tags.
// The first len(Categories) slots carry category affinity; the rest are
// hashed tag buckets. An empty tag list yields the zero vector.
func EncodePreferences(tags []string) []float64 {
	vec := make([]float64, PreferenceDimension)
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if i := categoryIndex(tag); i >= 0 {
			vec[i] += 1
		} else {
			for _, c := range MatchCategories(tag) {
				vec[categoryIndex(c)] += 0.5
			}
		}
		vec[hashSlot(tag, PreferenceDimension)] += 1
	}
	return unit(vec)
}

// CategoryWeights reads the category slots of a vector produced by this
// package's encoders. Vectors of other shapes give nil.
func CategoryWeights(vec []float64) map[string]float64 {
	if len(vec) != PreferenceDimension {
		return nil
	}
	out := make(map[string]float64, len(Categories))
	for i, c := range Categories {
		if vec[i] > 0 {
			out[c] = vec[i]
		}
	}
	return out
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when
// either is a zero vector or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func unit(vec []float64) []float64 {
	var n float64
	for _, v := range vec {
		n += v * v
	}
	if n == 0 {
		return vec
	}
	n = math.Sqrt(n)
	for i := range vec {
		vec[i] /= n
	}
	return vec
}
