package semantic

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ternarybob/sitescore/internal/models"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "Hello World", []string{"hello", "world"}},
		{"punctuation", "coffee, tea & water!", []string{"coffee", "tea", "water"}},
		{"apostrophe", "don't stop", []string{"dont", "stop"}},
		{"empty", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestContentTokensRemovesStopwords(t *testing.T) {
	got := ContentTokens("the coffee is on the table")
	want := []string{"coffee", "table"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ContentTokens = %v, want %v", got, want)
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"coffee", 2},
		{"analysis", 4},
		{"table", 2},
		{"the", 1},
		{"", 0},
	}

	for _, tt := range tests {
		if got := CountSyllables(tt.word); got != tt.want {
			t.Errorf("CountSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestKeywordDensity(t *testing.T) {
	// "coffee" appears 2 times in 10 words = 20%
	text := "coffee is great and coffee is better than tea today"
	got := KeywordDensity(text, "coffee")
	if got != 20 {
		t.Errorf("KeywordDensity = %v, want 20", got)
	}

	// Phrase matching
	phrase := KeywordDensity("best coffee beans for best coffee", "best coffee")
	if phrase <= 0 {
		t.Errorf("phrase density = %v, want > 0", phrase)
	}

	if KeywordDensity("", "coffee") != 0 {
		t.Error("empty text should have zero density")
	}
}

func TestRelevanceFromDensity(t *testing.T) {
	tests := []struct {
		density float64
		want    float64
	}{
		{2.0, 100},
		{1.0, 100},
		{3.0, 100},
		{0.7, 60},
		{4.5, 60},
		{0.1, 30},
		{8.0, 30},
		{0, 0},
	}

	for _, tt := range tests {
		if got := RelevanceFromDensity(tt.density); got != tt.want {
			t.Errorf("RelevanceFromDensity(%v) = %v, want %v", tt.density, got, tt.want)
		}
	}
}

func TestFleschReadingEase(t *testing.T) {
	simple := FleschReadingEase("The cat sat. The dog ran. It was fun.")
	complex := FleschReadingEase("Comprehensive organizational methodologies necessitate interdisciplinary collaboration frameworks incorporating multidimensional analytical perspectives.")

	if simple <= complex {
		t.Errorf("simple text (%v) should score higher than complex text (%v)", simple, complex)
	}
	if simple < 0 || simple > 100 || complex < 0 || complex > 100 {
		t.Errorf("scores out of range: %v, %v", simple, complex)
	}
	if FleschReadingEase("") != 0 {
		t.Error("empty text should score 0")
	}
}

func TestSentiment(t *testing.T) {
	positive := Sentiment("This is a great product with excellent quality and reliable results")
	negative := Sentiment("A bad experience with poor quality and broken features, the worst")
	neutral := Sentiment("The page describes coffee brewing methods")

	if positive <= 0 {
		t.Errorf("positive text scored %v", positive)
	}
	if negative >= 0 {
		t.Errorf("negative text scored %v", negative)
	}
	if neutral != 0 {
		t.Errorf("neutral text scored %v, want 0", neutral)
	}
}

func TestTopicCoverage(t *testing.T) {
	text := "We roast coffee beans and teach brewing techniques for espresso"
	got := TopicCoverage(text, []string{"coffee", "espresso", "tea", "matcha"})
	if got != 50 {
		t.Errorf("TopicCoverage = %v, want 50", got)
	}
	if TopicCoverage(text, nil) != 0 {
		t.Error("no keywords should yield 0")
	}
}

func TestTopKeywordsDeterministic(t *testing.T) {
	doc := "coffee brewing guide covering coffee grinders, water temperature, and brewing ratios for coffee"
	corpus := []string{
		"tea brewing guide with water temperature advice",
		"espresso machines and coffee grinders reviewed",
	}

	first := TopKeywords(doc, corpus, 5)
	for i := 0; i < 10; i++ {
		if got := TopKeywords(doc, corpus, 5); !reflect.DeepEqual(got, first) {
			t.Fatalf("TopKeywords not deterministic: %v vs %v", got, first)
		}
	}

	if len(first) == 0 || first[0] != "coffee" {
		t.Errorf("expected 'coffee' as top keyword, got %v", first)
	}
}

func TestComparePagesIdentical(t *testing.T) {
	page := &models.PageContent{
		Text: "Coffee brewing takes practice. Good beans and clean water matter most for flavor.",
		Headings: []models.Heading{
			{Level: 1, Text: "Coffee"},
			{Level: 2, Text: "Brewing"},
		},
		WordCount: 13,
	}

	sim := ComparePages(page, page)
	if sim.Lexical != 100 || sim.Semantic != 100 || sim.Structural != 100 {
		t.Errorf("identical pages should score 100 on lexical/semantic/structural: %+v", sim)
	}
	if sim.Overall < 99 {
		t.Errorf("identical pages overall = %v, want ~100", sim.Overall)
	}
}

func TestComparePagesDisjoint(t *testing.T) {
	a := &models.PageContent{
		Text:      "Coffee espresso roasting grinders brewing caffeine arabica robusta",
		Headings:  []models.Heading{{Level: 1, Text: "Coffee"}},
		WordCount: 8,
	}
	b := &models.PageContent{
		Text:      "Quantum physics entanglement particles wavefunction superposition measurement decoherence",
		Headings:  []models.Heading{{Level: 3, Text: "Physics"}, {Level: 3, Text: "More"}},
		WordCount: 8,
	}

	sim := ComparePages(a, b)
	if sim.Lexical != 0 || sim.Semantic != 0 || sim.Topical != 0 {
		t.Errorf("disjoint pages should score 0 on text dimensions: %+v", sim)
	}
	if sim.Overall > 20 {
		t.Errorf("disjoint pages overall = %v, want low", sim.Overall)
	}
}

func TestKeywordOpportunities(t *testing.T) {
	target := "our coffee shop sells coffee"
	competitors := []string{
		strings.Repeat("espresso ", 6) + "machines and espresso accessories",
		strings.Repeat("espresso ", 4) + "bar equipment",
	}

	opps := KeywordOpportunities(target, competitors, nil, 10)
	if len(opps) == 0 {
		t.Fatal("expected opportunities")
	}

	found := false
	multiWord := false
	for _, o := range opps {
		if o.Keyword == "espresso" {
			found = true
			if o.TargetUsage != 0 {
				t.Errorf("espresso target usage = %v, want 0", o.TargetUsage)
			}
			if o.Opportunity != 100 {
				t.Errorf("espresso opportunity = %v, want 100 (unused by target)", o.Opportunity)
			}
			if o.Priority <= 0 {
				t.Errorf("espresso priority = %v, want > 0", o.Priority)
			}
			if o.Topic != "espresso" {
				t.Errorf("espresso topic = %q, want espresso", o.Topic)
			}
		}
		if len(strings.Fields(o.Keyword)) > 1 {
			multiWord = true
		}
	}
	if !found {
		t.Errorf("expected 'espresso' in opportunities: %+v", opps)
	}
	if !multiWord {
		t.Errorf("expected multi-word phrases in opportunities: %+v", opps)
	}

	for i := 1; i < len(opps); i++ {
		if opps[i].Priority > opps[i-1].Priority {
			t.Errorf("opportunities not sorted by priority descending at %d", i)
		}
	}

	if KeywordOpportunities(target, nil, nil, 10) != nil {
		t.Error("no competitors should yield nil")
	}
}

func TestKeywordOpportunitiesLongTailPhrases(t *testing.T) {
	competitors := []string{strings.Repeat("best espresso machine for home baristas ", 3)}

	opps := KeywordOpportunities("our espresso page", competitors, nil, 10)
	if len(opps) == 0 {
		t.Fatal("expected opportunities")
	}

	var longTail *models.KeywordOpportunity
	for i := range opps {
		if opps[i].Keyword == "best espresso machine" {
			longTail = &opps[i]
		}
	}
	if longTail == nil {
		t.Fatalf("expected 'best espresso machine' phrase in %+v", opps)
	}
	if longTail.Difficulty != models.LevelLow {
		t.Errorf("lightly-used three-word phrase difficulty = %v, want low", longTail.Difficulty)
	}
	if longTail.Topic != "recommendations" {
		t.Errorf("'best ...' topic = %q, want recommendations", longTail.Topic)
	}

	buckets := BucketOpportunities(opps)
	if len(buckets.LongTail) == 0 {
		t.Fatal("expected a long-tail bucket entry")
	}
	for _, o := range buckets.LongTail {
		if len(strings.Fields(o.Keyword)) < 3 {
			t.Errorf("long-tail keyword %q has fewer than 3 words", o.Keyword)
		}
		if o.Difficulty != models.LevelLow {
			t.Errorf("long-tail keyword %q difficulty = %v, want low", o.Keyword, o.Difficulty)
		}
	}
}

func TestKeywordOpportunitySeeds(t *testing.T) {
	competitors := []string{"our coffee for beginners guide covers brewing"}

	opps := KeywordOpportunities("", competitors, []string{"coffee for beginners"}, 0)

	found := false
	for _, o := range opps {
		if o.Keyword == "coffee for beginners" {
			found = true
			if o.Difficulty != models.LevelLow {
				t.Errorf("seed difficulty = %v, want low", o.Difficulty)
			}
			if o.Opportunity != 100 {
				t.Errorf("seed opportunity = %v, want 100", o.Opportunity)
			}
		}
	}
	if !found {
		t.Errorf("seed phrase spanning a stopword must still be scored: %+v", opps)
	}
}

func TestClassifyDifficulty(t *testing.T) {
	tests := []struct {
		keyword string
		usage   float64
		want    models.Level
	}{
		{"espresso", 25, models.LevelHigh},
		{"espresso", 20, models.LevelHigh},
		{"espresso", 15, models.LevelMedium},
		{"espresso", 1, models.LevelMedium},
		{"espresso machine", 3, models.LevelMedium},
		{"best espresso machine", 3, models.LevelLow},
		{"best espresso machine", 6, models.LevelMedium},
	}

	for _, tt := range tests {
		if got := classifyDifficulty(tt.keyword, tt.usage); got != tt.want {
			t.Errorf("classifyDifficulty(%q, %v) = %v, want %v", tt.keyword, tt.usage, got, tt.want)
		}
	}
}

func TestPhraseFrequencies(t *testing.T) {
	counts := PhraseFrequencies("best espresso machine for home baristas")

	if counts["best espresso machine"] != 1 {
		t.Errorf("'best espresso machine' count = %d, want 1", counts["best espresso machine"])
	}
	if counts["home baristas"] != 1 {
		t.Errorf("'home baristas' count = %d, want 1", counts["home baristas"])
	}
	if counts["espresso"] != 1 {
		t.Errorf("'espresso' count = %d, want 1", counts["espresso"])
	}
	for phrase := range counts {
		if strings.Contains(" "+phrase+" ", " for ") {
			t.Errorf("phrase %q crosses a stopword boundary", phrase)
		}
	}
}

func TestTopicGrouping(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"espresso pricing", "pricing"},
		{"machine cost", "pricing"},
		{"grinder reviews", "reviews"},
		{"brewing guide", "tutorials"},
		{"best espresso machine", "recommendations"},
		{"espresso machines", "espresso"},
	}

	for _, tt := range tests {
		if got := topicFor(tt.keyword); got != tt.want {
			t.Errorf("topicFor(%q) = %q, want %q", tt.keyword, got, tt.want)
		}
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"brewing", "brew"},
		{"roasted", "roast"},
		{"grinders", "grind"},
		{"berries", "berry"},
		{"coffee", "coffee"},
		{"ing", "ing"},
	}

	for _, tt := range tests {
		if got := Stem(tt.word); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestSentimentLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.5, "positive"},
		{0.1, "positive"},
		{0.05, "neutral"},
		{0, "neutral"},
		{-0.05, "neutral"},
		{-0.1, "negative"},
		{-0.8, "negative"},
	}

	for _, tt := range tests {
		if got := SentimentLabel(tt.score); got != tt.want {
			t.Errorf("SentimentLabel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestExtractTopicsCapped(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("word")
		sb.WriteByte(byte('a' + i%26))
		sb.WriteByte(byte('a' + i/26))
		sb.WriteString(" ")
	}

	topics := ExtractTopics(sb.String())
	if len(topics) > 20 {
		t.Errorf("topics = %d entries, want at most 20", len(topics))
	}
	if len(topics) == 0 {
		t.Error("expected topics")
	}
}

func TestNamedEntities(t *testing.T) {
	text := "We compared Acme Corp against Blue Bottle Coffee. John Smith reviewed both near Silicon Valley. The results were clear."
	entities := NamedEntities(text)
	if len(entities) == 0 {
		t.Fatal("expected entities")
	}

	byText := make(map[string]models.NamedEntity, len(entities))
	for _, e := range entities {
		byText[e.Text] = e
		if e.Confidence < 0.7 || e.Confidence > 0.8 {
			t.Errorf("entity %q confidence %v outside [0.7, 0.8]", e.Text, e.Confidence)
		}
	}

	if e, ok := byText["Acme Corp"]; !ok {
		t.Errorf("expected Acme Corp in %+v", entities)
	} else if e.Kind != "organization" {
		t.Errorf("Acme Corp kind = %q, want organization", e.Kind)
	}

	if e, ok := byText["John Smith"]; !ok {
		t.Errorf("expected John Smith in %+v", entities)
	} else if e.Kind != "person" {
		t.Errorf("John Smith kind = %q, want person", e.Kind)
	}

	if e, ok := byText["Silicon Valley"]; !ok {
		t.Errorf("expected Silicon Valley in %+v", entities)
	} else if e.Kind != "place" {
		t.Errorf("Silicon Valley kind = %q, want place", e.Kind)
	}

	if _, ok := byText["The"]; ok {
		t.Error("lone sentence-initial word must not be an entity")
	}
}

func TestBucketOpportunities(t *testing.T) {
	opps := []models.KeywordOpportunity{
		{Keyword: "best burr grinder", Topic: "recommendations", Priority: 85, Difficulty: models.LevelLow},
		{Keyword: "espresso", Topic: "espresso", Priority: 82, Difficulty: models.LevelHigh},
		{Keyword: "grinder reviews", Topic: "reviews", Priority: 75, Difficulty: models.LevelMedium},
		{Keyword: "espresso machines", Topic: "espresso", Priority: 55, Difficulty: models.LevelMedium},
	}

	buckets := BucketOpportunities(opps)

	// High bucket keeps only feasible high-priority keywords: "espresso"
	// clears the priority bar but its competition is too heavy.
	if len(buckets.HighPriority) != 2 {
		t.Fatalf("high bucket = %+v", buckets.HighPriority)
	}
	if buckets.HighPriority[0].Keyword != "best burr grinder" || buckets.HighPriority[1].Keyword != "grinder reviews" {
		t.Errorf("high bucket order = %+v", buckets.HighPriority)
	}

	if len(buckets.LongTail) != 1 || buckets.LongTail[0].Keyword != "best burr grinder" {
		t.Errorf("long-tail bucket = %+v", buckets.LongTail)
	}

	if len(buckets.ContentGaps) != 3 {
		t.Fatalf("content-gap bucket = %+v", buckets.ContentGaps)
	}
	gotTopics := []string{buckets.ContentGaps[0].Topic, buckets.ContentGaps[1].Topic, buckets.ContentGaps[2].Topic}
	wantTopics := []string{"recommendations", "espresso", "reviews"}
	if !reflect.DeepEqual(gotTopics, wantTopics) {
		t.Errorf("content-gap topics = %v, want %v", gotTopics, wantTopics)
	}

	espressoGap := buckets.ContentGaps[1]
	if !reflect.DeepEqual(espressoGap.Keywords, []string{"espresso", "espresso machines"}) {
		t.Errorf("espresso topic keywords = %v", espressoGap.Keywords)
	}
	if espressoGap.Priority != 82 {
		t.Errorf("espresso topic priority = %v, want the max member priority 82", espressoGap.Priority)
	}
	if espressoGap.Action == "" {
		t.Error("content-gap actions must carry a recommended action")
	}
}

func TestTFIDFCosine(t *testing.T) {
	same := []string{"coffee", "brewing", "coffee"}
	if got := TFIDFCosine(same, same); got < 0.999 || got > 1.001 {
		t.Errorf("identical documents = %v, want ~1", got)
	}

	if got := TFIDFCosine([]string{"coffee", "espresso"}, []string{"quantum", "physics"}); got != 0 {
		t.Errorf("disjoint documents = %v, want 0", got)
	}

	partial := TFIDFCosine([]string{"coffee", "espresso"}, []string{"coffee", "quantum"})
	if partial <= 0 || partial >= 1 {
		t.Errorf("partially overlapping documents = %v, want in (0, 1)", partial)
	}

	if TFIDFCosine(nil, []string{"coffee"}) != 0 {
		t.Error("empty document should score 0")
	}
}

func TestSentimentComparative(t *testing.T) {
	if SentimentComparative("") != 0 {
		t.Error("empty text should score 0")
	}

	short := SentimentComparative("great coffee")
	if short != 0.5 {
		t.Errorf("one positive hit in two tokens = %v, want 0.5", short)
	}

	long := SentimentComparative("great coffee from the local roaster in town")
	if long <= 0 || long >= short {
		t.Errorf("same hit in a longer document = %v, want in (0, %v)", long, short)
	}

	if SentimentComparative("bad coffee") >= 0 {
		t.Error("negative text must score below zero")
	}
}
