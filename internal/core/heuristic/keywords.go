package heuristic

// bucket maps a label to the substrings that vote for it. Slice order is the
// priority order wherever a rule takes the first match.
type bucket struct {
	label    string
	keywords []string
}

var ageClues = []string{
	"teen", "school", "college", "university",
	"job", "career", "wife", "husband",
	"kids", "children", "retirement",
}

var occupationBuckets = []bucket{
	{"student", []string{"school", "college", "university", "homework", "exam"}},
	{"tech", []string{"code", "programming", "software", "developer", "python"}},
	{"legal", []string{"lawyer", "legal", "court", "judge", "attorney", "adhiwakta", "nyay"}},
	{"medical", []string{"doctor", "hospital", "nurse", "patient", "medical"}},
	{"business", []string{"business", "startup", "entrepreneur", "company"}},
	{"creative", []string{"artist", "designer", "writer", "photograph"}},
}

var locationBuckets = []bucket{
	{"Delhi", []string{"delhi", "dilli"}},
	{"Mumbai", []string{"mumbai", "bombay"}},
	{"Bangalore", []string{"bangalore", "bengaluru"}},
	{"Lucknow", []string{"lucknow", "lko"}},
	{"Nagpur", []string{"nagpur"}},
	{"India", []string{"india", "bharat"}},
	{"USA", []string{"usa", "america", "new york", "california"}},
	{"UK", []string{"uk", "london", "britain"}},
}

var statusBuckets = []bucket{
	{"Single", []string{"single", "dating", "boyfriend", "girlfriend"}},
	{"Married", []string{"married", "wife", "husband", "spouse"}},
	{"Divorced", []string{"divorced", "ex-wife", "ex-husband"}},
}

var (
	techKeywords     = []string{"tech", "gadget", "smartphone", "app", "software"}
	creativeKeywords = []string{"create", "art", "write", "design", "build"}
	helpKeywords     = []string{"help", "advice", "suggestion"}
)

var (
	positiveWords   = []string{"great", "awesome", "love", "happy", "nice"}
	negativeWords   = []string{"hate", "terrible", "awful", "bad", "worst"}
	analyticalWords = []string{"think", "analysis", "logical", "reason"}
	socialWords     = []string{"friend", "community", "group", "together"}
)

var motivationBuckets = []bucket{
	{"Learning", []string{"learn", "study", "read", "knowledge"}},
	{"Helping", []string{"help", "advice", "suggest"}},
	{"Sharing", []string{"share", "tell", "story"}},
	{"Entertainment", []string{"fun", "game", "movie", "music"}},
}

var goalBuckets = []bucket{
	{"Career growth", []string{"promotion", "career", "job", "work"}},
	{"Education", []string{"degree", "study", "course", "learn"}},
	{"Relationships", []string{"friend", "partner", "relationship"}},
	{"Financial", []string{"money", "save", "invest", "rich"}},
}

var frustrationBuckets = []bucket{
	{"Technology", []string{"bug", "crash", "slow", "internet"}},
	{"Work", []string{"boss", "stress", "meeting", "hours"}},
	{"Society", []string{"government", "rules", "system", "corrupt"}},
	{"Personal", []string{"lonely", "tired", "sick", "angry"}},
}

var (
	memeKeywords      = []string{"meme", "lol", "haha", "funny"}
	politicalKeywords = []string{"politics", "government", "vote", "election"}
)
