package model

const (
	Unknown = "Unknown"
	NoData  = "No data available"
	NoQuote = "No representative quote available"
)

// Persona is the inferred profile for a Reddit user. The JSON field names are
// the wire format served by the API and persisted by the store.
type Persona struct {
	ID              string   `json:"id,omitempty"`
	Username        string   `json:"username"`
	Name            string   `json:"name"`
	Age             string   `json:"age"`
	Occupation      string   `json:"occupation"`
	Status          string   `json:"status"`
	Location        string   `json:"location"`
	Tube            string   `json:"tube"`
	Archetype       string   `json:"archetype"`
	PrimaryTraits   string   `json:"primary_traits"`
	SecondaryTraits string   `json:"secondary_traits"`
	Motivations     []string `json:"motivations"`
	Behavior        []string `json:"behavior"`
	Goals           []string `json:"goals"`
	Frustrations    []string `json:"frustrations"`
	Quote           string   `json:"quote"`
	Photo           string   `json:"photo,omitempty"`
}

// Empty is the record returned when a user has no posts or comments.
func Empty(username string) Persona {
	return Persona{Username: username, Name: username}.WithDefaults()
}

// WithDefaults returns a copy with every blank scalar set to Unknown, every
// empty list set to a single NoData entry and a blank quote set to NoQuote.
// List slices are copied so the result shares no backing arrays with p.
func (p Persona) WithDefaults() Persona {
	if p.Name == "" {
		p.Name = p.Username
	}
	for _, f := range []*string{
		&p.Name, &p.Age, &p.Occupation, &p.Status, &p.Location,
		&p.Tube, &p.Archetype, &p.PrimaryTraits, &p.SecondaryTraits,
	} {
		if *f == "" {
			*f = Unknown
		}
	}

	p.Motivations = listOrNoData(p.Motivations)
	p.Behavior = listOrNoData(p.Behavior)
	p.Goals = listOrNoData(p.Goals)
	p.Frustrations = listOrNoData(p.Frustrations)

	if p.Quote == "" {
		p.Quote = NoQuote
	}
	return p
}

func listOrNoData(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it != "" {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return []string{NoData}
	}
	return out
}
