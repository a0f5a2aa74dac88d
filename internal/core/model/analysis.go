package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Analysis is the JSON object requested from the language model.
type Analysis struct {
	Name            LenientString `json:"name"`
	Age             LenientString `json:"age"`
	Occupation      LenientString `json:"occupation"`
	Status          LenientString `json:"status"`
	Location        LenientString `json:"location"`
	Tube            LenientString `json:"tube"`
	Archetype       LenientString `json:"archetype"`
	PrimaryTraits   LenientString `json:"primary_traits"`
	SecondaryTraits LenientString `json:"secondary_traits"`
	Motivations     LenientList   `json:"motivations"`
	Behavior        LenientList   `json:"behavior"`
	Goals           LenientList   `json:"goals"`
	Frustrations    LenientList   `json:"frustrations"`
	Quote           LenientString `json:"quote"`
	Photo           LenientString `json:"photo"`
}

// Persona converts the reply into a defaulted record for username.
func (a Analysis) Persona(username string) Persona {
	return Persona{
		Username:        username,
		Name:            string(a.Name),
		Age:             string(a.Age),
		Occupation:      string(a.Occupation),
		Status:          string(a.Status),
		Location:        string(a.Location),
		Tube:            string(a.Tube),
		Archetype:       string(a.Archetype),
		PrimaryTraits:   string(a.PrimaryTraits),
		SecondaryTraits: string(a.SecondaryTraits),
		Motivations:     []string(a.Motivations),
		Behavior:        []string(a.Behavior),
		Goals:           []string(a.Goals),
		Frustrations:    []string(a.Frustrations),
		Quote:           string(a.Quote),
		Photo:           string(a.Photo),
	}.WithDefaults()
}

// LenientString accepts a JSON string, number, boolean or null.
type LenientString string

func (s *LenientString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	str, err := scalarString(v)
	if err != nil {
		return err
	}
	*s = LenientString(str)
	return nil
}

// LenientList accepts a JSON array of scalars, a single scalar or null.
type LenientList []string

func (l *LenientList) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*l = nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			str, err := scalarString(e)
			if err != nil {
				return err
			}
			out = append(out, str)
		}
		*l = out
	default:
		str, err := scalarString(t)
		if err != nil {
			return err
		}
		*l = []string{str}
	}
	return nil
}

func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("expected scalar, got %T", v)
	}
}
