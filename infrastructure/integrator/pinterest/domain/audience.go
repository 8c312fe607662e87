package pinterestdomain

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// AudienceSegment é um item de interesse ou demografia. O Pinterest devolve ratio (0..1)
// em algumas versões e percentage (0..100) em outras.
type AudienceSegment struct {
	Name       string
	Percentage float64
}

func (s *AudienceSegment) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name       string   `json:"name"`
		Key        string   `json:"key"`
		Label      string   `json:"label"`
		Percentage *float64 `json:"percentage"`
		Ratio      *float64 `json:"ratio"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Name = firstNonEmpty(raw.Name, raw.Label, raw.Key)

	switch {
	case raw.Percentage != nil:
		s.Percentage = *raw.Percentage
	case raw.Ratio != nil:
		s.Percentage = *raw.Ratio * 100
	}

	return nil
}

type Demographics struct {
	AgeGroups []AudienceSegment `json:"age_groups"`
	Genders   []AudienceSegment `json:"genders"`
	Locations []AudienceSegment `json:"locations"`
	Devices   []AudienceSegment `json:"devices"`
}

// AudiencePayload é a resposta de /ad_accounts/{id}/audience_insights/interests
type AudiencePayload struct {
	Interests    []AudienceSegment
	Demographics *Demographics
}

func (p *AudiencePayload) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &p.Interests)
	}

	var raw struct {
		Interests    []AudienceSegment   `json:"interests"`
		Categories   []AudienceSegment   `json:"categories"`
		Demographics *Demographics       `json:"demographics"`
		Data         jsoniter.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("invalid audience payload: %w", err)
	}

	// Algumas respostas vêm envelopadas em {data: ...}
	if len(raw.Data) > 0 && !bytes.Equal(raw.Data, []byte("null")) {
		return p.UnmarshalJSON(raw.Data)
	}

	p.Interests = raw.Interests
	if len(p.Interests) == 0 {
		p.Interests = raw.Categories
	}
	p.Demographics = raw.Demographics

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
