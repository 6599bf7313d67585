package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PopularTimes maps lot name to LotSummary, remembering the order in which
// lots were first seen. The zero value is ready to use.
type PopularTimes struct {
	names []string
	lots  map[string]*LotSummary
}

// NewPopularTimes returns an empty PopularTimes.
func NewPopularTimes() *PopularTimes {
	return &PopularTimes{lots: make(map[string]*LotSummary)}
}

// Set stores the summary for name. A name that is already present keeps its
// original position and gets the new summary. Set reports whether an
// existing entry was replaced.
func (p *PopularTimes) Set(name string, s *LotSummary) bool {
	if p.lots == nil {
		p.lots = make(map[string]*LotSummary)
	}
	_, exists := p.lots[name]
	if !exists {
		p.names = append(p.names, name)
	}
	p.lots[name] = s
	return exists
}

// Get returns the summary stored for name.
func (p *PopularTimes) Get(name string) (*LotSummary, bool) {
	s, ok := p.lots[name]
	return s, ok
}

// Names returns lot names in discovery order.
func (p *PopularTimes) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

func (p *PopularTimes) Len() int { return len(p.names) }

// MarshalJSON writes a JSON object whose keys follow discovery order.
func (p *PopularTimes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(name); err != nil {
			return nil, fmt.Errorf("models: encode lot name %q: %w", name, err)
		}
		buf.WriteByte(':')
		if err := enc.Encode(p.lots[name]); err != nil {
			return nil, fmt.Errorf("models: encode lot %q: %w", name, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of lot summaries, keeping key order.
func (p *PopularTimes) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("models: read popular times: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("models: popular times must be a JSON object, got %v", tok)
	}

	out := NewPopularTimes()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("models: read lot name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("models: unexpected token %v", tok)
		}
		var s LotSummary
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("models: decode lot %q: %w", name, err)
		}
		out.Set(name, &s)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("models: read popular times: %w", err)
	}

	*p = *out
	return nil
}
