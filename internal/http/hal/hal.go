// Package hal renders resources as application/hal+json documents.
package hal

import "encoding/json"

// Link is a single HAL link object.
type Link struct {
	Href string `json:"href"`
	Name string `json:"name,omitempty"`
}

// Document wraps a payload with a _links section. The payload's own fields
// are serialized at the top level of the document.
type Document struct {
	payload any
	links   map[string]any
}

// NewDocument builds a document around payload. A nil payload produces a
// document with only links.
func NewDocument(payload any) *Document {
	return &Document{payload: payload, links: map[string]any{}}
}

// WithLink sets a single link for rel, replacing any previous value.
func (d *Document) WithLink(rel string, link Link) *Document {
	d.links[rel] = link
	return d
}

// WithLinks sets an array of links for rel.
func (d *Document) WithLinks(rel string, links []Link) *Document {
	d.links[rel] = links
	return d
}

// MarshalJSON flattens the payload's fields next to _links.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := map[string]json.RawMessage{}

	if d.payload != nil {
		raw, err := json.Marshal(d.payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
	}

	if len(d.links) > 0 {
		raw, err := json.Marshal(d.links)
		if err != nil {
			return nil, err
		}
		out["_links"] = raw
	}

	return json.Marshal(out)
}
