package hal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentLinksOnly(t *testing.T) {
	doc := NewDocument(nil).WithLink("self", Link{Href: "/"})

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.JSONEq(t, `{"_links":{"self":{"href":"/"}}}`, string(raw))
}

func TestDocumentFlattensPayload(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	doc := NewDocument(payload{Name: "alice"}).
		WithLink("self", Link{Href: "/users/1"})

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"alice","_links":{"self":{"href":"/users/1"}}}`, string(raw))
}

func TestDocumentLinkArray(t *testing.T) {
	doc := NewDocument(nil).WithLinks("related", []Link{
		{Href: "/a", Name: "a"},
		{Href: "/b", Name: "b"},
	})

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.JSONEq(t, `{"_links":{"related":[{"href":"/a","name":"a"},{"href":"/b","name":"b"}]}}`, string(raw))
}
