package notes

import (
	"encoding/json"
	"fmt"
	"maps"

	"codenote-backend/internal/learning"
	"codenote-backend/internal/shared/errs"
)

// Document is the stored body of a note. Schema fields are typed; every
// other top-level field is kept verbatim in Extra.
type Document struct {
	Title    string
	FileName string
	learning.Content
	Extra map[string]json.RawMessage
}

// Keys owned by the store or the path; never persisted inside a body.
var reservedKeys = []string{"id", "userId", "createdAt", "updatedAt"}

func (d *Document) schemaFields() map[string]any {
	return map[string]any{
		"title":             &d.Title,
		"fileName":          &d.FileName,
		"schemaVersion":     &d.SchemaVersion,
		"fileOverview":      &d.FileOverview,
		"learningPoints":    &d.LearningPoints,
		"techStack":         &d.TechStack,
		"codeExplanation":   &d.CodeExplanation,
		"keyTerms":          &d.KeyTerms,
		"sectionSummary":    &d.SectionSummary,
		"codeOptimizations": &d.CodeOptimizations,
		"quizzes":           &d.Quizzes,
	}
}

// DecodeDocument parses a client body. Reserved keys are dropped, schema
// fields must carry the right JSON type, the rest lands in Extra.
func DecodeDocument(data []byte) (Document, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return Document{}, err
	}
	return documentFromFields(raw)
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, errs.Validation("request body must be a JSON object")
	}
	return raw, nil
}

func documentFromFields(raw map[string]json.RawMessage) (Document, error) {
	var d Document
	targets := d.schemaFields()
	for key, value := range raw {
		if isReserved(key) {
			continue
		}
		target, ok := targets[key]
		if !ok {
			if d.Extra == nil {
				d.Extra = make(map[string]json.RawMessage)
			}
			d.Extra[key] = value
			continue
		}
		if err := json.Unmarshal(value, target); err != nil {
			return Document{}, errs.Validation(fmt.Sprintf("%s has an invalid value", key))
		}
	}
	return d, nil
}

func isReserved(key string) bool {
	for _, r := range reservedKeys {
		if r == key {
			return true
		}
	}
	return false
}

// rawFields renders the document as a top-level field map.
func (d Document) rawFields() (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(d.Extra)+8)
	maps.Copy(out, d.Extra)

	content, err := json.Marshal(d.Content)
	if err != nil {
		return nil, err
	}
	var schema map[string]json.RawMessage
	if err := json.Unmarshal(content, &schema); err != nil {
		return nil, err
	}
	maps.Copy(out, schema)

	title, _ := json.Marshal(d.Title)
	fileName, _ := json.Marshal(d.FileName)
	out["title"] = title
	out["fileName"] = fileName
	return out, nil
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	fields, err := d.rawFields()
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := DecodeDocument(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// Patch is a validated top-level merge: present keys replace stored ones.
type Patch map[string]json.RawMessage

// DecodePatch validates an update body the same way DecodeDocument does and
// keeps only the keys the client sent, minus reserved ones.
func DecodePatch(data []byte) (Patch, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	for _, key := range reservedKeys {
		delete(raw, key)
	}
	if _, err := documentFromFields(raw); err != nil {
		return nil, err
	}
	return Patch(raw), nil
}

// Apply merges p into d and returns the result.
func (p Patch) Apply(d Document) (Document, error) {
	fields, err := d.rawFields()
	if err != nil {
		return Document{}, err
	}
	maps.Copy(fields, p)
	return documentFromFields(fields)
}
