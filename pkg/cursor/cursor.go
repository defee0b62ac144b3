// Package cursor implements the opaque pagination token used by listing
// endpoints. A token identifies the last document of the previous page;
// the store resumes a stable-ordered query strictly after that document.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

type payload struct {
	LastDocID string `json:"lastDocId"`
}

// Encode wraps a document id into an opaque token. Callers must treat the
// result as a black box.
func Encode(lastDocID string) string {
	raw, _ := json.Marshal(payload{LastDocID: lastDocID})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode unwraps a token back into a document id. Malformed tokens of any
// kind decode to ("", false); callers treat that as "no cursor" and serve
// the first page.
func Decode(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return "", false
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", false
	}
	if p.LastDocID == "" {
		return "", false
	}

	return p.LastDocID, true
}
