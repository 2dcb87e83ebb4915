package state

// Post is the last known server-authoritative snapshot of document fields
// (title, content, status and so on). Stored with rendered-object fields
// collapsed to their raw scalar value.
type Post map[string]any

// RawValue collapses a rendered field variant to its raw scalar. A server
// document may present a field either as a plain scalar or as an object
// exposing a "raw" sub-field; the store always keeps the raw form.
func RawValue(v any) any {
	if m, ok := v.(map[string]any); ok {
		if raw, ok := m["raw"]; ok {
			return raw
		}
	}
	return v
}

// normalizePost collapses every rendered field of a post.
func normalizePost(p Post) Post {
	out := make(Post, len(p))
	for k, v := range p {
		out[k] = RawValue(v)
	}
	return out
}

// ReducePost maintains the current post snapshot: replaced wholesale on
// load/reset, merged on save.
func ReducePost(prev Post, action Action) Post {
	switch a := action.(type) {
	case SetupEditor:
		return normalizePost(a.Post)
	case ResetPost:
		return normalizePost(a.Post)
	case UpdatePost:
		if len(a.Edits) == 0 {
			return prev
		}
		next := make(Post, len(prev)+len(a.Edits))
		for k, v := range prev {
			next[k] = v
		}
		for k, v := range a.Edits {
			next[k] = RawValue(v)
		}
		return next
	}
	return prev
}
