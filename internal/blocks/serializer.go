package blocks

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Serialized document grammar, one delimiter per line:
//
//	<!-- wp:core/paragraph {"text":"hello"} /-->
//	<!-- wp:core/quote -->
//	<!-- wp:core/paragraph {"text":"nested"} /-->
//	<!-- /wp:core/quote -->
//
// A block without inner blocks serializes self-closing; attributes are a
// JSON object and may be omitted when empty. Text outside delimiters is
// ignored by the parser.

// Serialize renders a block list to its canonical content string.
func Serialize(list []Block) string {
	var b strings.Builder
	for i, blk := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		writeBlock(&b, blk)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, blk Block) {
	attrs := ""
	if len(blk.Attributes) > 0 {
		// json.Marshal sorts map keys, so output is deterministic
		data, err := json.Marshal(blk.Attributes)
		if err == nil {
			attrs = " " + string(data)
		}
	}
	if len(blk.InnerBlocks) == 0 {
		fmt.Fprintf(b, "<!-- wp:%s%s /-->", blk.Name, attrs)
		return
	}
	fmt.Fprintf(b, "<!-- wp:%s%s -->\n", blk.Name, attrs)
	for _, inner := range blk.InnerBlocks {
		writeBlock(b, inner)
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "<!-- /wp:%s -->", blk.Name)
}

type delimiter struct {
	name        string
	attrs       Attributes
	closing     bool // <!-- /wp:name -->
	selfClosing bool // <!-- wp:name ... /-->
}

// Parse rebuilds a block list from a content string. Every parsed block is
// assigned a fresh UID: content carries no instance identity. Malformed
// delimiters and freeform text are skipped rather than failing the whole
// document.
func Parse(content string) []Block {
	delims := scanDelimiters(content)
	list, _ := buildBlocks(delims, 0, "")
	return list
}

// buildBlocks consumes delimiters from pos until it sees the closer for
// parent (or runs out). Returns the blocks built and the next position.
func buildBlocks(delims []delimiter, pos int, parent string) ([]Block, int) {
	var out []Block
	for pos < len(delims) {
		d := delims[pos]
		if d.closing {
			if d.name == parent {
				return out, pos + 1
			}
			// stray closer; skip
			pos++
			continue
		}
		blk := Block{UID: NewUID(), Name: d.name, Attributes: d.attrs}
		pos++
		if !d.selfClosing {
			blk.InnerBlocks, pos = buildBlocks(delims, pos, d.name)
		}
		out = append(out, blk)
	}
	return out, pos
}

func scanDelimiters(content string) []delimiter {
	var out []delimiter
	rest := content
	for {
		start := strings.Index(rest, "<!--")
		if start < 0 {
			return out
		}
		rest = rest[start+len("<!--"):]
		end := strings.Index(rest, "-->")
		if end < 0 {
			return out
		}
		body := strings.TrimSpace(rest[:end])
		rest = rest[end+len("-->"):]
		d, ok := parseDelimiterBody(body)
		if ok {
			out = append(out, d)
		}
	}
}

func parseDelimiterBody(body string) (delimiter, bool) {
	var d delimiter
	if strings.HasPrefix(body, "/wp:") {
		d.closing = true
		d.name = strings.TrimSpace(strings.TrimPrefix(body, "/wp:"))
		return d, d.name != ""
	}
	if !strings.HasPrefix(body, "wp:") {
		return d, false
	}
	body = strings.TrimPrefix(body, "wp:")
	if strings.HasSuffix(body, "/") {
		d.selfClosing = true
		body = strings.TrimSpace(strings.TrimSuffix(body, "/"))
	}
	name, attrText, _ := strings.Cut(body, " ")
	d.name = strings.TrimSpace(name)
	if d.name == "" {
		return d, false
	}
	attrText = strings.TrimSpace(attrText)
	if attrText != "" {
		var attrs Attributes
		if err := json.Unmarshal([]byte(attrText), &attrs); err != nil {
			return d, false
		}
		d.attrs = attrs
	}
	return d, true
}
