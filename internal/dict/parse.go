package dict

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Structural tags understood in sense sequences.
const (
	tagSequence  = "pseq"
	tagSense     = "sense"
	tagBaseSense = "bs"
	tagText      = "text"
)

// Values splits a response body into its top-level values. Anything that
// is not a JSON array yields nil.
func Values(data []byte) []gjson.Result {
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil
	}
	return root.Array()
}

// ParseEntry converts a generic entry value. It reports false when the
// value has no string headword; such entries are not rendered at all.
func ParseEntry(v gjson.Result) (Entry, bool) {
	hw := v.Get("hwi.hw")
	if hw.Type != gjson.String {
		return Entry{}, false
	}

	e := Entry{
		ID:        stringOf(v.Get("meta.id")),
		Headword:  strings.ReplaceAll(hw.Str, "*", Bullet),
		Offensive: v.Get("meta.offensive").Bool(),
	}
	e.FunctionalLabel = stringOf(v.Get("fl"))

	if defs := v.Get("def"); defs.IsArray() {
		for _, d := range defs.Array() {
			if def, ok := ParseDefinition(d); ok {
				e.Definitions = append(e.Definitions, def)
			}
		}
	}

	if sd := v.Get("shortdef"); sd.IsArray() {
		for _, s := range sd.Array() {
			if s.Type == gjson.String {
				e.ShortDefs = append(e.ShortDefs, s.Str)
			}
		}
	}

	return e, true
}

// ParseDefinition converts one element of def. Non-objects are dropped.
func ParseDefinition(v gjson.Result) (Definition, bool) {
	if !v.IsObject() {
		return Definition{}, false
	}
	return Definition{
		VerbDivider: stringOf(v.Get("vd")),
		Senses:      ParseTree(v.Get("sseq")),
	}, true
}

// ParseTree converts a sense sequence node.
//
// An array whose first element is a string is a tagged node: "pseq" is
// transparent and yields its payload's tree, "sense" and "bs" yield sense
// nodes, and any other tag yields nil. An array without a leading string
// is an implicit sequence of subtrees. Everything else yields nil.
func ParseTree(v gjson.Result) Tree {
	if !v.IsArray() {
		return nil
	}

	items := v.Array()
	if len(items) > 0 && items[0].Type == gjson.String {
		payload := at(items, 1)
		switch items[0].Str {
		case tagSequence:
			return ParseTree(payload)
		case tagSense:
			return SenseNode{Sense: ParseSense(payload)}
		case tagBaseSense:
			return BaseSense{Sense: ParseSense(payload.Get(tagSense))}
		default:
			return nil
		}
	}

	seq := make(Sequence, 0, len(items))
	for _, item := range items {
		if child := ParseTree(item); child != nil {
			seq = append(seq, child)
		}
	}
	return seq
}

// ParseSense converts a sense object. A non-object yields an empty Sense.
func ParseSense(v gjson.Result) Sense {
	var s Sense
	if !v.IsObject() {
		return s
	}

	s.Number = stringOf(v.Get("sn"))

	if sls := v.Get("sls"); sls.IsArray() {
		s.SubjectLabels = make([]string, 0, len(sls.Array()))
		for _, label := range sls.Array() {
			// Non-string labels keep their slot so the separators line up.
			s.SubjectLabels = append(s.SubjectLabels, stringOf(label))
		}
	}

	if dt := v.Get("dt"); dt.IsArray() {
		for _, item := range dt.Array() {
			if el := ParseElement(item); el != nil {
				s.Body = append(s.Body, el)
			}
		}
	}

	return s
}

// ParseElement converts a ["tag", payload] pair from dt. Values without a
// leading string tag yield nil; a "text" element whose payload is not a
// string is kept as Unhandled.
func ParseElement(v gjson.Result) Element {
	if !v.IsArray() {
		return nil
	}

	items := v.Array()
	if len(items) == 0 || items[0].Type != gjson.String {
		return nil
	}

	tag := items[0].Str
	if payload := at(items, 1); tag == tagText && payload.Type == gjson.String {
		return Text(payload.Str)
	}
	return Unhandled{Tag: tag}
}

func at(items []gjson.Result, i int) gjson.Result {
	if i < len(items) {
		return items[i]
	}
	return gjson.Result{}
}

func stringOf(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.Str
	}
	return ""
}
