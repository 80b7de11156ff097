// Package dict provides a typed view of Merriam-Webster Collegiate entries.
//
// Entries arrive as generic JSON values. The conversion in this package is
// total: anything that does not have the expected shape is dropped, never
// reported, so a malformed part of one entry cannot stop the rest from
// rendering.
package dict

// Bullet replaces the syllable marker "*" in headwords.
const Bullet = "•"

// Entry is one dictionary entry (one homograph).
type Entry struct {
	ID              string       // meta.id, e.g. "cat:1"
	Headword        string       // hwi.hw with "*" replaced by Bullet
	FunctionalLabel string       // fl, e.g. "noun"; empty when missing
	Definitions     []Definition // def
	ShortDefs       []string     // shortdef
	Offensive       bool         // meta.offensive
}

// Definition is one element of an entry's def array.
type Definition struct {
	VerbDivider string // vd, e.g. "transitive verb"; empty when missing
	Senses      Tree   // sseq; nil when missing or malformed
}

// Tree is a node of a sense sequence. The set of implementations is closed:
// Sequence, SenseNode and BaseSense.
type Tree interface {
	isTree()
}

// Sequence is an ordered list of subtrees. It covers both explicit "pseq"
// groups and the untagged arrays sseq is made of.
type Sequence []Tree

// SenseNode is a "sense" node.
type SenseNode struct {
	Sense Sense
}

// BaseSense is a "bs" node: a sense shared by the senses that follow it.
type BaseSense struct {
	Sense Sense
}

func (Sequence) isTree()  {}
func (SenseNode) isTree() {}
func (BaseSense) isTree() {}

// Sense is the content of a sense or base sense.
type Sense struct {
	Number string // sn, e.g. "1", "(2)", "b"; empty when missing
	// SubjectLabels holds sls. It is nil when sls is missing; an empty
	// non-nil slice means sls was present but empty.
	SubjectLabels []string
	Body          []Element // dt
}

// Element is an item of a sense body. The set of implementations is closed:
// Text and Unhandled.
type Element interface {
	isElement()
}

// Text is a "text" element holding running text with markup tokens.
type Text string

// Unhandled is an element kind that exists in the format but is not
// rendered, e.g. "vis" (verbal illustrations) or "uns" (usage notes).
type Unhandled struct {
	Tag string
}

func (Text) isElement()      {}
func (Unhandled) isElement() {}
