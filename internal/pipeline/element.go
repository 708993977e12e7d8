package pipeline

// ElementType identifies a node kind in the parsed answer tree.
type ElementType string

// Element kinds produced by the converter.
const (
	TypeHeading  ElementType = "heading"
	TypeList     ElementType = "list"
	TypeListItem ElementType = "listItem"
	TypeStrong   ElementType = "strong"
	TypeEmphasis ElementType = "emphasis"
	TypeText     ElementType = "text"
)

// Element is a node in the intermediate answer tree. The tree is transient:
// it is built, emitted as markup, and discarded within one conversion.
//
// Only headings carry Level. Strong, emphasis and text nodes are leaves and
// never carry children; their content is the literal (unescaped) text.
type Element struct {
	Type     ElementType
	Content  string
	Level    int  // 1..6, headings only
	Ordered  bool // lists only: numbered vs bulleted
	Children []Element
}
