package rules

// InfoString is display text with an optional Markdown variant.
type InfoString struct {
	Text     string
	Markdown string
}

func NewInfoString(text string) InfoString {
	return InfoString{Text: text}
}

func (s InfoString) String() string {
	return s.Text
}

func (s InfoString) HasValue() bool {
	return s.Text != "" || s.Markdown != ""
}

// RuleHelpInfo is the descriptive metadata rendered alongside every record.
type RuleHelpInfo struct {
	Name           string
	DisplayName    string
	ModuleName     string
	Synopsis       InfoString
	Recommendation InfoString
}

// ResourceTags are key/value labels attached to a rule.
type ResourceTags map[string]string

func (t ResourceTags) clone() ResourceTags {
	out := make(ResourceTags, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// TargetObject wraps the evaluated value with its resolved display name and type.
type TargetObject struct {
	Value any
	Name  string
	Type  string
}

func NewTargetObject(value any, name, typ string) TargetObject {
	return TargetObject{Value: value, Name: name, Type: typ}
}

// SourceExtent locates the rule definition a record came from.
type SourceExtent struct {
	File     string
	Line     int
	Position int
}
