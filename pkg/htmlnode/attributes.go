package htmlnode

import "strings"

type Attribute struct {
	Key   string
	Value string
}

// Attributes keeps attributes in the order they will be rendered
type Attributes []Attribute

// Attrs builds Attributes from key-value pairs. A trailing key without
// a value gets an empty value.
func Attrs(kv ...string) Attributes {
	attrs := make(Attributes, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		a := Attribute{Key: kv[i]}
		if i+1 < len(kv) {
			a.Value = kv[i+1]
		}
		attrs = append(attrs, a)
	}
	return attrs
}

// Get returns the value of the first attribute with the given key
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Render returns attributes as space separated key="value" pairs.
func (a Attributes) Render() string {
	if len(a) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(a))
	for _, attr := range a {
		pairs = append(pairs, attr.Key+`="`+attr.Value+`"`)
	}
	return strings.Join(pairs, " ")
}
