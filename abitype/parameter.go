package abitype

// Parameter describes one input or output of an ABI entry. Components is
// only set for tuple types and is itself a list of parameters.
type Parameter struct {
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	InternalType string      `json:"internalType,omitempty"`
	Components   []Parameter `json:"components,omitempty"`
	Indexed      bool        `json:"indexed,omitempty"`
}
