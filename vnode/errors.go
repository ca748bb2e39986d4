package vnode

import "fmt"

// GraphCycleError reports a node participating in a parent/children cycle.
// Well-formed glTF cannot produce one, so this is a malformed document.
type GraphCycleError struct {
	Node ID
}

func (e GraphCycleError) Error() string {
	return fmt.Sprintf("Node %v is part of a parent/child cycle", e.Node)
}

// UnresolvedSkeletonError reports a skin whose joints do not share a single
// armature object ancestor.
type UnresolvedSkeletonError struct {
	Skin  uint32
	Joint ID
}

func (e UnresolvedSkeletonError) Error() string {
	return fmt.Sprintf("Skin %v: joint node %v cannot be traced to the skin armature", e.Skin, e.Joint)
}

// InvalidDocumentError is the catch-all for structurally broken input, for
// example out of range indices or a node with two parents.
type InvalidDocumentError struct {
	Reason string
}

func (e InvalidDocumentError) Error() string {
	return "Invalid document: " + e.Reason
}

func invalidf(format string, a ...interface{}) InvalidDocumentError {
	return InvalidDocumentError{Reason: fmt.Sprintf(format, a...)}
}
