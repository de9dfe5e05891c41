package namespace

import "fmt"

// PathNotFound reports that a path has no committed Definition.
type PathNotFound struct {
	Path string
}

func (e PathNotFound) Error() string {
	return fmt.Sprintf("namespace: no definition at %q", e.Path)
}

// TagImmutable reports an attempt to move an existing tag to a different
// hash (spec §4.G: "moving a tag to a different hash is rejected").
type TagImmutable struct {
	Path string
	Tag  string
	Was  string
	Got  string
}

func (e TagImmutable) Error() string {
	return fmt.Sprintf("namespace: tag %q on %q is pinned to %s, cannot retag to %s", e.Tag, e.Path, e.Was, e.Got)
}
