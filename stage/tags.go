package stage

import "reflect"

// Tag names a stage; implementations are zero-size structs and identity is the Go type
type Tag interface {
	StageName() string
}

// ID is the identity of a stage tag
type ID = reflect.Type

// IDOf returns the identity of tag
func IDOf(tag Tag) ID {
	return reflect.TypeOf(tag)
}

// IDFor returns the identity of tag type T
func IDFor[T Tag]() ID {
	return reflect.TypeFor[T]()
}

// Main scheduler stages
type (
	First      struct{}
	PreUpdate  struct{}
	Update     struct{}
	PostUpdate struct{}
)

// Fixed scheduler stages
type (
	FixedFirst      struct{}
	FixedPreUpdate  struct{}
	FixedUpdate     struct{}
	FixedPostUpdate struct{}
)

// Render scheduler stages
type (
	RenderFirst      struct{}
	RenderPreUpdate  struct{}
	RenderUpdate     struct{}
	RenderPostUpdate struct{}
)

func (First) StageName() string      { return "First" }
func (PreUpdate) StageName() string  { return "PreUpdate" }
func (Update) StageName() string     { return "Update" }
func (PostUpdate) StageName() string { return "PostUpdate" }

func (FixedFirst) StageName() string      { return "FixedFirst" }
func (FixedPreUpdate) StageName() string  { return "FixedPreUpdate" }
func (FixedUpdate) StageName() string     { return "FixedUpdate" }
func (FixedPostUpdate) StageName() string { return "FixedPostUpdate" }

func (RenderFirst) StageName() string      { return "RenderFirst" }
func (RenderPreUpdate) StageName() string  { return "RenderPreUpdate" }
func (RenderUpdate) StageName() string     { return "RenderUpdate" }
func (RenderPostUpdate) StageName() string { return "RenderPostUpdate" }

// Stage groups in the order their scheduler runs them
var (
	MainTags   = []Tag{First{}, PreUpdate{}, Update{}, PostUpdate{}}
	FixedTags  = []Tag{FixedFirst{}, FixedPreUpdate{}, FixedUpdate{}, FixedPostUpdate{}}
	RenderTags = []Tag{RenderFirst{}, RenderPreUpdate{}, RenderUpdate{}, RenderPostUpdate{}}
)

// DefaultTags returns all twelve default tags, main then fixed then render
func DefaultTags() []Tag {
	tags := make([]Tag, 0, len(MainTags)+len(FixedTags)+len(RenderTags))
	tags = append(tags, MainTags...)
	tags = append(tags, FixedTags...)
	tags = append(tags, RenderTags...)
	return tags
}
