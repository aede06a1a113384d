package models

// Selection is the outcome of stream selection for one resource.
//
// MergeRequired is true iff Primary and Secondary are both set and neither is progressive.
type Selection struct {
	Primary       *Stream
	Secondary     *Stream
	MergeRequired bool
}

// NewSelection builds a Selection, deriving MergeRequired from the streams.
func NewSelection(primary, secondary *Stream) *Selection {
	return &Selection{
		Primary:   primary,
		Secondary: secondary,
		MergeRequired: primary != nil && secondary != nil &&
			!primary.IsProgressive() && !secondary.IsProgressive(),
	}
}

// Single returns whichever stream should be fetched when no merge happens.
func (s *Selection) Single() *Stream {
	if s.Primary != nil {
		return s.Primary
	}
	return s.Secondary
}
