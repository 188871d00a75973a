package timeline

import "github.com/jhodges10/tlRender/rationaltime"

// FindClip returns the Clip in track whose TrimmedRangeInParent contains
// tLocal, along with its index in track.Children, or ok=false if no clip
// covers that time (e.g. the time falls in a Gap).
func FindClip(track *Track, tLocal rationaltime.RationalTime) (clip *Clip, index int, ok bool) {
	for i, child := range track.Children {
		if c, isClip := child.(*Clip); isClip {
			if c.TrimmedRangeInParent().Contains(tLocal) {
				return c, i, true
			}
		}
	}
	return nil, -1, false
}

// RightTransition returns the Transition immediately following the clip at
// index, if any.
func RightTransition(track *Track, index int) (*Transition, bool) {
	if index+1 >= len(track.Children) {
		return nil, false
	}
	tr, ok := track.Children[index+1].(*Transition)
	return tr, ok
}

// LeftTransition returns the Transition immediately preceding the clip at
// index, if any.
func LeftTransition(track *Track, index int) (*Transition, bool) {
	if index-1 < 0 {
		return nil, false
	}
	tr, ok := track.Children[index-1].(*Transition)
	return tr, ok
}

// ClipAfterTransition returns the clip immediately following the
// Transition at transitionIndex.
func ClipAfterTransition(track *Track, transitionIndex int) (*Clip, bool) {
	if transitionIndex+1 >= len(track.Children) {
		return nil, false
	}
	c, ok := track.Children[transitionIndex+1].(*Clip)
	return c, ok
}

// ClipBeforeTransition returns the clip immediately preceding the
// Transition at transitionIndex.
func ClipBeforeTransition(track *Track, transitionIndex int) (*Clip, bool) {
	if transitionIndex-1 < 0 {
		return nil, false
	}
	c, ok := track.Children[transitionIndex-1].(*Clip)
	return c, ok
}

// VideoTracks returns the stack's tracks of kind TrackVideo, in stack
// (bottom-to-top) order.
func VideoTracks(stack *Stack) []*Track {
	var tracks []*Track
	for _, t := range stack.Tracks {
		if t.Kind == TrackVideo {
			tracks = append(tracks, t)
		}
	}
	return tracks
}
