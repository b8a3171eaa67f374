// Package session owns the poster form state. Each session is an
// explicitly-typed state object; transitions are pure functions of
// (current state, event) that return the next state and never mutate the
// input. A single controller (the API handler) owns each instance, so no
// locking happens at this level.
package session

import (
	"errors"
	"image"

	"github.com/festie/shefest-tools/internal/render"
)

var (
	// ErrNoImage means crop was confirmed before an image was selected.
	ErrNoImage = errors.New("session: no image selected")
	// ErrNoRegion means crop was confirmed before a region was chosen.
	ErrNoRegion = errors.New("session: no crop region chosen")
)

// State is the poster form state. Source and Region belong to the open
// crop dialog; Photo is the last confirmed crop and survives the dialog.
type State struct {
	Name   string
	Source image.Image
	Region *render.CropRegion
	Photo  image.Image
}

// WithName sets the entered display name.
func (s State) WithName(name string) State {
	s.Name = name
	return s
}

// WithSource selects a new source image, discarding any in-progress
// region from a previous selection.
func (s State) WithSource(img image.Image) State {
	s.Source = img
	s.Region = nil
	return s
}

// WithRegion records the current crop rectangle while the dialog is
// open. The region is validated at confirm time, not here, mirroring a
// free-form drag interaction.
func (s State) WithRegion(r render.CropRegion) State {
	s.Region = &r
	return s
}

// ConfirmCrop validates the pending selection, produces the cropped
// photo, and closes the dialog state. Missing preconditions are explicit
// validation errors rather than silent no-ops.
func (s State) ConfirmCrop() (State, error) {
	if s.Source == nil {
		return s, ErrNoImage
	}
	if s.Region == nil {
		return s, ErrNoRegion
	}
	if !s.Region.MatchesPosterAspect() {
		return s, render.ErrOutOfAspect
	}
	photo, err := render.Crop(s.Source, *s.Region)
	if err != nil {
		return s, err
	}
	s.Photo = photo
	s.Source = nil
	s.Region = nil
	return s, nil
}

// CloseDialog discards the in-progress selection. A previously confirmed
// photo is left untouched.
func (s State) CloseDialog() State {
	s.Source = nil
	s.Region = nil
	return s
}

// Clear resets the whole form.
func (s State) Clear() State {
	return State{}
}
