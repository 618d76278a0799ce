// Package binder reconciles target record sets with the scene graph.
package binder

import (
	"time"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/core/scene"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

// Scene is the part of the scene graph the binder drives.
type Scene interface {
	Live(tag model.VisualState) []*scene.Element
	Create(recordID int, tag model.VisualState) *scene.Element
	FadeIn(e *scene.Element, d time.Duration, ease scene.Ease)
	FadeOut(e *scene.Element, d time.Duration, ease scene.Ease)
	Retag(from, to model.VisualState) int
}

// Diff lists the record ids touched by one bind.
type Diff struct {
	Entered []int `json:"entered,omitempty"`
	Exited  []int `json:"exited,omitempty"`
	Kept    []int `json:"kept,omitempty"`
}

// Empty reports whether the bind changed nothing.
func (d Diff) Empty() bool {
	return len(d.Entered) == 0 && len(d.Exited) == 0
}

// Binder runs keyed data joins against a Scene.
type Binder struct {
	scene Scene
	fade  time.Duration
	log   *util.ComponentLogger
}

// New creates a binder whose enter and exit transitions last fade.
func New(s Scene, fade time.Duration) *Binder {
	return &Binder{scene: s, fade: fade, log: util.ForComponent("binder")}
}

// BindIDs makes the live elements under tag match ids.
//
// Ids without a live element enter at zero opacity and fade in; live elements
// whose id is not targeted are marked fading and fade out; the rest are left
// untouched apart from their layout slot. Fading elements never count as
// present, so a record retargeted mid-exit gets a fresh element.
func (b *Binder) BindIDs(ids []int, tag model.VisualState) Diff {
	current := make(map[int]*scene.Element)
	for _, e := range b.scene.Live(tag) {
		current[e.RecordID] = e
	}

	var diff Diff
	wanted := make(map[int]struct{}, len(ids))
	slot := 0
	for _, id := range ids {
		if _, dup := wanted[id]; dup {
			continue
		}
		wanted[id] = struct{}{}
		if e, ok := current[id]; ok {
			e.Slot = slot
			diff.Kept = append(diff.Kept, id)
		} else {
			e := b.scene.Create(id, tag)
			e.Slot = slot
			b.scene.FadeIn(e, b.fade, scene.EaseOutCubic)
			diff.Entered = append(diff.Entered, id)
		}
		slot++
	}
	for _, e := range b.scene.Live(tag) {
		if _, ok := wanted[e.RecordID]; ok {
			continue
		}
		b.scene.FadeOut(e, b.fade, scene.EaseInCubic)
		diff.Exited = append(diff.Exited, e.RecordID)
	}
	b.log.Debug("bind",
		util.F("tag", tag),
		util.F("entered", len(diff.Entered)),
		util.F("exited", len(diff.Exited)),
		util.F("kept", len(diff.Kept)))
	return diff
}

// Retag moves elements between layers without animation.
func (b *Binder) Retag(from, to model.VisualState) int {
	return b.scene.Retag(from, to)
}

// Bind binds records to tag by record id.
func Bind[R model.Record](b *Binder, records []R, tag model.VisualState) Diff {
	ids := make([]int, len(records))
	for i, r := range records {
		ids[i] = r.RecordID()
	}
	return b.BindIDs(ids, tag)
}
