package memscene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSequenceNumbers(t *testing.T) {
	s := New()
	a := s.NewObject("a").(*Object)
	b := s.NewObject("b").(*Object)
	if a.Seq() >= b.Seq() {
		t.Errorf("creation sequence not monotonic: %v then %v", a.Seq(), b.Seq())
	}
}

func TestWorldMatrix(t *testing.T) {
	s := New()
	parent := s.NewObject("parent").(*Object)
	parent.SetLocalTRS(mgl32.Vec3{1, 0, 0}, mgl32.QuatIdent(), mgl32.Vec3{2, 2, 2})
	child := s.NewObject("child").(*Object)
	child.SetParent(parent)
	child.SetLocalTRS(mgl32.Vec3{1, 0, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})

	// parent scale applies to the child offset
	want := mgl32.Vec3{3, 0, 0}
	if got := child.WorldMatrix().Col(3).Vec3(); !got.ApproxEqual(want) {
		t.Errorf("child world position %v, expected %v", got, want)
	}
}

func TestTrackStack(t *testing.T) {
	s := New()
	s.PushTrack("idle")
	s.PushTrack("walk")
	s.PushTrack("run")

	if s.ActiveTrack == nil || s.ActiveTrack.Name() != "run" {
		t.Fatalf("last pushed track is not active: %v", s.ActiveTrack)
	}
	if p1, p2 := s.TrackPriority("run"), s.TrackPriority("idle"); p1 <= p2 {
		t.Errorf("later track priority %v not above earlier %v", p1, p2)
	}
	if p := s.TrackPriority("missing"); p != -1 {
		t.Errorf("unknown track priority %v, expected -1", p)
	}

	if !s.ActivateTrack("idle") {
		t.Fatalf("failed to activate existing track")
	}
	if s.ActiveTrack.Name() != "idle" {
		t.Errorf("active track %q, expected idle", s.ActiveTrack.Name())
	}
	if s.ActivateTrack("missing") {
		t.Errorf("activated a track that does not exist")
	}
}

func TestSelection(t *testing.T) {
	s := New()
	a := s.NewObject("a").(*Object)
	b := s.NewObject("b").(*Object)

	a.Select(true)
	b.Select(true)
	s.DeselectAll()
	a.Select(true)

	sel := s.Selected()
	if len(sel) != 1 || sel[0] != a {
		t.Errorf("selection %v, expected only %q", sel, a.Name())
	}
}

func TestBoneHierarchy(t *testing.T) {
	s := New()
	arma := s.NewArmatureData("rig").(*ArmatureData)
	root := arma.NewBone("root", nil)
	arma.NewBone("child", root)

	if got := arma.FindBone("child"); got == nil || got.Parent() != root {
		t.Errorf("child bone not parented to root")
	}
	if arma.FindBone("missing") != nil {
		t.Errorf("found a bone that does not exist")
	}
	if len(root.(*Bone).Children()) != 1 {
		t.Errorf("root has %v children, expected 1", len(root.(*Bone).Children()))
	}
}
