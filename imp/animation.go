package imp

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/gltf_scene_browser/host"
	"github.com/mogaika/gltf_scene_browser/status"
	"github.com/mogaika/gltf_scene_browser/vnode"
)

// DanglingAnimationTargetError reports an animation channel pointing at a
// node identifier absent from the graph.
type DanglingAnimationTargetError struct {
	Animation int
	Channel   int
	Node      uint32
}

func (e DanglingAnimationTargetError) Error() string {
	return fmt.Sprintf("Animation %v channel %v targets node %v which is not in the graph",
		e.Animation, e.Channel, e.Node)
}

// AnimationOptions is passed by reference to BeforeAnimationLayering hooks
// so they can change the restore behavior.
type AnimationOptions struct {
	RestoreFirstAnim bool
}

// createAnimations materializes every animation as a host track. The host
// stacks newly pushed tracks on top, so tracks are created in reverse
// declaration order to leave animation 0 topmost. Track 0 incidentally ends
// up active after the loop, but the explicit restore is the contract.
func createAnimations(ctx *Context) error {
	opts := &AnimationOptions{RestoreFirstAnim: ctx.Options.RestoreFirstAnim}
	for _, e := range ctx.Extensions {
		e.BeforeAnimationLayering(ctx, opts)
	}

	anims := ctx.Document.Animations
	if len(anims) == 0 {
		return nil
	}

	ctx.trackNames = make([]string, len(anims))
	for i, anim := range anims {
		ctx.trackNames[i] = ctx.entityName(anim.Name)
	}

	for i := len(anims) - 1; i >= 0; i-- {
		status.Progress(float32(len(anims)-i)/float32(len(anims)),
			"Layering animation %q", ctx.trackNames[i])
		if err := createAnimationTrack(ctx, i); err != nil {
			return err
		}
		for _, e := range ctx.Extensions {
			e.AfterAnimationCreate(ctx, i, ctx.trackNames[i])
		}
	}

	if opts.RestoreFirstAnim {
		if !ctx.Scene.ActivateTrack(ctx.trackNames[0]) {
			log.Printf("[anim] Failed to restore track %q", ctx.trackNames[0])
		}
	}
	return nil
}

func createAnimationTrack(ctx *Context, index int) error {
	anim := ctx.Document.Animations[index]
	track := ctx.Scene.PushTrack(ctx.trackNames[index])

	for ci, channel := range anim.Channels {
		if channel.Target.Node == nil {
			continue // nothing in the graph to drive
		}

		vn := ctx.Graph.Get(vnode.ID(*channel.Target.Node))
		if vn == nil {
			if ctx.Options.OnDanglingTarget == DanglingAbort {
				return DanglingAnimationTargetError{
					Animation: index,
					Channel:   ci,
					Node:      *channel.Target.Node,
				}
			}
			log.Printf("[anim] Skipping channel %v of track %q: %v",
				ci, ctx.trackNames[index],
				DanglingAnimationTargetError{Animation: index, Channel: ci, Node: *channel.Target.Node})
			continue
		}

		sampled, path, err := readChannel(ctx, anim, channel)
		if err != nil {
			log.Printf("[anim] Skipping channel %v of track %q: %v", ci, ctx.trackNames[index], err)
			continue
		}

		switch vn.Kind {
		case vnode.KindBone:
			if vn.HostBone != nil {
				track.AddBoneCurve(vn.HostBone, path, sampled)
			}
		case vnode.KindObject:
			if vn.HostObject != nil {
				track.AddObjectCurve(vn.HostObject, path, sampled)
			}
		case vnode.KindDummyRoot:
			// unreachable, node indices never map to the dummy root
		}
	}
	return nil
}

// readChannel decodes a channel's sampler into a host curve.
func readChannel(ctx *Context, anim *gltf.Animation, channel *gltf.Channel) (host.Sampled, host.TRSPath, error) {
	var s host.Sampled

	if channel.Sampler == nil || int(*channel.Sampler) >= len(anim.Samplers) {
		return s, "", errors.Errorf("Invalid sampler reference")
	}
	sampler := anim.Samplers[*channel.Sampler]
	if sampler.Input == nil || int(*sampler.Input) >= len(ctx.Document.Accessors) ||
		sampler.Output == nil || int(*sampler.Output) >= len(ctx.Document.Accessors) {
		return s, "", errors.Errorf("Invalid sampler accessors")
	}

	input, err := modeler.ReadAccessor(ctx.Document, ctx.Document.Accessors[*sampler.Input], nil)
	if err != nil {
		return s, "", errors.Wrapf(err, "Failed to read sampler input")
	}
	times, ok := input.([]float32)
	if !ok {
		return s, "", errors.Errorf("Unexpected sampler input layout %T", input)
	}

	output, err := modeler.ReadAccessor(ctx.Document, ctx.Document.Accessors[*sampler.Output], nil)
	if err != nil {
		return s, "", errors.Wrapf(err, "Failed to read sampler output")
	}

	s.Times = times
	s.Interpolation = int(sampler.Interpolation)

	switch channel.Target.Path {
	case gltf.TRSTranslation, gltf.TRSScale:
		vecs, ok := output.([][3]float32)
		if !ok {
			return s, "", errors.Errorf("Unexpected sampler output layout %T", output)
		}
		s.Vec3 = make([]mgl32.Vec3, len(vecs))
		for i, v := range vecs {
			s.Vec3[i] = mgl32.Vec3(v)
		}
		if channel.Target.Path == gltf.TRSTranslation {
			return s, host.PathTranslation, nil
		}
		return s, host.PathScale, nil

	case gltf.TRSRotation:
		quats, ok := output.([][4]float32)
		if !ok {
			return s, "", errors.Errorf("Unexpected sampler output layout %T", output)
		}
		s.Quat = make([]mgl32.Quat, len(quats))
		for i, q := range quats {
			s.Quat[i] = mgl32.Quat{W: q[3], V: mgl32.Vec3{q[0], q[1], q[2]}}
		}
		return s, host.PathRotation, nil

	case gltf.TRSWeights:
		floats, ok := output.([]float32)
		if !ok {
			return s, "", errors.Errorf("Unexpected sampler output layout %T", output)
		}
		s.Floats = floats
		return s, host.PathWeights, nil
	}

	return s, "", errors.Errorf("Unsupported channel path %q", channel.Target.Path)
}
