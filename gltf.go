package spatial

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// RotationKeyframe is a single sample on a rotation track: the orientation a node
// holds at the given time (in seconds).
type RotationKeyframe struct {
	Time     float64
	Rotation Quaternion
}

// RotationTrack holds the rotation keyframes an animation applies to a single node,
// sorted by time (glTF samplers store their inputs in ascending order).
type RotationTrack struct {
	Node      string
	Keyframes []RotationKeyframe
}

// Clone returns a deep copy of the RotationTrack.
func (track *RotationTrack) Clone() *RotationTrack {
	return &RotationTrack{
		Node:      track.Node,
		Keyframes: append([]RotationKeyframe{}, track.Keyframes...),
	}
}

// Length returns the time of the track's last keyframe, or 0 for an empty track.
func (track *RotationTrack) Length() float64 {
	if len(track.Keyframes) == 0 {
		return 0
	}
	return track.Keyframes[len(track.Keyframes)-1].Time
}

// RotationAt samples the track at the given time, slerping between the two
// bracketing keyframes. Times before the first keyframe return the first
// keyframe's rotation; times past the last return the last's.
func (track *RotationTrack) RotationAt(time float64) Quaternion {

	if len(track.Keyframes) == 0 {
		return NewQuaternionIdentity()
	}

	if time <= track.Keyframes[0].Time {
		return track.Keyframes[0].Rotation
	}

	for i := 1; i < len(track.Keyframes); i++ {

		next := track.Keyframes[i]

		if time <= next.Time {
			prev := track.Keyframes[i-1]
			span := next.Time - prev.Time
			if span <= 0 {
				return next.Rotation
			}
			return prev.Rotation.Slerp(next.Rotation, (time-prev.Time)/span)
		}

	}

	return track.Keyframes[len(track.Keyframes)-1].Rotation

}

// RotationLibrary holds the rotation data extracted from a glTF document: the rest
// rotation of each named node, and the rotation keyframe tracks of each animation.
// Only rotations are read; translation and scale channels are skipped.
type RotationLibrary struct {
	NodeRotations map[string]Quaternion
	Animations    map[string][]*RotationTrack
}

// Clone returns a deep copy of the RotationLibrary.
func (library *RotationLibrary) Clone() *RotationLibrary {

	clone := &RotationLibrary{
		NodeRotations: map[string]Quaternion{},
		Animations:    map[string][]*RotationTrack{},
	}

	for name, rotation := range library.NodeRotations {
		clone.NodeRotations[name] = rotation
	}
	for name, tracks := range library.Animations {
		clone.Animations[name] = CloneSlice(tracks)
	}

	return clone

}

// NodeRotation returns the rest rotation of the named node; nodes without an explicit
// rotation in the file (and unknown nodes) return the identity.
func (library *RotationLibrary) NodeRotation(name string) Quaternion {
	if rotation, ok := library.NodeRotations[name]; ok {
		return rotation
	}
	return NewQuaternionIdentity()
}

// Tracks returns the rotation tracks of the named animation (nil if the animation
// doesn't exist or carries no rotation channels).
func (library *RotationLibrary) Tracks(animation string) []*RotationTrack {
	return library.Animations[animation]
}

// LoadGLTFFile loads the rotation data out of a .gltf or .glb file from the filepath
// given. It returns a RotationLibrary, and an error if the process fails.
func LoadGLTFFile(path string) (*RotationLibrary, error) {

	fileData, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("loading gltf file %s: %w", path, err)
	}

	return LoadGLTFData(bytes.NewReader(fileData))

}

// LoadGLTFData loads the rotation data out of glTF file data provided through the
// Reader. Node rest rotations come from each node's rotation property; animation
// tracks come from every sampler targeting a rotation path.
func LoadGLTFData(data io.Reader) (*RotationLibrary, error) {

	doc := gltf.NewDocument()

	if err := gltf.NewDecoder(data).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding gltf data: %w", err)
	}

	library := &RotationLibrary{
		NodeRotations: map[string]Quaternion{},
		Animations:    map[string][]*RotationTrack{},
	}

	for _, node := range doc.Nodes {
		r := node.Rotation
		library.NodeRotations[node.Name] = NewQuaternion(float64(r[0]), float64(r[1]), float64(r[2]), float64(r[3]))
	}

	for _, anim := range doc.Animations {

		tracks := []*RotationTrack{}

		for _, channel := range anim.Channels {

			if channel.Target.Path != gltf.TRSRotation {
				continue
			}

			sampler := anim.Samplers[channel.Sampler]

			nodeName := "root"
			if channel.Target.Node != nil {
				nodeName = doc.Nodes[*channel.Target.Node].Name
			}

			id, err := modeler.ReadAccessor(doc, doc.Accessors[sampler.Input], nil)

			if err != nil {
				return nil, fmt.Errorf("reading rotation sampler input for node %s: %w", nodeName, err)
			}

			inputData, ok := id.([]float32)

			if !ok {
				return nil, fmt.Errorf("rotation sampler input for node %s: unexpected accessor data %T", nodeName, id)
			}

			od, err := modeler.ReadAccessor(doc, doc.Accessors[sampler.Output], nil)

			if err != nil {
				return nil, fmt.Errorf("reading rotation sampler output for node %s: %w", nodeName, err)
			}

			// CUBICSPLINE samplers and non-float accessors decode to other shapes.
			outputData, ok := od.([][4]float32)

			if !ok {
				return nil, fmt.Errorf("rotation sampler output for node %s: unexpected accessor data %T", nodeName, od)
			}

			track := &RotationTrack{Node: nodeName}

			for i := 0; i < len(inputData); i++ {
				p := outputData[i]
				track.Keyframes = append(track.Keyframes, RotationKeyframe{
					Time:     float64(inputData[i]),
					Rotation: NewQuaternion(float64(p[0]), float64(p[1]), float64(p[2]), float64(p[3])),
				})
			}

			tracks = append(tracks, track)

		}

		if len(tracks) > 0 {
			library.Animations[anim.Name] = tracks
		}

	}

	return library, nil

}
