package spatial

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"testing"
)

// buildTestGLTF builds a minimal in-memory glTF document: two nodes (one with a
// rest rotation of 90 degrees around Y) and one animation rotating the second node
// from the identity to 90 degrees around X over one second.
func buildTestGLTF() []byte {

	buffer := &bytes.Buffer{}

	// Sampler input: keyframe times.
	for _, t := range []float32{0, 1} {
		binary.Write(buffer, binary.LittleEndian, t)
	}

	// Sampler output: keyframe rotations in x, y, z, w order.
	halfSqrt2 := float32(math.Sqrt2 / 2)
	for _, rotation := range [][4]float32{
		{0, 0, 0, 1},
		{halfSqrt2, 0, 0, halfSqrt2},
	} {
		binary.Write(buffer, binary.LittleEndian, rotation)
	}

	document := `{
		"asset": {"version": "2.0"},
		"nodes": [
			{"name": "Root"},
			{"name": "Spinner", "rotation": [0, 0.70710678, 0, 0.70710678]}
		],
		"animations": [{
			"name": "Spin",
			"channels": [{"sampler": 0, "target": {"node": 1, "path": "rotation"}}],
			"samplers": [{"input": 0, "output": 1, "interpolation": "LINEAR"}]
		}],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 2, "type": "SCALAR", "min": [0], "max": [1]},
			{"bufferView": 1, "componentType": 5126, "count": 2, "type": "VEC4"}
		],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 8},
			{"buffer": 0, "byteOffset": 8, "byteLength": 32}
		],
		"buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}]
	}`

	return []byte(fmt.Sprintf(document, buffer.Len(), base64.StdEncoding.EncodeToString(buffer.Bytes())))

}

func TestLoadGLTFData(t *testing.T) {

	library, err := LoadGLTFData(bytes.NewReader(buildTestGLTF()))
	if err != nil {
		t.Fatal(err)
	}

	quatsNear(t, "node rest rotation", library.NodeRotation("Spinner"), NewQuaternionRotationY(math.Pi/2), 1e-7)

	// Nodes without an explicit rotation rest at the identity.
	quatsNear(t, "default node rotation", library.NodeRotation("Root"), NewQuaternionIdentity(), 0)
	quatsNear(t, "unknown node rotation", library.NodeRotation("Missing"), NewQuaternionIdentity(), 0)

	tracks := library.Tracks("Spin")
	if len(tracks) != 1 {
		t.Fatalf("expected 1 rotation track, got %d", len(tracks))
	}

	track := tracks[0]
	if track.Node != "Spinner" {
		t.Errorf("track should target the Spinner node, got %q", track.Node)
	}
	if track.Length() != 1 {
		t.Errorf("track length: got %v, want 1", track.Length())
	}

	quatsNear(t, "track start", track.RotationAt(0), NewQuaternionIdentity(), 1e-6)
	quatsNear(t, "track end", track.RotationAt(1), NewQuaternionRotationX(math.Pi/2), 1e-6)

	// Sampling between keyframes slerps, so the midpoint is the half rotation.
	quatsNear(t, "track midpoint", track.RotationAt(0.5), NewQuaternionRotationX(math.Pi/4), 1e-6)

	// Sampling outside the keyframe range clamps to the endpoints.
	quatsNear(t, "track before start", track.RotationAt(-0.5), NewQuaternionIdentity(), 1e-6)
	quatsNear(t, "track past end", track.RotationAt(3), NewQuaternionRotationX(math.Pi/2), 1e-6)

	if library.Tracks("Missing") != nil {
		t.Errorf("unknown animations should have no tracks")
	}

}

func TestLoadGLTFDataInvalid(t *testing.T) {

	if _, err := LoadGLTFData(bytes.NewReader([]byte("not gltf"))); err == nil {
		t.Errorf("decoding garbage should fail")
	}

}

func TestLoadGLTFDataBadSamplerAccessor(t *testing.T) {

	buffer := &bytes.Buffer{}

	// Keyframe times as unsigned shorts; rotation samplers require float input,
	// so the loader has to reject this rather than panic on the accessor data.
	for _, time := range []uint16{0, 1} {
		binary.Write(buffer, binary.LittleEndian, time)
	}

	halfSqrt2 := float32(math.Sqrt2 / 2)
	for _, rotation := range [][4]float32{
		{0, 0, 0, 1},
		{halfSqrt2, 0, 0, halfSqrt2},
	} {
		binary.Write(buffer, binary.LittleEndian, rotation)
	}

	document := `{
		"asset": {"version": "2.0"},
		"nodes": [{"name": "Spinner"}],
		"animations": [{
			"name": "Spin",
			"channels": [{"sampler": 0, "target": {"node": 0, "path": "rotation"}}],
			"samplers": [{"input": 0, "output": 1, "interpolation": "LINEAR"}]
		}],
		"accessors": [
			{"bufferView": 0, "componentType": 5123, "count": 2, "type": "SCALAR", "min": [0], "max": [1]},
			{"bufferView": 1, "componentType": 5126, "count": 2, "type": "VEC4"}
		],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 4},
			{"buffer": 0, "byteOffset": 4, "byteLength": 32}
		],
		"buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}]
	}`

	data := fmt.Sprintf(document, buffer.Len(), base64.StdEncoding.EncodeToString(buffer.Bytes()))

	if _, err := LoadGLTFData(bytes.NewReader([]byte(data))); err == nil {
		t.Errorf("a non-float sampler input accessor should fail to load")
	}

}

func TestRotationTrackEmpty(t *testing.T) {

	track := &RotationTrack{Node: "Empty"}

	quatsNear(t, "empty track sample", track.RotationAt(0.5), NewQuaternionIdentity(), 0)
	if track.Length() != 0 {
		t.Errorf("empty track length: got %v, want 0", track.Length())
	}

}

func TestRotationLibraryClone(t *testing.T) {

	library, err := LoadGLTFData(bytes.NewReader(buildTestGLTF()))
	if err != nil {
		t.Fatal(err)
	}

	clone := library.Clone()
	clone.NodeRotations["Spinner"] = NewQuaternionIdentity()
	clone.Animations["Spin"][0].Keyframes[0].Time = 99

	quatsNear(t, "original node rotation", library.NodeRotation("Spinner"), NewQuaternionRotationY(math.Pi/2), 1e-7)
	if library.Animations["Spin"][0].Keyframes[0].Time != 0 {
		t.Errorf("mutating a cloned library should not affect the original")
	}

}

func TestRotationTrackClone(t *testing.T) {

	track := &RotationTrack{
		Node: "Spinner",
		Keyframes: []RotationKeyframe{
			{Time: 0, Rotation: NewQuaternionIdentity()},
			{Time: 1, Rotation: NewQuaternionRotationY(1)},
		},
	}

	clone := track.Clone()
	clone.Keyframes[0].Time = 99

	if track.Keyframes[0].Time != 0 {
		t.Errorf("mutating a clone should not affect the original track")
	}

}
