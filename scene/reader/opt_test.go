package reader

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/PcieExplioter/vigilant-disco/scene"
	"github.com/PcieExplioter/vigilant-disco/scene/writer"
	"github.com/PcieExplioter/vigilant-disco/types"
)

func testMeshes() []scene.Mesh {
	return []scene.Mesh{
		{
			{
				V0: types.XYZ(-1000, 0, -1000),
				V1: types.XYZ(1000, 0, -1000),
				V2: types.XYZ(1000, 0, 1000),
			},
			{
				V0: types.XYZ(-1000, 0, -1000),
				V1: types.XYZ(1000, 0, 1000),
				V2: types.XYZ(-1000, 0, 1000),
			},
		},
		{
			{
				V0: types.XYZ(-100.25, 0, 500),
				V1: types.XYZ(100.5, 0, 500),
				V2: types.XYZ(100.125, 1000, 500),
			},
		},
	}
}

func TestOptRoundTrip(t *testing.T) {
	optFile := filepath.Join(t.TempDir(), "scene.opt")

	exp := testMeshes()
	if err := writer.WriteGeometry(exp, optFile); err != nil {
		t.Fatal(err)
	}

	got, err := ReadGeometry(optFile)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("expected round-tripped meshes to be %v; got %v", exp, got)
	}
}

func TestOptFileLayout(t *testing.T) {
	optFile := filepath.Join(t.TempDir(), "scene.opt")

	meshes := testMeshes()
	if err := writer.WriteGeometry(meshes, optFile); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(optFile)
	if err != nil {
		t.Fatal(err)
	}

	// uint64 mesh count + per mesh a uint64 count and 36 bytes per triangle
	expSize := 8 + (8 + 2*36) + (8 + 1*36)
	if len(data) != expSize {
		t.Fatalf("expected .opt file to be %d bytes; got %d", expSize, len(data))
	}

	if got := binary.LittleEndian.Uint64(data[0:8]); got != 2 {
		t.Fatalf("expected mesh count of 2; got %d", got)
	}
	if got := binary.LittleEndian.Uint64(data[8:16]); got != 2 {
		t.Fatalf("expected first triangle count of 2; got %d", got)
	}
}

func TestOptReaderRejectsEmptyFile(t *testing.T) {
	optFile := filepath.Join(t.TempDir(), "scene.opt")
	if err := writer.WriteGeometry(nil, optFile); err != nil {
		t.Fatal(err)
	}

	_, err := ReadGeometry(optFile)
	if err == nil {
		t.Fatal("expected reading a 0 mesh file to fail")
	}
}

func TestOptReaderRejectsTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	optFile := filepath.Join(dir, "scene.opt")

	if err := writer.WriteGeometry(testMeshes(), optFile); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(optFile)
	if err != nil {
		t.Fatal(err)
	}

	truncFile := filepath.Join(dir, "trunc.opt")
	if err = os.WriteFile(truncFile, data[:len(data)-20], 0644); err != nil {
		t.Fatal(err)
	}

	if _, err = ReadGeometry(truncFile); err == nil {
		t.Fatal("expected reading a truncated file to fail")
	}
}

func TestReadGeometryUnsupportedFormat(t *testing.T) {
	pngFile := filepath.Join(t.TempDir(), "scene.png")
	if err := os.WriteFile(pngFile, []byte("not geometry"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadGeometry(pngFile); err == nil {
		t.Fatal("expected an unsupported extension to fail")
	}
}

func TestReadGeometryMissingFile(t *testing.T) {
	if _, err := ReadGeometry(filepath.Join(t.TempDir(), "missing.opt")); err == nil {
		t.Fatal("expected a missing file to fail")
	}
}
