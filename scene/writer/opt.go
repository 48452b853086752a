package writer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/PcieExplioter/vigilant-disco/log"
	"github.com/PcieExplioter/vigilant-disco/scene"
)

type optWriter struct {
	logger   log.Logger
	filename string
}

// Create a new .opt geometry writer.
func newOptWriter(filename string) *optWriter {
	return &optWriter{
		logger:   log.New("opt writer"),
		filename: filename,
	}
}

// Write mesh geometry to the .opt binary format:
//
//	uint64 numMeshes
//	per mesh: uint64 numTris, then numTris triangles of 9 float32
func (w *optWriter) Write(meshes []scene.Mesh) error {
	w.logger.Noticef(`writing %d meshes to "%s"`, len(meshes), w.filename)
	start := time.Now()

	f, err := os.Create(w.filename)
	if err != nil {
		return fmt.Errorf("optWriter: %s", err.Error())
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err = binary.Write(bw, binary.LittleEndian, uint64(len(meshes))); err != nil {
		return fmt.Errorf("optWriter: %s", err.Error())
	}

	for _, mesh := range meshes {
		if err = binary.Write(bw, binary.LittleEndian, uint64(len(mesh))); err != nil {
			return fmt.Errorf("optWriter: %s", err.Error())
		}
		for _, tri := range mesh {
			if err = binary.Write(bw, binary.LittleEndian, tri); err != nil {
				return fmt.Errorf("optWriter: %s", err.Error())
			}
		}
	}

	if err = bw.Flush(); err != nil {
		return fmt.Errorf("optWriter: %s", err.Error())
	}

	w.logger.Noticef("wrote geometry in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}
