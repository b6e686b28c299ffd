package player

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
)

// Supported reports whether a clip path has a decodable extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extWAV:
		return true
	}
	return false
}

// openClip opens and decodes an audio file. The returned streamer owns the
// file and closes it.
func openClip(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, beep.Format{}, fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext {
	case extMP3:
		stream, format, err = decodeMP3(f)
	case extFLAC:
		if err = skipID3v2(f); err == nil {
			stream, format, err = flac.Decode(f)
		}
	case extWAV:
		stream, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return stream, format, nil
}

// skipID3v2 positions r after an ID3v2 tag, if any. The FLAC decoder does
// not expect one.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	if _, err := io.ReadFull(r, header); err != nil || string(header[:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// syncsafe integer: 7 bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err := r.Seek(10+size, io.SeekStart)
	return err
}
