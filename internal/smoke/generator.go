package smoke

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
)

// Sample payload parameters.
const (
	sampleImageWidth  = 64
	sampleImageHeight = 48
	sampleRate        = 8000
	sampleToneHz      = 440
	sampleAmplitude   = 0.3
	wavHeaderSize     = 44
	wavPCMFormat      = 1
	wavBitsPerSample  = 16
	wavBytesPerSample = wavBitsPerSample / 8
)

// SampleText is the text used by the text and multimodal checks.
const SampleText = "The quick brown fox jumps over the lazy dog"

// SamplePNG renders a w x h opaque gradient as PNG.
func SamplePNG(w, h int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: 128,
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// SampleWAV synthesises a mono 16-bit PCM sine tone of the given length.
func SampleWAV(samples int) []byte {
	dataSize := samples * wavBytesPerSample
	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+dataSize))

	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(wavHeaderSize-8+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(wavPCMFormat))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate*wavBytesPerSample))
	_ = binary.Write(buf, binary.LittleEndian, uint16(wavBytesPerSample))
	_ = binary.Write(buf, binary.LittleEndian, uint16(wavBitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataSize))

	for i := 0; i < samples; i++ {
		v := sampleAmplitude * math.Sin(2*math.Pi*sampleToneHz*float64(i)/sampleRate)
		_ = binary.Write(buf, binary.LittleEndian, int16(v*math.MaxInt16))
	}
	return buf.Bytes()
}

// SampleMP4 returns an ftyp box followed by an empty mdat box padded to
// size bytes. It is enough for content sniffing, not for playback.
func SampleMP4(size int) []byte {
	ftyp := []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
		'i', 's', 'o', 'm', 'm', 'p', '4', '1',
	}
	if size < len(ftyp)+8 {
		size = len(ftyp) + 8
	}
	out := make([]byte, size)
	copy(out, ftyp)
	mdat := out[len(ftyp):]
	binary.BigEndian.PutUint32(mdat, uint32(len(mdat)))
	copy(mdat[4:], "mdat")
	return out
}
