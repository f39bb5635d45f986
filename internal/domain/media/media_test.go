package media_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/okian/multimodal/internal/domain/media"
	. "github.com/smartystreets/goconvey/convey"
)

func solidRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func TestAnalyzeText(t *testing.T) {
	Convey("Given text inputs", t, func() {
		Convey("When the text has plain words", func() {
			stats := media.AnalyzeText("This is a test message")

			Convey("Then length and word count should match", func() {
				So(stats.Length, ShouldEqual, 22)
				So(stats.WordCount, ShouldEqual, 5)
			})
		})

		Convey("When the text has mixed and repeated whitespace", func() {
			stats := media.AnalyzeText("  hello \t\n world  ")

			Convey("Then runs of whitespace should separate words once", func() {
				So(stats.WordCount, ShouldEqual, 2)
				So(stats.Length, ShouldEqual, 18)
			})
		})

		Convey("When the text is multi-byte", func() {
			stats := media.AnalyzeText("héllo wörld ✓")

			Convey("Then length should count characters, not bytes", func() {
				So(stats.Length, ShouldEqual, 13)
				So(stats.WordCount, ShouldEqual, 3)
			})
		})

		Convey("When words are split by information separators", func() {
			stats := media.AnalyzeText("a\x1cb\x1fc\u3000d")

			Convey("Then each separator should end a word", func() {
				So(stats.WordCount, ShouldEqual, 4)
				So(stats.Length, ShouldEqual, 7)
			})
		})

		Convey("When the text is empty or only whitespace", func() {
			Convey("Then both counts should be zero for empty text", func() {
				So(media.AnalyzeText(""), ShouldResemble, media.TextStats{})
			})
			Convey("And whitespace should count as characters but not words", func() {
				stats := media.AnalyzeText("   ")
				So(stats.Length, ShouldEqual, 3)
				So(stats.WordCount, ShouldEqual, 0)
			})
		})
	})
}

func TestInspectImage(t *testing.T) {
	Convey("Given image uploads", t, func() {
		Convey("When the upload is an opaque RGB PNG", func() {
			data := encodePNG(solidRGBA(100, 80, color.RGBA{B: 255, A: 255}))
			info, err := media.InspectImage(media.Upload{Filename: "test.png", ContentType: "image/png", Data: data})

			Convey("Then format, mode and dimensions should be reported", func() {
				So(err, ShouldBeNil)
				So(info.Filename, ShouldEqual, "test.png")
				So(info.Format, ShouldEqual, "PNG")
				So(info.Mode, ShouldEqual, "RGB")
				So(info.Width, ShouldEqual, 100)
				So(info.Height, ShouldEqual, 80)
				So(info.Size(), ShouldResemble, [2]int{100, 80})
			})
		})

		Convey("When the PNG has transparency", func() {
			img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
			img.Set(0, 0, color.NRGBA{R: 255, A: 128})
			info, err := media.InspectImage(media.Upload{Filename: "alpha.png", Data: encodePNG(img)})

			Convey("Then the mode should be RGBA", func() {
				So(err, ShouldBeNil)
				So(info.Mode, ShouldEqual, "RGBA")
			})
		})

		Convey("When the PNG is grayscale", func() {
			info, err := media.InspectImage(media.Upload{Filename: "gray.png", Data: encodePNG(image.NewGray(image.Rect(0, 0, 3, 2)))})

			Convey("Then the mode should be L", func() {
				So(err, ShouldBeNil)
				So(info.Mode, ShouldEqual, "L")
				So(info.Size(), ShouldResemble, [2]int{3, 2})
			})
		})

		Convey("When the upload is a JPEG", func() {
			var buf bytes.Buffer
			So(jpeg.Encode(&buf, solidRGBA(16, 9, color.RGBA{R: 200, G: 10, B: 10, A: 255}), nil), ShouldBeNil)
			info, err := media.InspectImage(media.Upload{Filename: "photo.jpg", Data: buf.Bytes()})

			Convey("Then it should report JPEG in RGB mode", func() {
				So(err, ShouldBeNil)
				So(info.Format, ShouldEqual, "JPEG")
				So(info.Mode, ShouldEqual, "RGB")
				So(info.Width, ShouldEqual, 16)
				So(info.Height, ShouldEqual, 9)
			})
		})

		Convey("When the upload is a GIF", func() {
			var buf bytes.Buffer
			pal := image.NewPaletted(image.Rect(0, 0, 5, 7), color.Palette{color.Black, color.White})
			So(gif.Encode(&buf, pal, nil), ShouldBeNil)
			info, err := media.InspectImage(media.Upload{Filename: "anim.gif", Data: buf.Bytes()})

			Convey("Then it should report GIF in palette mode", func() {
				So(err, ShouldBeNil)
				So(info.Format, ShouldEqual, "GIF")
				So(info.Mode, ShouldEqual, "P")
				So(info.Size(), ShouldResemble, [2]int{5, 7})
			})
		})

		Convey("When the bytes are not an image", func() {
			_, err := media.InspectImage(media.Upload{Filename: "notes.txt", Data: []byte("definitely not an image")})

			Convey("Then it should fail with the unsupported image kind", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, media.ErrUnsupportedImage), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "notes.txt")
			})
		})

		Convey("When a PNG is truncated after its signature", func() {
			data := encodePNG(solidRGBA(10, 10, color.RGBA{A: 255}))[:12]
			_, err := media.InspectImage(media.Upload{Filename: "broken.png", Data: data})

			Convey("Then it should fail without panicking", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "png")
			})
		})

		Convey("When the upload is empty", func() {
			_, err := media.InspectImage(media.Upload{Filename: "empty.png"})

			Convey("Then it should fail with the empty upload kind", func() {
				So(errors.Is(err, media.ErrEmptyUpload), ShouldBeTrue)
			})
		})
	})
}

func TestInspectFile(t *testing.T) {
	Convey("Given opaque media uploads", t, func() {
		Convey("When the client declared a content type", func() {
			data := []byte{0x00, 0x01, 0x02, 0x03, 0x04}
			info := media.InspectFile(media.Upload{Filename: "clip.mp3", ContentType: "audio/mpeg", Data: data})

			Convey("Then the declared type and exact size should be reported", func() {
				So(info.Filename, ShouldEqual, "clip.mp3")
				So(info.ContentType, ShouldEqual, "audio/mpeg")
				So(info.SizeBytes, ShouldEqual, 5)
				So(info.DetectedContentType, ShouldNotBeEmpty)
			})
		})

		Convey("When the client sent no content type", func() {
			wav := append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), make([]byte, 32)...)
			info := media.InspectFile(media.Upload{Filename: "tone.wav", Data: wav})

			Convey("Then only the detected type should be set", func() {
				So(info.DetectedContentType, ShouldEqual, "audio/wav")
				So(info.ContentType, ShouldBeEmpty)
				So(info.SizeBytes, ShouldEqual, len(wav))
			})
		})

		Convey("When the upload is empty", func() {
			info := media.InspectFile(media.Upload{Filename: "silence.wav", ContentType: "audio/wav"})

			Convey("Then size should be zero and no error occurs", func() {
				So(info.SizeBytes, ShouldEqual, 0)
				So(info.ContentType, ShouldEqual, "audio/wav")
			})
		})
	})
}

func TestMultimodalInputPresent(t *testing.T) {
	Convey("Given multimodal inputs", t, func() {
		Convey("When nothing is set", func() {
			Convey("Then the present list should be empty, not nil", func() {
				present := media.MultimodalInput{}.Present()
				So(present, ShouldNotBeNil)
				So(present, ShouldBeEmpty)
			})
		})

		Convey("When every modality is set", func() {
			in := media.MultimodalInput{
				Text:  "hi",
				Image: &media.Upload{},
				Audio: &media.Upload{},
				Video: &media.Upload{},
			}

			Convey("Then they should be listed in fixed order", func() {
				So(in.Present(), ShouldResemble, []media.Modality{media.Text, media.Image, media.Audio, media.Video})
			})
		})

		Convey("When only audio and text are set", func() {
			in := media.MultimodalInput{Audio: &media.Upload{}, Text: "x"}

			Convey("Then text should still come first", func() {
				So(in.Present(), ShouldResemble, []media.Modality{media.Text, media.Audio})
			})
		})
	})
}
