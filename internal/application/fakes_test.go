package app

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"puzzle-bot/internal/domain/entity"
	"puzzle-bot/internal/infrastructure/imagecodec"
	"puzzle-bot/internal/infrastructure/render"
	"puzzle-bot/internal/infrastructure/storage"
	"puzzle-bot/internal/infrastructure/vision"
)

type fakeStream struct {
	frame   image.Image
	snapErr error
	stops   int
}

func (s *fakeStream) Snapshot() (image.Image, error) {
	if s.snapErr != nil {
		return nil, s.snapErr
	}
	return s.frame, nil
}

func (s *fakeStream) Stop() error {
	s.stops++
	return nil
}

type fakeCamera struct {
	err     error
	opened  []*fakeStream
	snapErr error
}

func (c *fakeCamera) RequestStream(ctx context.Context) (entity.CameraSession, error) {
	if c.err != nil {
		return nil, c.err
	}
	s := &fakeStream{frame: testFrame(64, 48), snapErr: c.snapErr}
	c.opened = append(c.opened, s)
	return s, nil
}

func (c *fakeCamera) last() *fakeStream {
	return c.opened[len(c.opened)-1]
}

type fakeFiles struct {
	files map[string][]byte
}

func (f *fakeFiles) ReadFile(ctx context.Context, ref string) ([]byte, error) {
	data, ok := f.files[ref]
	if !ok {
		return nil, fmt.Errorf("file %s not found", ref)
	}
	return data, nil
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(ctx context.Context, img *entity.CapturedImage) (*entity.AnalysisResult, error) {
	return nil, errors.New("model unavailable")
}

// fakeView записывает вызовы отображения
type fakeView struct {
	mu       sync.Mutex
	events   []string
	rendered []byte
	details  entity.Details
	images   []*entity.CapturedImage
}

func (v *fakeView) record(event string) {
	v.mu.Lock()
	v.events = append(v.events, event)
	v.mu.Unlock()
}

func (v *fakeView) SetCameraButton(label string) { v.record("button:" + label) }
func (v *fakeView) ShowPreview(visible bool)     { v.record(fmt.Sprintf("preview:%v", visible)) }
func (v *fakeView) SetAnalyzeEnabled(enabled bool) {
	v.record(fmt.Sprintf("analyze:%v", enabled))
}
func (v *fakeView) ShowProcessing(visible bool) { v.record(fmt.Sprintf("processing:%v", visible)) }
func (v *fakeView) Alert(message string)        { v.record("alert:" + message) }

func (v *fakeView) ShowImage(img *entity.CapturedImage) {
	v.mu.Lock()
	v.images = append(v.images, img)
	v.mu.Unlock()
	v.record("image")
}

func (v *fakeView) ShowResults(rendered []byte, details entity.Details) {
	v.mu.Lock()
	v.rendered = rendered
	v.details = details
	v.mu.Unlock()
	v.record("results")
}

func (v *fakeView) Events() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.events...)
}

func testFrame(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testFrame(w, h)))
	return buf.Bytes()
}

// oversizedPNG заголовок PNG с огромными размерами и без данных пикселей
func oversizedPNG(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8], ihdr[9] = 8, 6
	for _, chunk := range []struct {
		kind string
		data []byte
	}{{"IHDR", ihdr}, {"IDAT", []byte{0x78, 0x9c, 0x03, 0x00}}, {"IEND", nil}} {
		_ = binary.Write(&buf, binary.BigEndian, uint32(len(chunk.data)))
		body := append([]byte(chunk.kind), chunk.data...)
		buf.Write(body)
		_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(body))
	}
	return buf.Bytes()
}

type harness struct {
	camera *fakeCamera
	files  *fakeFiles
	view   *fakeView
	deps   Deps
	ctrl   *Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	codec := imagecodec.New()
	h := &harness{
		camera: &fakeCamera{},
		files:  &fakeFiles{files: map[string][]byte{}},
		view:   &fakeView{},
	}
	h.deps = Deps{
		Sessions:  storage.NewMemorySessionRepository(),
		Camera:    h.camera,
		Files:     h.files,
		Codec:     codec,
		Analyzer:  &vision.SimulatedAnalyzer{Delay: 10 * time.Millisecond, Count: 5, Radius: 20},
		Describer: vision.NewDemoDescriber(),
		Renderer:  NewRenderer(codec, render.NewFactory(render.DefaultStyle)),
	}

	session, err := h.deps.Sessions.Get(context.Background(), 42)
	require.NoError(t, err)
	h.ctrl = NewController(session, h.view, h.deps)
	return h
}
