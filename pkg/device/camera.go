// Package device connects the capture loop to real hardware through OpenCV:
// [Camera] reads frames from a webcam, video file, or stream URL, and
// [Window] shows raw frames in an OS window and watches for the quit key.
package device

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gocv.io/x/gocv"

	"github.com/matzehuels/asciicam/pkg/errors"
	"github.com/matzehuels/asciicam/pkg/frame"
	"github.com/matzehuels/asciicam/pkg/source"
)

// CameraConfig selects and configures a capture device.
type CameraConfig struct {
	// Device is a camera index ("0") or a file path / URL.
	Device string

	// Width and Height request a capture resolution. Zero keeps the
	// device default. Drivers may pick the nearest supported mode.
	Width  int
	Height int
}

// Camera is a [source.Source] backed by an OpenCV VideoCapture.
type Camera struct {
	cfg CameraConfig

	capture *gocv.VideoCapture
	raw     gocv.Mat
	rgb     gocv.Mat
}

// NewCamera creates a camera source. Nothing is opened until Open.
func NewCamera(cfg CameraConfig) *Camera {
	if cfg.Device == "" {
		cfg.Device = "0"
	}
	return &Camera{cfg: cfg}
}

// Open acquires the device. It fails if the device cannot be opened or
// reports itself as not opened.
func (c *Camera) Open(ctx context.Context) error {
	if c.capture != nil {
		return nil
	}
	if err := errors.ValidateDevice(c.cfg.Device); err != nil {
		return errors.Wrap(errors.ErrCodeDeviceUnavailable, err, "invalid device")
	}

	var target any = c.cfg.Device
	if errors.IsDeviceIndex(c.cfg.Device) {
		id, _ := strconv.Atoi(strings.TrimSpace(c.cfg.Device))
		target = id
	}

	vc, err := gocv.OpenVideoCapture(target)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDeviceUnavailable, err, "open device %s", c.cfg.Device)
	}
	if !vc.IsOpened() {
		vc.Close()
		return errors.New(errors.ErrCodeDeviceUnavailable, "device %s is not available", c.cfg.Device)
	}

	if c.cfg.Width > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(c.cfg.Width))
	}
	if c.cfg.Height > 0 {
		vc.Set(gocv.VideoCaptureFrameHeight, float64(c.cfg.Height))
	}

	c.capture = vc
	c.raw = gocv.NewMat()
	c.rgb = gocv.NewMat()
	return nil
}

// Read grabs the next frame and converts it from OpenCV's BGR layout to RGB.
// A failed grab or an empty image is reported as io.EOF.
func (c *Camera) Read(ctx context.Context) (*frame.Frame, error) {
	if c.capture == nil {
		return nil, errors.New(errors.ErrCodeFrameRead, "device not open")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ok := c.capture.Read(&c.raw); !ok || c.raw.Empty() {
		return nil, io.EOF
	}

	code, err := toRGB(c.raw.Channels())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFrameRead, err, "device %s", c.cfg.Device)
	}
	gocv.CvtColor(c.raw, &c.rgb, code)
	if c.rgb.Empty() {
		return nil, errors.New(errors.ErrCodeFrameRead, "color conversion produced an empty frame")
	}

	return &frame.Frame{
		Width:  c.rgb.Cols(),
		Height: c.rgb.Rows(),
		Pix:    c.rgb.ToBytes(),
	}, nil
}

// Close releases the capture device and frame buffers.
func (c *Camera) Close() error {
	if c.capture == nil {
		return nil
	}
	err := c.capture.Close()
	c.raw.Close()
	c.rgb.Close()
	c.capture = nil
	return err
}

// String describes the device for log output.
func (c *Camera) String() string {
	return fmt.Sprintf("camera(%s)", c.cfg.Device)
}

func toRGB(channels int) (gocv.ColorConversionCode, error) {
	switch channels {
	case 1:
		return gocv.ColorGrayToRGB, nil
	case 3:
		return gocv.ColorBGRToRGB, nil
	case 4:
		return gocv.ColorBGRAToRGB, nil
	default:
		return 0, fmt.Errorf("unsupported channel count %d", channels)
	}
}

// Ensure Camera implements source.Source.
var _ source.Source = (*Camera)(nil)
