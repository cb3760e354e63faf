package encoder

import (
	"fmt"
	"io"
	"log"
	"runtime"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/richinsley/curlflow/options"
)

// Frame represents a single rendered video frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Encoder pipes raw RGBA frames from the offscreen renderer into an ffmpeg
// child process. The producer calls Send per frame and Close when done;
// Run is the consumer and must run on its own goroutine.
type Encoder struct {
	frames chan *Frame
	pipe   *io.PipeWriter
	ffErr  chan error
	done   chan error
}

func New(opts *options.Options) (*Encoder, error) {
	e := &Encoder{
		frames: make(chan *Frame, 5),
		ffErr:  make(chan error, 1),
		done:   make(chan error, 1),
	}

	pipeReader, pipeWriter := io.Pipe()
	e.pipe = pipeWriter

	inputArgs := ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", *opts.Width, *opts.Height),
		"framerate": *opts.FPS,
	}
	outputArgs := outputArgsFor(*opts.Codec, runtime.GOOS)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	go func() {
		e.ffErr <- ffmpegCmd.Run()
	}()

	return e, nil
}

// outputArgsFor prefers the platform's hardware encoder and falls back to
// software elsewhere.
func outputArgsFor(codec, goos string) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{
		// GL readback rows are bottom-up
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"b:v":     "25M",
	}

	switch goos {
	case "linux":
		log.Println("Using Linux (NVENC) hardware acceleration.")
		if codec == "hevc" {
			args["c:v"] = "hevc_nvenc"
		} else {
			args["c:v"] = "h264_nvenc"
		}
		args["preset"] = "p2"
	case "darwin":
		log.Println("Using macOS (VideoToolbox) hardware acceleration.")
		if codec == "hevc" {
			args["c:v"] = "hevc_videotoolbox"
		} else {
			args["c:v"] = "h264_videotoolbox"
		}
	default:
		log.Println("Using software encoding pipeline (no hardware acceleration).")
		if codec == "hevc" {
			args["c:v"] = "libx265"
		} else {
			args["c:v"] = "libx264"
		}
	}

	if codec == "hevc" {
		args["tag:v"] = "hvc1"
	}
	return args
}

// Run is the consumer: it writes frames to ffmpeg until the channel closes,
// then closes the pipe and waits for the child to finish.
func (e *Encoder) Run() {
	var err error
	for frame := range e.frames {
		if err != nil {
			continue // drain after a pipe failure
		}
		if _, werr := e.pipe.Write(frame.Pixels); werr != nil {
			err = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, werr)
			log.Print(err)
		}
	}

	e.pipe.Close()
	ffErr := <-e.ffErr
	if err == nil {
		err = ffErr
	}
	e.done <- err
}

func (e *Encoder) Send(f *Frame) {
	e.frames <- f
}

// Close signals end of stream and returns the first error the consumer or
// ffmpeg reported.
func (e *Encoder) Close() error {
	close(e.frames)
	return <-e.done
}
