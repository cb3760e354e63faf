package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/richinsley/curlflow/glfwcontext"
	"github.com/richinsley/curlflow/options"
	"github.com/richinsley/curlflow/renderer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.Options{}

	opts.Width = flag.Int("width", 1280, "Width of the window or recorded output")
	opts.Height = flag.Int("height", 720, "Height of the window or recorded output")
	opts.SimSize = flag.Int("simsize", 1024, "Resolution of the square feedback textures")
	opts.ImageFile = flag.String("image", "", "Source image to warp (png/jpeg/gif/bmp/webp); empty uses a built-in plate")
	opts.TimeMode = flag.Bool("timemode", false, "Drive the noise field's third coordinate with a timer")
	opts.NoiseScale = flag.Float64("noisescale", 4.0, "Initial noise scale")
	opts.OffsetScale = flag.Float64("offsetscale", 0, "Initial offset step scale (or time scale in timemode); 0 selects the mode default")
	var help = flag.Bool("help", false, "Show help message")

	// Recording flags
	opts.Record = flag.Bool("record", false, "Enable recording mode")
	opts.Duration = flag.Float64("duration", 10.0, "Duration to record in seconds")
	opts.FPS = flag.Int("fps", 60, "Frames per second for recording")
	opts.OutputFile = flag.String("output", "output.mp4", "Output file name for recording")
	opts.Codec = flag.String("codec", "h264", "Video codec for recording (h264 or hevc)")
	opts.FFMPEGPath = flag.String("ffmpeg", "", "Path to ffmpeg executable")
	opts.NumPBOs = flag.Int("numpbos", 3, "Number of pixel buffers in the readback ring")

	flag.Parse()

	if *help {
		fmt.Println("Curl-noise feedback effect")
		flag.PrintDefaults()
		return
	}

	if *opts.OffsetScale == 0 {
		if *opts.TimeMode {
			*opts.OffsetScale = 1.0
		} else {
			*opts.OffsetScale = 0.002
		}
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	// record mode still needs a context, just not a visible window
	ctx, err := glfwcontext.New(*opts.Width, *opts.Height, "curlflow", !*opts.Record)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}

	r, err := renderer.NewRenderer(opts, ctx)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	if err := r.InitScene(); err != nil {
		log.Fatalf("Failed to initialize scene: %v", err)
	}

	if *opts.Record {
		log.Println("Starting offscreen render loop...")
		if err := r.RunOffscreen(); err != nil {
			log.Fatalf("Offscreen rendering failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
	} else {
		log.Println("Starting interactive render loop...")
		r.Run()
	}
}
