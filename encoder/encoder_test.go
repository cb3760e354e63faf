package encoder

import "testing"

func TestOutputArgsCodecSelection(t *testing.T) {
	tests := []struct {
		codec string
		goos  string
		want  string
	}{
		{"h264", "linux", "h264_nvenc"},
		{"hevc", "linux", "hevc_nvenc"},
		{"h264", "darwin", "h264_videotoolbox"},
		{"hevc", "darwin", "hevc_videotoolbox"},
		{"h264", "windows", "libx264"},
		{"hevc", "windows", "libx265"},
	}

	for _, tc := range tests {
		args := outputArgsFor(tc.codec, tc.goos)
		if args["c:v"] != tc.want {
			t.Errorf("outputArgsFor(%s, %s): c:v = %v, want %s", tc.codec, tc.goos, args["c:v"], tc.want)
		}
		if tc.codec == "hevc" && args["tag:v"] != "hvc1" {
			t.Errorf("outputArgsFor(%s, %s): missing hvc1 tag for mp4 players", tc.codec, tc.goos)
		}
	}
}

func TestOutputArgsFlipsReadback(t *testing.T) {
	args := outputArgsFor("h264", "linux")
	if args["vf"] != "vflip" {
		t.Error("raw GL readback is bottom-up and must be flipped")
	}
}
