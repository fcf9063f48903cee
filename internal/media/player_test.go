package media

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlayer_Args(t *testing.T) {
	tests := []struct {
		name    string
		cmdline string
		item    Item
		want    []string
	}{
		{
			name:    "local path",
			cmdline: "mpv --fs",
			item:    Item{Path: "/media/usb/a b.mp4", Src: "file:///media/usb/a%20b.mp4"},
			want:    []string{"mpv", "--fs", "/media/usb/a b.mp4"},
		},
		{
			name:    "remote src",
			cmdline: `vlc --play-and-exit --video-title "The Guide"`,
			item:    Item{Src: "https://example.com/w.mp4"},
			want:    []string{"vlc", "--play-and-exit", "--video-title", "The Guide", "https://example.com/w.mp4"},
		},
		{
			name:    "default",
			cmdline: "  ",
			item:    Item{Path: "/x.mkv"},
			want:    []string{"mpv", "--fs", "--really-quiet", "/x.mkv"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlayer(tt.cmdline)
			if err != nil {
				t.Fatalf("NewPlayer: %v", err)
			}
			if diff := cmp.Diff(tt.want, p.Args(tt.item)); diff != "" {
				t.Fatalf("args mismatch (-want +got):\n%s", diff)
			}
			cmd := p.Command(tt.item)
			if diff := cmp.Diff(tt.want, cmd.Args); diff != "" {
				t.Fatalf("cmd.Args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewPlayer_Errors(t *testing.T) {
	if _, err := NewPlayer(`mpv "unterminated`); err == nil {
		t.Fatalf("NewPlayer with bad quoting returned nil error")
	}
}

func TestPlayer_Name(t *testing.T) {
	p, _ := NewPlayer("/usr/bin/mpv --fs")
	if p.Name() != "mpv" {
		t.Fatalf("Name = %q, want mpv", p.Name())
	}
}
