package media

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"
)

const defaultPlayer = "mpv --fs --really-quiet"

// Player launches an external video player for an item.
type Player struct {
	argv []string
}

// NewPlayer parses a shell-style command line such as "mpv --fs".
func NewPlayer(cmdline string) (*Player, error) {
	if strings.TrimSpace(cmdline) == "" {
		cmdline = defaultPlayer
	}
	argv, err := shellwords.Parse(cmdline)
	if err != nil {
		return nil, fmt.Errorf("parse player command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("player command is empty")
	}
	return &Player{argv: argv}, nil
}

// Name returns the player executable's base name.
func (p *Player) Name() string {
	return filepath.Base(p.argv[0])
}

// Args returns the full argument vector used to play item.
func (p *Player) Args(item Item) []string {
	args := make([]string, 0, len(p.argv)+1)
	args = append(args, p.argv...)
	return append(args, item.Target())
}

// Command returns an unstarted command that plays item.
func (p *Player) Command(item Item) *exec.Cmd {
	args := p.Args(item)
	return exec.Command(args[0], args[1:]...)
}
