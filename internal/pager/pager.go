// Package pager pipes output through an interactive pager when the
// tool is run on a terminal, as the kernel's own dump viewers do.
package pager

import (
	"io"
	"os"
	"os/exec"
)

// Pager is a running pager process with output attached to the
// terminal.
type Pager struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// Open spawns the user's pager ($PAGER, falling back to less) with its
// stdout/stderr attached to the process's. Returned writer feeds the
// pager.
func Open() (*Pager, error) {
	name := os.Getenv("PAGER")
	if name == "" {
		name = "less"
	}

	cmd := exec.Command(name)
	if name == "less" {
		// quit if one screen, pass colors through, no init strings
		cmd = exec.Command(name, "-FRX")
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &Pager{cmd: cmd, stdin: stdin}, nil
}

// Writer returns the writer feeding the pager.
func (p *Pager) Writer() io.Writer { return p.stdin }

// Close ends the input stream and waits for the pager to exit.
func (p *Pager) Close() error {
	p.stdin.Close()
	return p.cmd.Wait()
}
