package run

import (
	"io"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/aymanbagabas/go-pty"
	"golang.org/x/term"
)

type process struct {
	out     io.Reader
	echo    bool // out is copied to stdout already
	proc    *os.Process
	done    chan struct{}
	status  int
	cleanup func()
}

func (p *process) kill() {
	if err := processGroupKill(p.proc); err != nil {
		log.Println(err)
	}
}

func (p *process) killAfter(d time.Duration) {
	select {
	case <-p.done:
	case <-time.After(d):
		p.kill()
	}
}

// wait returns the exit status, -1 if the emulator was killed by a signal.
func (p *process) wait() int {
	<-p.done
	return p.status
}

func (p *process) reap(wait func() (*os.ProcessState, error)) {
	state, err := wait()
	if state != nil {
		p.status = state.ExitCode()
	} else {
		log.Println(err)
		p.status = -1
	}
	close(p.done)
}

// startPipe runs argv with stdout and stderr merged into one pipe.
func startPipe(argv []string) (*process, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = w
	cmd.Stderr = w
	processGroupEnable(cmd)
	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	w.Close()

	p := &process{out: r, proc: cmd.Process, done: make(chan struct{})}
	p.cleanup = func() { r.Close() }
	go p.reap(func() (*os.ProcessState, error) {
		err := cmd.Wait()
		return cmd.ProcessState, err
	})
	return p, nil
}

// startPty runs argv on a pseudo terminal, so the target sees an
// interactive console. The local terminal is switched to raw mode to pass
// single key presses to SYS_READC.
func startPty(argv []string) (*process, error) {
	ptmx, err := pty.New()
	if err != nil {
		return nil, err
	}
	fd := int(os.Stdin.Fd())
	if w, h, err := term.GetSize(fd); err == nil {
		ptmx.Resize(w, h)
	}
	cmd := ptmx.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		ptmx.Close()
		return nil, err
	}

	restore := func() {}
	if state, err := term.MakeRaw(fd); err == nil {
		restore = func() { term.Restore(fd, state) }
	}
	go io.Copy(ptmx, os.Stdin)

	p := &process{
		out:  io.TeeReader(ptmx, os.Stdout),
		echo: true,
		proc: cmd.Process,
		done: make(chan struct{}),
	}
	p.cleanup = restore
	go func() {
		p.reap(func() (*os.ProcessState, error) {
			err := cmd.Wait()
			return cmd.ProcessState, err
		})
		// let the scanner drain the pty before closing it
		time.Sleep(100 * time.Millisecond)
		ptmx.Close()
	}()
	return p, nil
}
