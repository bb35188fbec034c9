package browser

import (
	"errors"
	"io"
	"os/exec"
	"runtime"
)

// ErrNoURL is returned when there is nothing to open
var ErrNoURL = errors.New("no URL to open")

var (
	execCommand = exec.Command
	lookPath    = exec.LookPath
)

// Open launches the platform URL handler for url and returns once it has
// been started.
func Open(url string) error {
	if url == "" {
		return ErrNoURL
	}
	cmd, args, err := commandForOpen(runtime.GOOS, url)
	if err != nil {
		return err
	}
	c := execCommand(cmd, args...)
	c.Stdout = io.Discard
	c.Stderr = io.Discard
	if err := c.Start(); err != nil {
		return err
	}
	go func() { _ = c.Wait() }()
	return nil
}

func commandForOpen(goos string, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		if _, err := lookPath("xdg-open"); err == nil {
			return "xdg-open", []string{url}, nil
		}
		if _, err := lookPath("gio"); err == nil {
			return "gio", []string{"open", url}, nil
		}
		return "", nil, errors.New("no URL opener found (need xdg-open or gio)")
	}
}
