package extract

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// requirement names an external binary the extraction stage shells out to.
type requirement struct {
	name   string
	binary string
}

// preflight verifies external binaries and directory permissions before any
// ffmpeg process is started, so a misconfigured run fails fast instead of
// partway through the archive.
func (e *Extractor) preflight() error {
	requirements := []requirement{
		{name: "ffmpeg", binary: e.cfg.Extraction.FFmpegBinary},
		{name: "ffprobe", binary: e.cfg.Extraction.FFprobeBinary},
	}
	var missing []string
	for _, req := range requirements {
		if _, err := exec.LookPath(req.binary); err != nil {
			missing = append(missing, fmt.Sprintf("%s (%s)", req.name, req.binary))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required binaries: %s", strings.Join(missing, ", "))
	}

	if err := checkDirAccess(e.cfg.Paths.VideoDir, false); err != nil {
		return fmt.Errorf("video directory: %w", err)
	}
	if err := checkDirAccess(e.cfg.Paths.AudioDir, true); err != nil {
		return fmt.Errorf("audio directory: %w", err)
	}
	if err := checkDirAccess(e.cfg.Paths.LogDir, true); err != nil {
		return fmt.Errorf("log directory: %w", err)
	}
	return nil
}

// checkDirAccess confirms the path is a directory the current user can
// traverse, and optionally write.
func checkDirAccess(path string, write bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	mode := uint32(unix.R_OK | unix.X_OK)
	if write {
		mode |= unix.W_OK
	}
	if err := unix.Access(path, mode); err != nil {
		if write {
			return fmt.Errorf("%s is not writable: %w", path, err)
		}
		return fmt.Errorf("%s is not readable: %w", path, err)
	}
	return nil
}
