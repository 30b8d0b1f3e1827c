package tts

import (
	"path/filepath"

	"github.com/Gyro1978/Dacoola-sub001/pkg/fsutil"
)

// writeFile persists audio bytes under dir/filename, creating dir if
// needed and writing atomically so a concurrent reader never observes a
// partially-written audio file.
func writeFile(dir, filename string, data []byte) error {
	if err := fsutil.EnsureDir(dir); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(filepath.Join(dir, filename), data, 0o644)
}
