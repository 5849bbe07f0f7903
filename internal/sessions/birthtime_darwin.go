//go:build darwin

package sessions

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func creationTime(path string, info fs.FileInfo) time.Time {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err == nil && st.Btim.Sec > 0 {
		return time.Unix(st.Btim.Unix())
	}
	return info.ModTime()
}
