//go:build !windows

package segment

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// platformHandle carries no state on the POSIX path: the file descriptor
// used to create and size the mapping is closed immediately after mmap,
// since the mapping itself keeps the object alive.
type platformHandle = struct{}

func shmPath(name string) string { return "/dev/shm" + name }

func openPlatform(name string, size int, mode Mode) (data []byte, handle platformHandle, created bool, err error) {
	path := shmPath(name)

	flags := unix.O_RDWR
	switch mode {
	case CreateOnly:
		flags |= unix.O_CREAT | unix.O_EXCL
	case OpenOrCreate:
		flags |= unix.O_CREAT
	case OpenOnly:
		// no O_CREAT: a missing object must fail, not spring into being.
	}

	fd, oerr := unix.Open(path, flags, 0o600)
	if oerr != nil {
		switch {
		case errors.Is(oerr, unix.ENOENT):
			return nil, handle, false, ErrNotFound
		case errors.Is(oerr, unix.EEXIST):
			return nil, handle, false, ErrAlreadyExists
		default:
			return nil, handle, false, errors.Wrap(oerr, "segment: open "+path)
		}
	}
	defer unix.Close(fd)

	var st unix.Stat_t
	if serr := unix.Fstat(fd, &st); serr != nil {
		return nil, handle, false, errors.Wrap(serr, "segment: fstat "+path)
	}

	switch {
	case st.Size == 0 && mode == OpenOnly:
		// Registered by a concurrent creator but not yet sized: treat as
		// not-yet-present so the caller's backoff loop retries.
		return nil, handle, false, ErrNotFound
	case st.Size == 0:
		if terr := unix.Ftruncate(fd, int64(size)); terr != nil {
			return nil, handle, false, errors.Wrap(terr, "segment: ftruncate "+path)
		}
		created = true
	case size != 0 && int64(size) > st.Size:
		return nil, handle, false, ErrSizeMismatch
	default:
		size = int(st.Size)
	}

	data, merr := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if merr != nil {
		return nil, handle, false, errors.Wrap(merr, "segment: mmap "+path)
	}
	adviseBestEffort(data)
	return data, handle, created, nil
}

// adviseBestEffort applies advisories that exist purely to improve the
// odds of a peer getting huge pages and to keep this region's contents
// out of core dumps; failure to apply either is never an error the
// caller should see.
func adviseBestEffort(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_DONTDUMP)
	_ = unix.Madvise(data, unix.MADV_HUGEPAGE)
}

func closePlatform(_ platformHandle, data []byte) error {
	if err := unix.Munmap(data); err != nil {
		return errors.Wrap(err, "segment: munmap")
	}
	return nil
}

func removePlatform(name string) error {
	if err := unix.Unlink(shmPath(name)); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil // idempotent: removing an absent name is success
		}
		return errors.Wrap(err, "segment: unlink "+shmPath(name))
	}
	return nil
}
