//go:build windows

package segment

import (
	"strings"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// platformHandle is the kernel handle to the file mapping object. Unlike
// the POSIX path, Windows keeps this handle open for the life of the
// mapping: closing it (after UnmapViewOfFile) is what lets the OS
// garbage-collect the mapping once every process has let go of it.
type platformHandle = windows.Handle

func mappingName(name string) string {
	return `Global\shmarena` + strings.ReplaceAll(name, "/", "_")
}

func openPlatform(name string, size int, mode Mode) (data []byte, handle platformHandle, created bool, err error) {
	wname, werr := windows.UTF16PtrFromString(mappingName(name))
	if werr != nil {
		return nil, 0, false, errors.Wrap(werr, "segment: encode name")
	}

	switch mode {
	case OpenOnly:
		// A zero-size open-only request would need the section's true
		// max-size queried back (see DESIGN.md) to know how many bytes to
		// slice after mapping; unimplemented on this path, so it is
		// rejected rather than returning a mismatched or zero-length slice.
		if size == 0 {
			return nil, 0, false, errors.New("segment: OpenOnly on Windows requires a known size")
		}
		h, oerr := windows.OpenFileMapping(windows.FILE_MAP_ALL_ACCESS, false, wname)
		if oerr != nil {
			return nil, 0, false, ErrNotFound
		}
		handle = h
	default: // CreateOnly, OpenOrCreate
		sizeHigh := uint32(uint64(size) >> 32)
		sizeLow := uint32(uint64(size) & 0xFFFFFFFF)
		h, cerr := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, sizeHigh, sizeLow, wname)
		if cerr != nil {
			return nil, 0, false, errors.Wrap(cerr, "segment: CreateFileMapping")
		}
		alreadyExisted := windows.GetLastError() == windows.ERROR_ALREADY_EXISTS
		if alreadyExisted && mode == CreateOnly {
			windows.CloseHandle(h)
			return nil, 0, false, ErrAlreadyExists
		}
		handle = h
		created = !alreadyExisted
	}

	addr, merr := windows.MapViewOfFile(handle, windows.FILE_MAP_ALL_ACCESS, 0, 0, uintptr(size))
	if merr != nil {
		windows.CloseHandle(handle)
		return nil, 0, false, errors.Wrap(merr, "segment: MapViewOfFile")
	}

	data = unsafe.Slice((*byte)(unsafe.Pointer(addr)), size) //nolint:govet // mapped view, not heap memory
	if created {
		clear(data)
	}
	return data, handle, created, nil
}

func closePlatform(handle platformHandle, data []byte) error {
	if len(data) > 0 {
		if err := windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&data[0]))); err != nil {
			return errors.Wrap(err, "segment: UnmapViewOfFile")
		}
	}
	if err := windows.CloseHandle(handle); err != nil {
		return errors.Wrap(err, "segment: CloseHandle")
	}
	return nil
}

// removePlatform is a no-op on Windows: named file mappings have no
// unlink operation, they disappear once the last handle to them closes.
func removePlatform(string) error { return nil }
