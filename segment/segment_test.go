package segment

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-shmem/shmarena/ptr"
)

func uniqueName(t *testing.T) string {
	return fmt.Sprintf("/shmarena-test-%s-%p", t.Name(), t)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, validateName("/a"))
	assert.ErrorIs(t, validateName(""), ErrInvalidName)
	assert.ErrorIs(t, validateName("a"), ErrInvalidName)
	assert.ErrorIs(t, validateName("/"), ErrInvalidName)
	assert.ErrorIs(t, validateName("/a/b"), ErrInvalidName)
	assert.ErrorIs(t, validateName("/a\x00b"), ErrInvalidName)
}

func TestCreateOpenAndClose(t *testing.T) {
	name := uniqueName(t)
	defer Remove(name)

	s, err := Open(name, 4096, CreateOnly)
	require.NoError(t, err)
	require.True(t, s.IsValid())
	assert.Equal(t, 4096, s.Size())
	require.NoError(t, s.Close())
	assert.False(t, s.IsValid())

	s2, err := Open(name, 4096, OpenOnly)
	require.NoError(t, err)
	assert.Equal(t, 4096, s2.Size())
	require.NoError(t, s2.Close())
}

func TestCreateOnlyFailsIfAlreadyExists(t *testing.T) {
	name := uniqueName(t)
	defer Remove(name)

	s1, err := Open(name, 1024, CreateOnly)
	require.NoError(t, err)
	defer s1.Close()

	_, err = Open(name, 1024, CreateOnly)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestOpenOnlyFailsIfMissing(t *testing.T) {
	name := uniqueName(t)
	_, err := Open(name, 1024, OpenOnly)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenOrCreateIdempotent(t *testing.T) {
	name := uniqueName(t)
	defer Remove(name)

	s1, err := Open(name, 2048, OpenOrCreate)
	require.NoError(t, err)
	defer s1.Close()

	s2, err := Open(name, 2048, OpenOrCreate)
	require.NoError(t, err)
	defer s2.Close()

	assert.Equal(t, s1.Size(), s2.Size())
}

func TestOpenSizeMismatch(t *testing.T) {
	name := uniqueName(t)
	defer Remove(name)

	s1, err := Open(name, 4096, CreateOnly)
	require.NoError(t, err)
	defer s1.Close()

	_, err = Open(name, 8192, OpenOnly)
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

// TestOpenSmallerThanExistingExposesExisting checks that requesting a
// size smaller than an already-existing segment is allowed: the caller
// gets the existing, larger mapping rather than a mismatch error.
func TestOpenSmallerThanExistingExposesExisting(t *testing.T) {
	name := uniqueName(t)
	defer Remove(name)

	s1, err := Open(name, 4096, CreateOnly)
	require.NoError(t, err)
	defer s1.Close()

	s2, err := Open(name, 1024, OpenOnly)
	require.NoError(t, err)
	defer s2.Close()
	assert.Equal(t, 4096, s2.Size())
}

func TestBindMakesHandleDecodeAcrossMappings(t *testing.T) {
	type relocTag struct{}
	name := uniqueName(t)
	defer Remove(name)

	writer, err := Open(name, 4096, CreateOnly)
	require.NoError(t, err)
	defer writer.Close()

	Bind[relocTag](writer)
	var v int32 = 42
	target := (*int32)(unsafe.Pointer(&writer.Bytes()[0]))
	*target = v

	var p ptr.SegmentPtr[int32, relocTag, uint32]
	p.Set(target)

	reader, err := Open(name, 4096, OpenOnly)
	require.NoError(t, err)
	defer reader.Close()

	Bind[relocTag](reader)
	assert.EqualValues(t, v, *p.Get())
}

func TestRemoveMissingIsIdempotent(t *testing.T) {
	name := uniqueName(t)
	assert.NoError(t, Remove(name))
}
