// Package fixtures loads large synthetic integer columns from xz-compressed
// binary fixture files, so benchmark- and property-style tests can ship
// realistic column sizes without bloating the repository.
package fixtures

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/rowspace/colfilter/core/errors"
)

// LoadInt64Column reads an xz-compressed stream of little-endian int64
// values from path and returns them as a slice.
func LoadInt64Column(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	xzr, err := xz.NewReader(f)
	if err != nil {
		return nil, errors.NewIO("decode xz header of", path, err)
	}

	raw, err := io.ReadAll(xzr)
	if err != nil {
		return nil, errors.NewIO("decompress", path, err)
	}
	if len(raw)%8 != 0 {
		return nil, fmt.Errorf("fixtures: %s decompresses to %d bytes, not a multiple of 8", path, len(raw))
	}

	values := make([]int64, len(raw)/8)
	for i := range values {
		values[i] = int64(binary.LittleEndian.Uint64(raw[i*8 : i*8+8]))
	}
	return values, nil
}

// WriteInt64ColumnXZ writes values as an xz-compressed little-endian int64
// stream to path. Used by tooling that regenerates fixtures; tests only
// read fixtures, they never write them.
func WriteInt64ColumnXZ(path string, values []int64) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIO("create", path, err)
	}
	defer f.Close()

	xzw, err := xz.NewWriter(f)
	if err != nil {
		return errors.NewIO("open xz writer for", path, err)
	}

	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], uint64(v))
	}
	if _, err := xzw.Write(buf); err != nil {
		xzw.Close()
		return errors.NewIO("write", path, err)
	}
	return xzw.Close()
}
