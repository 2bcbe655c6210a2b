package memo

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/zeebo/blake3"

	"github.com/rowspace/colfilter/core/colfilter/constraint"
)

// Key computes a stable content hash of a constraint applied against a
// named column, for use as a TTLCache key. Two logically identical
// constraints hash identically regardless of how the caller constructed
// them.
func Key(columnName string, c constraint.Constraint) string {
	buf := make([]byte, 0, len(columnName)+10)
	buf = append(buf, columnName...)
	buf = append(buf, byte(c.Op), byte(c.Value.Kind))

	var v uint64
	switch c.Value.Kind {
	case constraint.KindInt64:
		v = uint64(c.Value.I)
	case constraint.KindUint64:
		v = c.Value.U
	case constraint.KindFloat64:
		v = math.Float64bits(c.Value.F)
	}
	var vbuf [8]byte
	binary.LittleEndian.PutUint64(vbuf[:], v)
	buf = append(buf, vbuf[:]...)

	sum := blake3.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
