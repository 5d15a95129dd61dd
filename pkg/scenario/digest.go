package scenario

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest fingerprints the bit patterns of every result in order. Entity IDs
// are left out so identical scenarios hash identically across runs.
func Digest(results []Result) uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 32)

	for _, res := range results {
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint32(buf, uint32(res.Index))
		buf = append(buf, byte(res.KindA), byte(res.KindB))
		if res.Collided {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(res.Normal.X))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(res.Normal.Y))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(res.Penetration))

		_, _ = h.Write(buf)
		_, _ = h.WriteString(res.Name)
	}
	return h.Sum64()
}
