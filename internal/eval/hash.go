package eval

import (
	"encoding/binary"
	"fmt"

	"github.com/minio/highwayhash"
)

// hashKey is a fixed all-zero HighwayHash key: Value.Hash is used only to
// bucket Dict entries within one process, never as a persisted or
// cross-process digest, so a fixed key is fine and keeps hashing
// deterministic across runs (useful for tests).
var hashKey = make([]byte, 32)

// Hash returns a process-local digest of v, used by DictData to bucket
// entries. Only variants with an immutable, comparable shape are hashable;
// everything else returns ErrInvalidData, mirroring value/mod.rs's Hash
// impl, which panics on the same set of variants.
func (v Value) Hash() (uint64, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	write := func(tag byte, b []byte) {
		h.Write([]byte{tag})
		h.Write(b)
	}
	writeU64 := func(tag byte, n uint64) {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], n)
		write(tag, buf[:])
	}

	switch v.kind {
	case KindString:
		s, _ := v.AsString()
		write('s', []byte(s))
	case KindInteger:
		i, _ := v.AsInteger()
		write('i', i.Bytes())
		if i.Sign() < 0 {
			write('-', nil)
		}
	case KindBool:
		b, _ := v.AsBool()
		n := byte(0)
		if b {
			n = 1
		}
		write('b', []byte{n})
	case KindTime:
		t, _ := v.AsTime()
		writeU64('t', uint64(t.UnixNano()))
	case KindDuration:
		d, _ := v.AsDuration()
		writeU64('d', uint64(d))
	case KindEmpty:
		write('e', nil)
	case KindField:
		f, _ := v.AsField()
		write('f', nil)
		for _, seg := range f {
			write('.', []byte(seg))
		}
	case KindGlob:
		g, _ := v.AsGlob()
		write('g', []byte(g))
	case KindRegex:
		p, _, _ := v.AsRegex()
		write('r', []byte(p))
	case KindFile:
		p, _ := v.AsFile()
		write('p', []byte(p))
	case KindBinary:
		b, _ := v.AsBinary()
		write('B', b)
	case KindType:
		write('T', []byte(v.Type().String()))
	case KindCommand:
		// Commands carry no comparable content; every Command hashes
		// identically, so they collide into one Dict bucket and fall
		// back to Equal (which is always false across distinct
		// Commands) to tell them apart.
		write('c', nil)
	case KindStruct:
		s, _ := v.AsStruct()
		write('T', []byte("struct"))
		for _, name := range s.Names() {
			fv, _ := s.Get(name)
			fh, err := fv.Hash()
			if err != nil {
				return 0, err
			}
			write('n', []byte(name))
			writeU64('v', fh)
		}
	default:
		return 0, fmt.Errorf("%w: %s is not hashable", ErrInvalidData, v.kind)
	}

	return h.Sum64(), nil
}
