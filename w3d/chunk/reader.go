package chunk

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const HeaderSize = 8

// bit 31 of the raw size field marks chunks that contain sub chunks
const hasChildrenBit = 0x80000000

var (
	ErrUnexpectedEndOfData = errors.New("unexpected end of data")
	ErrTruncatedChunk      = errors.New("truncated chunk")
)

type Header struct {
	Type        uint32
	Size        uint32
	HasChildren bool
}

func ParseHeader(buf []byte) Header {
	raw := binary.LittleEndian.Uint32(buf[4:8])
	return Header{
		Type:        binary.LittleEndian.Uint32(buf[0:4]),
		Size:        raw &^ hasChildrenBit,
		HasChildren: raw&hasChildrenBit != 0,
	}
}

// source is the forward only cursor shared by every level of one parse.
// It knows nothing about chunk bounds, those are kept by each Reader.
type source struct {
	r       io.Reader
	pos     int64
	scratch [16]byte
}

func (s *source) read(p []byte) error {
	n, err := io.ReadFull(s.r, p)
	s.pos += int64(n)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errors.Wrapf(ErrUnexpectedEndOfData, "wanted %d bytes at 0x%x, source gave %d",
				len(p), s.pos-int64(n), n)
		}
		return errors.Wrapf(err, "source read at 0x%x", s.pos-int64(n))
	}
	return nil
}

func (s *source) discard(n int64) error {
	copied, err := io.CopyN(io.Discard, s.r, n)
	s.pos += copied
	if err != nil {
		if err == io.EOF {
			return errors.Wrapf(ErrUnexpectedEndOfData, "wanted to skip %d bytes at 0x%x, source gave %d",
				n, s.pos-copied, copied)
		}
		return errors.Wrapf(err, "source skip at 0x%x", s.pos-copied)
	}
	return nil
}

// Reader is a view of the source bounded to one chunk payload
// (or to the whole declared stream for the root reader).
type Reader struct {
	src    *source
	header Header
	end    int64
	depth  int
}

// NewReader returns the root reader. size is the declared length of the stream.
func NewReader(r io.Reader, size int64) *Reader {
	return &Reader{
		src: &source{r: r},
		end: size,
	}
}

// Header of the chunk this reader is bounded to. Zero for the root reader.
func (r *Reader) Header() Header { return r.header }
func (r *Reader) Depth() int     { return r.depth }
func (r *Reader) End() int64     { return r.end }

// Offset is the absolute position of the shared source.
func (r *Reader) Offset() int64 { return r.src.pos }

func (r *Reader) Remaining() int64 {
	return r.end - r.src.pos
}

func (r *Reader) HasMore() bool {
	return r.Remaining() > 0
}

func (r *Reader) ensure(n int) error {
	if int64(n) > r.Remaining() {
		return errors.Wrapf(ErrTruncatedChunk, "reading %d bytes at 0x%x crosses chunk end 0x%x",
			n, r.src.pos, r.end)
	}
	return nil
}

func (r *Reader) ReadHeader() (Header, error) {
	buf := r.src.scratch[:HeaderSize]
	if err := r.ensure(HeaderSize); err != nil {
		return Header{}, err
	}
	if err := r.src.read(buf); err != nil {
		return Header{}, err
	}
	return ParseHeader(buf), nil
}

// EnterChunk reads the next chunk header and returns a reader that ends
// exactly Header.Size bytes after it. The caller must finish the returned
// reader (usually with SkipRemaining) before touching r again.
func (r *Reader) EnterChunk() (*Reader, error) {
	headerOffset := r.src.pos
	h, err := r.ReadHeader()
	if err != nil {
		return nil, err
	}
	if int64(h.Size) > r.Remaining() {
		return nil, errors.Wrapf(ErrTruncatedChunk,
			"chunk 0x%.8x at 0x%x declares %d bytes, only %d left before 0x%x",
			h.Type, headerOffset, h.Size, r.Remaining(), r.end)
	}
	return &Reader{
		src:    r.src,
		header: h,
		end:    r.src.pos + int64(h.Size),
		depth:  r.depth + 1,
	}, nil
}

// SkipRemaining moves the source to the declared end of the chunk
// no matter how much of it was consumed.
func (r *Reader) SkipRemaining() error {
	if n := r.Remaining(); n > 0 {
		return r.src.discard(n)
	}
	return nil
}

func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.ensure(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := r.src.read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// fill reads n bytes into the shared scratch buffer. n <= len(scratch).
func (r *Reader) fill(n int) ([]byte, error) {
	if err := r.ensure(n); err != nil {
		return nil, err
	}
	buf := r.src.scratch[:n]
	if err := r.src.read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
