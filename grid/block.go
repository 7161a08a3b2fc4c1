package grid

import "strconv"

type tag uint8

const (
	tagEmpty tag = iota
	tagOrdinary
	tagWildcard
)

// Block is the content of a single cell. The zero value is Empty.
// Ordinary blocks carry a color id; wildcard blocks carry none.
type Block struct {
	tag   tag
	color uint8
}

var (
	// Empty marks an unoccupied cell.
	Empty = Block{}
	// Wildcard is the rainbow block that matches permissively.
	Wildcard = Block{tag: tagWildcard}
)

// MaxColors bounds the color ids a block can carry, one per digit of the
// text form.
const MaxColors = 10

// Ordinary returns the block for the given color id. Ids outside
// 0..MaxColors-1 are clamped into that range.
func Ordinary(color int) Block {
	return Block{tag: tagOrdinary, color: uint8(min(max(color, 0), MaxColors-1))}
}

func (b Block) IsEmpty() bool {
	return b.tag == tagEmpty
}

func (b Block) IsWildcard() bool {
	return b.tag == tagWildcard
}

func (b Block) IsOrdinary() bool {
	return b.tag == tagOrdinary
}

// Color returns the color id of an ordinary block. ok is false for
// empty and wildcard blocks.
func (b Block) Color() (color int, ok bool) {
	if b.tag != tagOrdinary {
		return 0, false
	}
	return int(b.color), true
}

// String returns the block's character in the Parse alphabet.
func (b Block) String() string {
	switch b.tag {
	case tagOrdinary:
		return strconv.Itoa(int(b.color))
	case tagWildcard:
		return "*"
	default:
		return "."
	}
}
