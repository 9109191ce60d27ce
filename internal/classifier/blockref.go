package classifier

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goccy/go-json"
)

// BlockRefKind labels the shape of a block reference argument. It is used
// for logs and metrics only; routing never depends on it.
type BlockRefKind string

const (
	BlockRefNone     BlockRefKind = ""
	BlockRefAbsent   BlockRefKind = "absent"
	BlockRefTag      BlockRefKind = "tag"
	BlockRefOtherTag BlockRefKind = "other_tag"
	BlockRefNumber   BlockRefKind = "number"
	BlockRefHash     BlockRefKind = "hash"
	BlockRefObject   BlockRefKind = "object"
	BlockRefInvalid  BlockRefKind = "invalid"
)

// DescribeBlockRef classifies the raw block reference argument. present is
// false when the argument was not supplied.
func DescribeBlockRef(raw json.RawMessage, present bool) BlockRefKind {
	if !present {
		return BlockRefAbsent
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return BlockRefInvalid
	}

	switch raw[0] {
	case '"':
		var tag string
		if err := json.Unmarshal(raw, &tag); err != nil {
			return BlockRefInvalid
		}
		if IsPredefinedTagName(tag) {
			return BlockRefTag
		}
	case '{':
		var bnh rpc.BlockNumberOrHash
		if err := bnh.UnmarshalJSON([]byte(raw)); err != nil {
			return BlockRefInvalid
		}
		return BlockRefObject
	default:
		return BlockRefInvalid
	}

	var bnh rpc.BlockNumberOrHash
	if err := bnh.UnmarshalJSON([]byte(raw)); err != nil {
		return BlockRefInvalid
	}

	if _, ok := bnh.Hash(); ok {
		return BlockRefHash
	}

	if n, ok := bnh.Number(); ok {
		if n < 0 {
			// safe, finalized or a tag spelled differently
			return BlockRefOtherTag
		}
		return BlockRefNumber
	}

	return BlockRefInvalid
}
