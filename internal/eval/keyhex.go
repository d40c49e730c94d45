package eval

import (
	"encoding/hex"

	"github.com/lox/cutthroat/internal/abstraction"
	"github.com/lox/cutthroat/internal/game"
)

// keyHex renders the state's information-set key for dataset rows.
func keyHex(s *game.State) string {
	k := abstraction.BuildKey(s)
	return hex.EncodeToString(k[:])
}
