package id

import (
	"github.com/bwmarrin/snowflake"
	"sync"
)

const (
	PrefixUser   = "user"
	PrefixList   = "list"
	PrefixItem   = "item"
	PrefixUnlock = "unlock"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init sets up the snowflake node. Calling it more than once has no effect.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns an identifier of the form <prefix>_<base36 snowflake>.
// Node 1 is used when Init was never called.
func New(prefix string) string {
	_ = Init(1)
	if node == nil {
		panic("id: snowflake node not initialised, Init failed")
	}
	return prefix + "_" + node.Generate().Base36()
}
