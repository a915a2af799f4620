package idgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Generator snowflake による採番
type Generator struct {
	node *snowflake.Node
}

// NewGenerator ノード ID（0〜1023）を指定して生成する
func NewGenerator(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("init snowflake node failed: %w", err)
	}
	return &Generator{node: node}, nil
}

// Next 次の ID
func (g *Generator) Next() int64 {
	return g.node.Generate().Int64()
}

// InvoiceNumber 請求書番号を生成する。例: INV-202405-1A2B3C4D5E6F
func (g *Generator) InvoiceNumber(prefix string, at time.Time) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "INV"
	}
	id := g.node.Generate()
	return fmt.Sprintf("%s-%s-%s", prefix, at.Format("200601"), strings.ToUpper(id.Base36()))
}
