package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathString(t *testing.T) {
	t.Run("joins segments with dots", func(t *testing.T) {
		p := Path{"Prod", "network", "Deploy"}
		assert.Equal(t, "Prod.network.Deploy", p.String())
	})

	t.Run("sanitizes each segment independently", func(t *testing.T) {
		p := Path{"Prod us-east", "net/work"}
		assert.Equal(t, "Prod_us-east.net_work", p.String())
	})

	t.Run("empty path renders empty", func(t *testing.T) {
		assert.Equal(t, "", Path(nil).String())
	})
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "a.b@c_d-e", Sanitize("a.b@c_d-e"))
	assert.Equal(t, "a_b_c", Sanitize("a b/c"))
	assert.Equal(t, "__", Sanitize("ü*"))
}

func TestRelativeTo(t *testing.T) {
	p := Path{"Prod", "db", "Prepare"}

	t.Run("strips a proper ancestor", func(t *testing.T) {
		assert.Equal(t, Path{"db", "Prepare"}, p.RelativeTo(Path{"Prod"}))
	})

	t.Run("returns path unchanged for a non-prefix", func(t *testing.T) {
		assert.Equal(t, p, p.RelativeTo(Path{"Dev"}))
	})

	t.Run("never strips down to nothing", func(t *testing.T) {
		assert.Equal(t, p, p.RelativeTo(p))
	})
}

func TestSharedAncestor(t *testing.T) {
	t.Run("common prefix of sibling nodes", func(t *testing.T) {
		got := SharedAncestor([]Path{
			{"Prod", "db", "Prepare"},
			{"Prod", "db", "Deploy"},
			{"Prod", "api", "Deploy"},
		})
		assert.Equal(t, Path{"Prod"}, got)
	})

	t.Run("no common prefix", func(t *testing.T) {
		got := SharedAncestor([]Path{{"A", "x"}, {"B", "x"}})
		assert.Empty(t, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, SharedAncestor(nil))
	})
}
