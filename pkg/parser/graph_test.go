package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/resource"
)

func intPtr(v int) *int { return &v }

func namespaced(name string) resource.NamespaceID {
	return resource.NamespaceID{NormalID: resource.NormalID{Name: name}}
}

// testGraph builds a small command set covering every composite kind.
func testGraph(t testing.TB) *grammar.Graph {
	t.Helper()

	b := grammar.NewBuilder()

	blocks := resource.NewTable("blocks",
		&resource.BlockID{NamespaceID: namespaced("stone"), States: []resource.BlockState{
			{Key: "stone_type", Values: []string{"stone", "granite", "diorite"}},
		}},
		&resource.BlockID{NamespaceID: namespaced("air")},
	)
	items := resource.NewTable("items",
		&resource.ItemID{NamespaceID: namespaced("stone")},
		&resource.ItemID{NamespaceID: namespaced("wool"), Max: intPtr(15)},
		&resource.ItemID{NamespaceID: namespaced("dye"), Descriptions: []string{"black", "red"}},
	)
	entities := resource.NewTable("entities",
		resource.NewNamespaceID("zombie", "", ""),
		resource.NewNamespaceID("creeper", "", ""),
	)
	units := resource.NewNormalTable("time-units", "d", "s", "t")

	say := b.PerCommand([]string{"say"}, "Broadcast a message", b.Message("message", "text to broadcast"))
	kill := b.PerCommand([]string{"kill"}, "Kill entities", b.TargetSelector("target", "entities to kill", entities), b.LF())
	give := b.PerCommand([]string{"give"}, "Give an item",
		b.And("give", b.TargetSelector("player", "receiving player", entities), b.Item("item", "item to give", items)))
	tp := b.PerCommand([]string{"tp", "teleport"}, "Teleport entities",
		b.Wrapped(b.TargetSelector("victim", "entities to move", entities),
			b.Position("destination", "target position"),
			b.TargetSelector("destination-entity", "entity to move to", entities)),
		b.Position("destination", "target position"))
	gamemode := b.PerCommand([]string{"gamemode"}, "Set the game mode",
		b.And("gamemode",
			b.Or("mode", b.Text("survival", ""), b.Text("creative", ""), b.Text("adventure", ""), b.IntegerIn("mode", "", 0, 2)),
			b.Optional(b.TargetSelector("player", "player to change", entities))))
	setblock := b.PerCommand([]string{"setblock"}, "Place a block",
		b.And("setblock",
			b.Position("position", "where to place"),
			b.Block("block", "block to place", blocks),
			b.Optional(b.Or("mode", b.Text("replace", ""), b.Text("destroy", ""), b.Text("keep", "")))))
	timeCmd := b.PerCommand([]string{"time"}, "Change the time",
		b.And("add", b.Text("add", ""), b.IntegerWithUnit("amount", "time to add", units, true)),
		b.And("query", b.Text("query", ""), b.Repeat("names", b.NormalID("name", "", resource.NewNormalTable("times", "day", "daytime", "gametime")))))

	text := b.JSONEntry("text", "plain text", b.JSONString("text", nil))
	selector := b.JSONEntry("selector", "selector text", b.JSONString("selector", nil))
	component := b.JSONElement("component", b.JSONObject("component", grammar.NoNode, text, selector))
	rawtext := b.JSONObject("rawtext", grammar.NoNode, b.JSONEntry("rawtext", "components", b.JSONList("components", component)))
	b.Name("rawtext", rawtext)
	tellraw := b.PerCommand([]string{"tellraw"}, "Send JSON text",
		b.And("tellraw", b.TargetSelector("player", "receiver", entities), b.JSONRef("message", "raw json text", "rawtext")))

	execute := b.PerCommand([]string{"execute"}, "Run as entities",
		b.And("execute", b.TargetSelector("origin", "", entities), b.Position("position", ""), b.Any("command", "command to run")))

	root := b.Command("command-name", say, kill, give, tp, gamemode, setblock, timeCmd, tellraw, execute)
	g, err := b.Build(root)
	require.NoError(t, err)
	return g
}

func byID(root *ast.Node, id string) *ast.Node {
	return ast.FindFirst(root, func(n *ast.Node) bool { return n.ID() == id })
}
