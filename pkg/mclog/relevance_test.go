package mclog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevance_Classify(t *testing.T) {
	r := NewRelevance()

	line := "[10:00:01] [Server thread/INFO]: Alice has 3 diamonds"
	assert.Equal(t, ClassIrrelevant, r.Classify(line, nil))

	identity := &Event{Type: EventIdentity, PlayerName: "Alice", PlayerID: aliceID}
	assert.Equal(t, ClassIdentity, r.Classify("UUID of player Alice is "+aliceID, identity))
	assert.Equal(t, []string{"Alice"}, r.Names())

	assert.Equal(t, ClassRelevant, r.Classify(line, nil))
	assert.Equal(t, ClassIrrelevant, r.Classify("[10:00:02] Bob did something", nil))
}

func TestRelevance_ServerMarkerAlwaysKept(t *testing.T) {
	r := NewRelevance()
	ev := &Event{Type: EventServerReady}
	assert.Equal(t, ClassServerMarker, r.Classify(`[09:00:00]: Done (2.5s)! For help, type "help"`, ev))
}

func TestRelevance_SubstringMatch(t *testing.T) {
	r := NewRelevance()
	r.Add("Al")
	assert.Equal(t, ClassRelevant, r.Classify("Altar placed", nil))
}

func TestRelevance_AddIgnoresEmptyAndDuplicates(t *testing.T) {
	r := NewRelevance()
	r.Add("")
	r.Add("Bob")
	r.Add("Bob")
	assert.Equal(t, []string{"Bob"}, r.Names())
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "irrelevant", ClassIrrelevant.String())
	assert.Equal(t, "identity", ClassIdentity.String())
	assert.Equal(t, "server_marker", ClassServerMarker.String())
	assert.Equal(t, "relevant", ClassRelevant.String())
}
