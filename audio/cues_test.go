package audio

import "testing"

// Without a successful Init every cue must be a silent no-op; audio is
// optional and the simulation never depends on it.
func TestCuesNoOpWithoutInit(t *testing.T) {
	c := NewCues()

	c.Roll()
	c.Impact()
	c.Settle()
	c.Close()

	if c.ready {
		t.Error("cues should not be ready without Init")
	}
}
