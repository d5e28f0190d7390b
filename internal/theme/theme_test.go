package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: Light},
		{in: "light", want: Light},
		{in: " DARK ", want: Dark},
		{in: "Dark", want: Dark},
		{in: "sepia", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeToggled(t *testing.T) {
	assert.Equal(t, Dark, Light.Toggled())
	assert.Equal(t, Light, Dark.Toggled())
	assert.Equal(t, Dark, Mode("").Toggled())
}

func TestController_ToggleNotifies(t *testing.T) {
	n := NewNotifier(nil)
	defer n.Close()
	ch, _ := n.Subscribe(t.Context())

	c := NewController(Light, n)
	assert.Equal(t, Dark, c.Toggle())
	assert.Equal(t, Dark, c.Current())

	got := <-ch
	assert.Equal(t, Change{From: Light, To: Dark}, got)

	assert.Equal(t, Light, c.Toggle())
	assert.Equal(t, Change{From: Dark, To: Light}, <-ch)
}

func TestController_SetSameModeIsSilent(t *testing.T) {
	n := NewNotifier(nil)
	defer n.Close()
	ch, _ := n.Subscribe(t.Context())

	c := NewController(Dark, n)
	assert.False(t, c.Set(Dark))
	assert.Empty(t, ch)

	assert.True(t, c.Set(Light))
	assert.Len(t, ch, 1)
}

func TestController_NilNotifier(t *testing.T) {
	c := NewController("", nil)
	assert.Equal(t, Light, c.Current(), "unknown start mode falls back to light")
	assert.Equal(t, Dark, c.Toggle())
}
