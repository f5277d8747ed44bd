package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }

func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("Loads Enabled Only", func(t *testing.T) {
		on := &stubFeature{name: "export", enabled: true}
		off := &stubFeature{name: "debug"}

		m := NewManager()
		m.Register(on)
		m.Register(off)

		assert.NoError(t, m.LoadAll(fiber.New()))
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
		assert.Equal(t, []string{"export"}, m.Loaded())
	})

	t.Run("Load Error", func(t *testing.T) {
		m := NewManager()
		m.Register(&stubFeature{name: "export", enabled: true, err: errors.New("bad route")})
		assert.ErrorContains(t, m.LoadAll(fiber.New()), "failed to load feature export")
	})

	t.Run("Duplicate", func(t *testing.T) {
		m := NewManager()
		m.Register(&stubFeature{name: "export", enabled: true})
		m.Register(&stubFeature{name: "export", enabled: true})
		assert.ErrorContains(t, m.LoadAll(fiber.New()), "registered twice")
	})
}
