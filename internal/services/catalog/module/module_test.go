package module

import (
	"context"
	"path/filepath"
	"testing"

	"refstar/internal/core/astrometry"
	"refstar/internal/modkit"
	"refstar/internal/platform/config"
	"refstar/internal/services/catalog/catalogtest"
	"refstar/internal/services/catalog/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UsesSQLiteWhenNoPostgres(t *testing.T) {
	st := catalogtest.Open(t, filepath.Join(t.TempDir(), "c.db"))
	m := New(modkit.Deps{Cfg: config.New(), Lite: st.Lite})

	assert.Equal(t, Name, m.Name())
	assert.Empty(t, m.Prefix())
	ports, ok := m.Ports().(Ports)
	require.True(t, ok)

	catalogtest.Seed(t, st.Lite, catalogtest.Star("HD 1", "A", 1, 1))
	err := ports.View.View(context.Background(), func(r domain.Reader) error {
		rows, err := r.ByClass(context.Background(), astrometry.ClassA)
		assert.Len(t, rows, 1)
		return err
	})
	require.NoError(t, err)
}

func TestNew_PanicsWithoutCatalog(t *testing.T) {
	assert.Panics(t, func() { New(modkit.Deps{Cfg: config.New()}) })
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_CATALOG_TABLE", "Stars2027")
	assert.Equal(t, "Stars2027", FromConfig(config.New()).Table)
}
