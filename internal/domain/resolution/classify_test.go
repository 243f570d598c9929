package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsServiceItem(t *testing.T) {
	t.Run("detects service markers in the SKU", func(t *testing.T) {
		assert.True(t, IsServiceItem("FLETE-NORTE", ""))
		assert.True(t, IsServiceItem("SVC_SHIPPING", ""))
		assert.True(t, IsServiceItem("descuento-01", ""))
	})

	t.Run("detects service markers in the name", func(t *testing.T) {
		assert.True(t, IsServiceItem("MISC-001", "Flete a Monterrey"))
		assert.True(t, IsServiceItem("MISC-002", "Platform fee"))
		assert.True(t, IsServiceItem("MISC-003", "Ajuste de inventario"))
	})

	t.Run("regular products are not service items", func(t *testing.T) {
		assert.False(t, IsServiceItem("BAKC_U04010", "Barra de avena"))
		assert.False(t, IsServiceItem("GRNL_CAJA16", "Granola Display 16"))
	})
}

func TestIsLegacyCode(t *testing.T) {
	t.Run("all-digit codes of six or more digits are legacy", func(t *testing.T) {
		assert.True(t, IsLegacyCode("104010"))
		assert.True(t, IsLegacyCode(" 00418822 "))
	})

	t.Run("short numeric codes are not legacy", func(t *testing.T) {
		assert.False(t, IsLegacyCode("12345"))
	})

	t.Run("historical prefixes are legacy", func(t *testing.T) {
		assert.True(t, IsLegacyCode("LEG-BAKC-01"))
		assert.True(t, IsLegacyCode("old-granola"))
	})

	t.Run("canonical SKUs are not legacy", func(t *testing.T) {
		assert.False(t, IsLegacyCode("BAKC_U04010"))
		assert.False(t, IsLegacyCode("BAKC_CAJA16"))
	})
}
