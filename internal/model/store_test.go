package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	t.Run("zero value becomes a renderable aggregate", func(t *testing.T) {
		var d StoreData
		d.ApplyDefaults()

		assert.NotNil(t, d.Stock)
		assert.NotNil(t, d.Prices)
		assert.Equal(t, OfferNone, d.Offer)
		assert.Equal(t, MilkyFirst, d.SectionOrder)
		assert.Equal(t, DefaultSocialLinks(), d.SocialLinks)
		assert.Equal(t, DefaultCustomColors(), d.CustomColors)
		require.NotNil(t, d.ThemeColors)
		assert.Equal(t, *DefaultThemeColors(), *d.ThemeColors)
	})

	t.Run("present values are untouched", func(t *testing.T) {
		d := StoreData{
			Stock:        map[string]bool{"w1": false},
			Offer:        Offer2x1Water,
			SectionOrder: WaterFirst,
			SocialLinks:  SocialLinks{Instagram: "@valencio"},
		}
		d.ApplyDefaults()

		assert.False(t, d.Stock["w1"])
		assert.Equal(t, Offer2x1Water, d.Offer)
		assert.Equal(t, WaterFirst, d.SectionOrder)
		assert.Equal(t, "@valencio", d.SocialLinks.Instagram)
	})
}

func TestClone(t *testing.T) {
	orig := DefaultStoreData()
	orig.Stock["w1"] = false
	orig.Prices["m2"] = 20000

	cp := orig.Clone()
	cp.Stock["w1"] = true
	cp.Prices["m2"] = 99999
	cp.ThemeColors.Dark.Accent = "#000000"

	assert.False(t, orig.Stock["w1"], "map writes must not leak back")
	assert.Equal(t, 20000, orig.Prices["m2"])
	assert.NotEqual(t, "#000000", orig.ThemeColors.Dark.Accent)
}

func TestPatchApplyTo(t *testing.T) {
	t.Run("nil fields leave the target alone", func(t *testing.T) {
		dst := DefaultStoreData()
		dst.Stock["w1"] = false

		(&StoreDataPatch{}).ApplyTo(dst)

		assert.False(t, dst.Stock["w1"])
		assert.True(t, dst.Settings.IsOpen)
	})

	t.Run("set fields replace the target's", func(t *testing.T) {
		dst := DefaultStoreData()
		offer := Offer2x1All
		order := WaterFirst
		patch := StoreDataPatch{
			Stock:        map[string]bool{"m1": false},
			Offer:        &offer,
			SectionOrder: &order,
			Settings:     &StoreSettings{IsOpen: false},
		}
		patch.ApplyTo(dst)

		assert.False(t, dst.Stock["m1"])
		assert.Equal(t, Offer2x1All, dst.Offer)
		assert.Equal(t, WaterFirst, dst.SectionOrder)
		assert.False(t, dst.Settings.IsOpen)
	})

	t.Run("decodes from the wire shape", func(t *testing.T) {
		var patch StoreDataPatch
		raw := `{"offer":"2x1_milky","stock":{"w1":false},"settings":{"isOpen":true,"deliveryAvailable":false,"pickupAvailable":true}}`
		require.NoError(t, json.Unmarshal([]byte(raw), &patch))

		require.NotNil(t, patch.Offer)
		assert.Equal(t, Offer2x1Milky, *patch.Offer)
		assert.Nil(t, patch.SectionOrder, "absent field stays nil")
		require.NotNil(t, patch.Settings)
		assert.False(t, patch.Settings.DeliveryAvailable)
	})
}
