package entities

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBannerDraft_DecodesBothKeys(t *testing.T) {
	var snake BannerDraft
	require.NoError(t, json.Unmarshal([]byte(`{"banner_name":"Pastel do Zé","theme":"neon","accent":"blue"}`), &snake))
	assert.Equal(t, "Pastel do Zé", snake.BannerName)
	assert.Equal(t, "neon", snake.Theme)

	var camel BannerDraft
	require.NoError(t, json.Unmarshal([]byte(`{"bannerName":"Tapioca"}`), &camel))
	assert.Equal(t, "Tapioca", camel.BannerName)
}

func TestBannerDraft_Persistable(t *testing.T) {
	assert.False(t, (&BannerDraft{BannerName: "   "}).Persistable())
	assert.False(t, (*BannerDraft)(nil).Persistable())
	assert.True(t, (&BannerDraft{BannerName: " Açaí "}).Persistable())

	b := (&BannerDraft{BannerName: " Açaí "}).Banner(uuid.New(), uuid.New())
	assert.Equal(t, "Açaí", b.BannerName)
	assert.Equal(t, BannerThemeClassic, b.Theme)
	assert.Equal(t, BannerAccentOrange, b.Accent)
}

func TestValidBannerName(t *testing.T) {
	assert.True(t, ValidBannerName("ã"))
	assert.True(t, ValidBannerName(strings.Repeat("ç", MaxBannerNameLength)))
	assert.False(t, ValidBannerName(strings.Repeat("a", MaxBannerNameLength+1)))
	assert.False(t, ValidBannerName("  "))
}
