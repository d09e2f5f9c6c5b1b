package groups

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelbridge.asia/balance-bot/internal/config"
)

func testGroups() []config.Group {
	return []config.Group{
		{ChatID: -1002774266933, Language: "ru", Name: "Русская группа (Shanghai)"},
		{ChatID: -1002468561827, Language: "zh", Name: "上海中文群组"},
	}
}

func TestResolveConfigured(t *testing.T) {
	r := NewRouter(testGroups(), false)

	info, ok := r.Resolve(-1002774266933)
	require.True(t, ok)
	assert.Equal(t, "Русская группа (Shanghai)", info.Name)
	assert.Equal(t, LanguageRU, info.Language)

	info, ok = r.Resolve(-1002468561827)
	require.True(t, ok)
	assert.Equal(t, LanguageZH, info.Language)
}

func TestResolveUnknownAllowList(t *testing.T) {
	r := NewRouter(testGroups(), false)

	_, ok := r.Resolve(12345)
	assert.False(t, ok, "при allow-list незнакомый чат не отслеживается")
}

func TestResolveUnknownTrackAll(t *testing.T) {
	r := NewRouter(testGroups(), true)

	info, ok := r.Resolve(12345)
	require.True(t, ok)
	assert.Equal(t, "Group 12345", info.Name)
	assert.Equal(t, DefaultLanguage, info.Language)
}

func TestConfiguredKeepsOrder(t *testing.T) {
	r := NewRouter(testGroups(), false)

	got := r.Configured()
	require.Len(t, got, 2)
	assert.Equal(t, int64(-1002774266933), got[0].ChatID)
	assert.Equal(t, int64(-1002468561827), got[1].ChatID)
}

func TestFallback(t *testing.T) {
	info := Fallback(-42)
	assert.Equal(t, "Group -42", info.Name)
	assert.Equal(t, LanguageZH, info.Language)
}
