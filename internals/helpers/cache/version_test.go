// file: internals/helpers/cache/version_test.go
package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Tanpa Init (redis tidak ada) semua operasi harus jadi no-op yang aman:
// Version 0, Get miss, Set/Bump tidak panic — jalur tulis tidak boleh
// pernah gagal gara-gara cache.
func TestCacheIsNoOpWithoutInit(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()

	assert.EqualValues(t, 0, Version(ctx, schoolID))

	var dest map[string]any
	assert.False(t, GetJSON(ctx, schoolID, "promotion_config", &dest))

	assert.NotPanics(t, func() {
		SetJSON(ctx, schoolID, "promotion_config", map[string]string{"k": "v"}, time.Minute)
		BumpSchoolVersion(schoolID)
	})
}

// Versi adalah bagian dari key payload: bump versi berarti key berikutnya
// berbeda, entry lama tidak pernah terbaca lagi.
func TestPayloadKeyEmbedsVersion(t *testing.T) {
	schoolID := uuid.New()

	k0 := payloadKey(schoolID, 0, "promotion_config")
	k1 := payloadKey(schoolID, 1, "promotion_config")

	assert.Equal(t, fmt.Sprintf("school:%s:v0:promotion_config", schoolID), k0)
	assert.NotEqual(t, k0, k1)
}

func TestVersionKeyFormat(t *testing.T) {
	schoolID := uuid.New()
	assert.Equal(t, fmt.Sprintf("school:%s:version", schoolID), versionKey(schoolID))
}
