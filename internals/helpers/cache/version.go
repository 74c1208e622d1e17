// file: internals/helpers/cache/version.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Versioned-key cache per sekolah: pembaca menyertakan versi di key cache-nya,
// penulis cukup INCR versi supaya semua entry lama otomatis basi.
// Bump bersifat best-effort: gagal bump TIDAK boleh menggagalkan operasi tulisnya.

var rdb *redis.Client

func Init(addr, password string, db int) {
	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[Cache] ⚠️ redis tidak tersedia (%v), bump versi akan di-skip", err)
	}
}

func versionKey(schoolID uuid.UUID) string {
	return fmt.Sprintf("school:%s:version", schoolID)
}

// Version baca versi cache sekarang (0 kalau belum pernah di-bump / redis mati)
func Version(ctx context.Context, schoolID uuid.UUID) int64 {
	if rdb == nil {
		return 0
	}
	n, err := rdb.Get(ctx, versionKey(schoolID)).Int64()
	if err != nil {
		return 0
	}
	return n
}

func payloadKey(schoolID uuid.UUID, ver int64, name string) string {
	return fmt.Sprintf("school:%s:v%d:%s", schoolID, ver, name)
}

// GetJSON baca entry cache pada versi sekolah sekarang. false = miss
// (termasuk redis mati / belum Init) — pemanggil lanjut baca DB.
func GetJSON(ctx context.Context, schoolID uuid.UUID, name string, dest any) bool {
	if rdb == nil {
		return false
	}
	raw, err := rdb.Get(ctx, payloadKey(schoolID, Version(ctx, schoolID), name)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON tulis entry cache pada versi sekarang, best-effort. Entry versi
// lama tidak perlu dihapus: bump membuat key-nya tidak pernah dibaca lagi,
// TTL yang membersihkan.
func SetJSON(ctx context.Context, schoolID uuid.UUID, name string, v any, ttl time.Duration) {
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := rdb.Set(ctx, payloadKey(schoolID, Version(ctx, schoolID), name), raw, ttl).Err(); err != nil {
		log.Printf("[Cache] set %s school=%s gagal: %v", name, schoolID, err)
	}
}

// BumpSchoolVersion naikkan versi cache sekolah. Fire-and-forget.
func BumpSchoolVersion(schoolID uuid.UUID) {
	if rdb == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rdb.Incr(ctx, versionKey(schoolID)).Err(); err != nil {
			log.Printf("[Cache] bump versi school=%s gagal: %v", schoolID, err)
		}
	}()
}
