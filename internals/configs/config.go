package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string
	RedisAddr string
	RedisPass string
	RedisDB   int

	// Batas waktu transaksi commit promosi (bisa dioverride via ENV)
	PromotionTxTimeout = 20 * time.Second
)

// GetEnv ambil env var, kosong kalau tidak ada
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOr ambil env var dengan fallback default
func GetEnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadEnv memuat .env (skip kalau running di platform yang inject ENV sendiri)
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}

	RedisAddr = GetEnvOr("REDIS_ADDR", "localhost:6379")
	RedisPass = GetEnv("REDIS_PASSWORD")
	if n, err := strconv.Atoi(GetEnvOr("REDIS_DB", "0")); err == nil {
		RedisDB = n
	}

	if sec, err := strconv.Atoi(GetEnv("PROMOTION_TX_TIMEOUT_SECONDS")); err == nil && sec > 0 {
		PromotionTxTimeout = time.Duration(sec) * time.Second
	}
}
